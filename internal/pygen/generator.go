package pygen

import (
	"converter/internal/workflow"
)

// FragmentGenerator produces the statement lines for one node. Lines are
// unindented; the ScriptBuilder indents them under the entry point. Import
// requirements are declared on the context.
type FragmentGenerator func(node *workflow.Node, ctx *GeneratorContext) []string

// Registry maps tool types to fragment generators. Unregistered types,
// including macro-backed nodes, fall back to the generic generator.
type Registry struct {
	generators map[workflow.ToolType]FragmentGenerator
	fallback   FragmentGenerator
}

// NewRegistry creates an empty registry with the generic fallback.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[workflow.ToolType]FragmentGenerator),
		fallback:   genGeneric,
	}
}

// Register registers a generator for a tool type.
func (r *Registry) Register(tool workflow.ToolType, gen FragmentGenerator) {
	r.generators[tool] = gen
}

// Get returns the generator for a tool type, or the fallback.
func (r *Registry) Get(tool workflow.ToolType) FragmentGenerator {
	if gen, ok := r.generators[tool]; ok {
		return gen
	}
	return r.fallback
}

// DefaultRegistry holds the built-in generators.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(workflow.ToolInputData, genInputData)
	DefaultRegistry.Register(workflow.ToolOutputData, genOutputData)
	DefaultRegistry.Register(workflow.ToolSelect, genSelect)
	DefaultRegistry.Register(workflow.ToolFilter, genFilter)
	DefaultRegistry.Register(workflow.ToolFormula, genFormula)
	DefaultRegistry.Register(workflow.ToolJoin, genJoin)
	DefaultRegistry.Register(workflow.ToolUnion, genUnion)
	DefaultRegistry.Register(workflow.ToolSort, genSort)
	DefaultRegistry.Register(workflow.ToolSummarize, genSummarize)
	DefaultRegistry.Register(workflow.ToolUnique, genUnique)
	DefaultRegistry.Register(workflow.ToolSample, genSample)
	DefaultRegistry.Register(workflow.ToolRecordID, genRecordID)
	DefaultRegistry.Register(workflow.ToolTextToColumns, genTextToColumns)
	DefaultRegistry.Register(workflow.ToolCrossTab, genCrossTab)
	DefaultRegistry.Register(workflow.ToolTranspose, genTranspose)
	DefaultRegistry.Register(workflow.ToolBrowse, genBrowse)
}
