package pygen

import (
	"fmt"
	"sort"
	"strings"

	"converter/internal/workflow"
)

// varPrefix prefixes every generated dataframe variable.
const varPrefix = "df"

// GeneratorContext holds the mutable state of one generation run: the
// node-to-variable binding table and the aggregated import set. It is owned
// exclusively by that run; concurrent conversions each build their own.
type GeneratorContext struct {
	wf       *workflow.Workflow
	bindings map[string]string
	used     map[string]bool
	imports  map[string]struct{}
}

// NewGeneratorContext creates a context for one workflow. The baseline
// imports every generated script needs are seeded up front.
func NewGeneratorContext(wf *workflow.Workflow) *GeneratorContext {
	ctx := &GeneratorContext{
		wf:       wf,
		bindings: make(map[string]string),
		used:     make(map[string]bool),
		imports:  make(map[string]struct{}),
	}
	ctx.AddImport("pandas as pd")
	ctx.AddImport("numpy as np")
	return ctx
}

// VarName returns the variable bound to a node, creating the binding on
// first reference. Bindings are stable for the lifetime of the run and never
// collide, even when distinct node ids sanitize to the same identifier.
func (ctx *GeneratorContext) VarName(nodeID string) string {
	if v, ok := ctx.bindings[nodeID]; ok {
		return v
	}
	base := fmt.Sprintf("%s_%s", varPrefix, sanitizeIdentifier(nodeID))
	name := base
	for n := 2; ctx.used[name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	ctx.used[name] = true
	ctx.bindings[nodeID] = name
	return name
}

// SourceVar returns the binding of the primary source: the source of the
// first connection (by connection-list order) terminating at this node.
func (ctx *GeneratorContext) SourceVar(nodeID string) (string, bool) {
	sources := ctx.wf.SourceIDs(nodeID)
	if len(sources) == 0 {
		return "", false
	}
	return ctx.VarName(sources[0]), true
}

// SourceVars returns bindings for every connection terminating at this node,
// in connection-list order. Multi-input tools consume these positionally.
func (ctx *GeneratorContext) SourceVars(nodeID string) []string {
	sources := ctx.wf.SourceIDs(nodeID)
	vars := make([]string, len(sources))
	for i, src := range sources {
		vars[i] = ctx.VarName(src)
	}
	return vars
}

// AddImport records an import requirement declared by a fragment.
func (ctx *GeneratorContext) AddImport(spec string) {
	ctx.imports[spec] = struct{}{}
}

// ImportLines returns the sorted, deduplicated import statements for the
// script header.
func (ctx *GeneratorContext) ImportLines() []string {
	specs := make([]string, 0, len(ctx.imports))
	for spec := range ctx.imports {
		specs = append(specs, spec)
	}
	sort.Strings(specs)
	lines := make([]string, len(specs))
	for i, spec := range specs {
		lines[i] = "import " + spec
	}
	return lines
}

// sanitizeIdentifier maps a node id onto identifier-safe characters.
func sanitizeIdentifier(id string) string {
	var sb strings.Builder
	sb.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
