package pygen

import (
	"bytes"
	"strings"

	"converter/internal/workflow"
)

// bannerWidth is the width of the comment rule above each fragment.
const bannerWidth = 60

// ScriptBuilder assembles the complete script for one workflow: header with
// doc comment and aggregated imports, one entry-point function holding the
// ordered fragments, and the invocation guard.
type ScriptBuilder struct {
	wf       *workflow.Workflow
	ctx      *GeneratorContext
	registry *Registry
}

// NewScriptBuilder creates a builder with a fresh generation context.
func NewScriptBuilder(wf *workflow.Workflow) *ScriptBuilder {
	return &ScriptBuilder{
		wf:       wf,
		ctx:      NewGeneratorContext(wf),
		registry: DefaultRegistry,
	}
}

// Context exposes the generation context, mainly for tests.
func (b *ScriptBuilder) Context() *GeneratorContext {
	return b.ctx
}

// Generate emits the script text. Every upstream iteration uses a stable
// order, so the output is deterministic for a fixed workflow.
func (b *ScriptBuilder) Generate() (string, error) {
	type fragment struct {
		node  *workflow.Node
		lines []string
	}

	// Fragments are generated before the header is written: generators
	// declare imports on the context as a side effect.
	order := b.wf.ExecutionOrder()
	fragments := make([]fragment, 0, len(order))
	for _, id := range order {
		node, ok := b.wf.NodeByID(id)
		if !ok {
			continue
		}
		gen := b.registry.Get(node.Type)
		fragments = append(fragments, fragment{node: node, lines: gen(node, b.ctx)})
	}

	var buf bytes.Buffer
	sw := newScriptWriter(&buf)

	sw.line(`"""`)
	sw.line("Auto-generated script converted from a visual workflow.")
	sw.linef("Workflow version: %s", b.wf.Meta.Version)
	sw.line(`"""`)
	sw.blank()
	for _, imp := range b.ctx.ImportLines() {
		sw.line(imp)
	}
	sw.blank()
	sw.blank()

	sw.line("def main():")
	sw.indent++
	sw.line(`"""Main workflow execution function"""`)
	for _, frag := range fragments {
		banner := frag.node.Annotation
		if banner == "" {
			banner = "Tool " + frag.node.ID
		}
		sw.line("# " + strings.Repeat("-", bannerWidth))
		sw.linef("# %s (Type: %s, ID: %s)", banner, frag.node.Type, frag.node.ID)
		sw.line("# " + strings.Repeat("-", bannerWidth))
		for _, line := range frag.lines {
			sw.line(line)
		}
		sw.blank()
	}
	sw.line("return True")
	sw.indent--

	sw.blank()
	sw.blank()
	sw.line("if __name__ == '__main__':")
	sw.indent++
	sw.line("main()")
	sw.indent--

	if sw.err != nil {
		return "", sw.err
	}
	return buf.String(), nil
}
