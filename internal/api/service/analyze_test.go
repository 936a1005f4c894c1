package service

import (
	"testing"

	"converter/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analyzedDocument = `
<AlteryxDocument version="2022.1">
  <Nodes>
    <Node ToolID="1">
      <Properties><Configuration><File>in.csv</File></Configuration></Properties>
    </Node>
    <Node ToolID="2">
      <Properties><Configuration><Mode>Custom filter</Mode></Configuration></Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" />
    </Node>
    <Node ToolID="3">
      <Properties><Configuration><SortInfo>asc</SortInfo></Configuration></Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" />
    </Node>
    <Node ToolID="4">
      <Properties>
        <Configuration><File>out.csv</File><FileName_Out>out.csv</FileName_Out></Configuration>
      </Properties>
    </Node>
    <Node ToolID="5">
      <GuiSettings Plugin="AlteryxBasePluginsGui.Browse.Browse" />
      <Properties><Configuration/></Properties>
    </Node>
    <Node ToolID="6">
      <Properties><Configuration><Custom>stuff</Custom></Configuration></Properties>
      <EngineSettings EngineDll="ThirdParty.dll" />
    </Node>
  </Nodes>
</AlteryxDocument>`

func TestAnalyze_CountsToolBuckets(t *testing.T) {
	wf, err := workflow.Parse([]byte(analyzedDocument))
	require.NoError(t, err)

	summary := Analyze(wf)

	assert.Equal(t, 1, summary.Inputs)
	assert.Equal(t, 1, summary.Outputs)
	assert.Equal(t, 2, summary.Transformations, "filter and sort are transformations")
	assert.Equal(t, 1, summary.Unknown)

	assert.Equal(t, 1, summary.ToolTypes["input_data"])
	assert.Equal(t, 1, summary.ToolTypes["filter"])
	assert.Equal(t, 1, summary.ToolTypes["sort"])
	assert.Equal(t, 1, summary.ToolTypes["output_data"])
	assert.Equal(t, 1, summary.ToolTypes["browse"])
	assert.Equal(t, 1, summary.ToolTypes["unknown"])
}

func TestAnalyze_EmptyWorkflow(t *testing.T) {
	wf, err := workflow.Parse([]byte(`<AlteryxDocument><Nodes/></AlteryxDocument>`))
	require.NoError(t, err)

	summary := Analyze(wf)

	assert.Empty(t, summary.ToolTypes)
	assert.Zero(t, summary.Inputs)
	assert.Zero(t, summary.Outputs)
	assert.Zero(t, summary.Transformations)
}

func TestAnalyze_MacroCountsAsTransformation(t *testing.T) {
	doc := `
<AlteryxDocument>
  <Nodes>
    <Node ToolID="1">
      <Properties><Configuration/></Properties>
      <EngineSettings Macro="Cleanse.yxmc" />
    </Node>
  </Nodes>
</AlteryxDocument>`
	wf, err := workflow.Parse([]byte(doc))
	require.NoError(t, err)

	summary := Analyze(wf)

	assert.Equal(t, 1, summary.Transformations)
	assert.Equal(t, 1, summary.ToolTypes["macro:Cleanse.yxmc"])
}
