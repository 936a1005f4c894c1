package pygen

import (
	"strings"
	"testing"

	"converter/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineDocument = `
<AlteryxDocument version="2022.1">
  <Nodes>
    <Node ToolID="1">
      <Properties>
        <Configuration>
          <File>a.csv</File>
        </Configuration>
        <Annotation><Name>Load A</Name></Annotation>
      </Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" />
    </Node>
    <Node ToolID="2">
      <Properties>
        <Configuration>
          <Expression>[Amount] &gt; 100</Expression>
          <Mode>Custom filter</Mode>
        </Configuration>
      </Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" />
    </Node>
    <Node ToolID="3">
      <Properties>
        <Configuration>
          <File>b.csv</File>
          <FileName_Out>b.csv</FileName_Out>
        </Configuration>
      </Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" />
    </Node>
  </Nodes>
  <Connections>
    <Connection><Origin>1</Origin><Destination>2</Destination></Connection>
    <Connection><Origin>2</Origin><Destination>3</Destination></Connection>
  </Connections>
</AlteryxDocument>`

func TestGenerate_EndToEnd(t *testing.T) {
	wf, err := workflow.Parse([]byte(pipelineDocument))
	require.NoError(t, err)

	script, err := NewScriptBuilder(wf).Generate()
	require.NoError(t, err)

	assert.Contains(t, script, "Workflow version: 2022.1")
	assert.Contains(t, script, "import pandas as pd")
	assert.Contains(t, script, "import numpy as np")
	assert.Contains(t, script, "def main():")
	assert.Contains(t, script, "if __name__ == '__main__':")

	assert.Contains(t, script, "df_1 = pd.read_csv('a.csv')")
	assert.Contains(t, script, "df_2 = df_1[df_1['Amount'] > 100]")
	assert.Contains(t, script, "df_2.to_csv('b.csv', index=False)")

	// Fragments appear in execution order.
	load := strings.Index(script, "pd.read_csv('a.csv')")
	filter := strings.Index(script, "df_1['Amount'] > 100")
	write := strings.Index(script, "to_csv('b.csv'")
	require.True(t, load >= 0 && filter >= 0 && write >= 0)
	assert.Less(t, load, filter)
	assert.Less(t, filter, write)

	// The annotation ends up in the banner.
	assert.Contains(t, script, "# Load A (Type: input_data, ID: 1)")
	assert.Contains(t, script, "# Tool 2 (Type: filter, ID: 2)")
}

func TestGenerate_Deterministic(t *testing.T) {
	wf, err := workflow.Parse([]byte(pipelineDocument))
	require.NoError(t, err)

	first, err := NewScriptBuilder(wf).Generate()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := NewScriptBuilder(wf).Generate()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerate_JoinBindsSourcesInConnectionOrder(t *testing.T) {
	doc := `
<AlteryxDocument>
  <Nodes>
    <Node ToolID="left">
      <Properties><Configuration><File>left.csv</File></Configuration></Properties>
    </Node>
    <Node ToolID="right">
      <Properties><Configuration><File>right.csv</File></Configuration></Properties>
    </Node>
    <Node ToolID="j">
      <Properties><Configuration><JoinType>left</JoinType></Configuration></Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" />
    </Node>
  </Nodes>
  <Connections>
    <Connection><Origin>right</Origin><Destination>j</Destination></Connection>
    <Connection><Origin>left</Origin><Destination>j</Destination></Connection>
  </Connections>
</AlteryxDocument>`
	wf, err := workflow.Parse([]byte(doc))
	require.NoError(t, err)

	script, err := NewScriptBuilder(wf).Generate()
	require.NoError(t, err)

	// The right input connects first, so it is the first merge operand.
	assert.Contains(t, script, "df_j = pd.merge(")
	assert.Contains(t, script, "how='left'")

	rightOperand := strings.Index(script, "df_right,")
	leftOperand := strings.Index(script, "df_left,")
	require.True(t, rightOperand >= 0 && leftOperand >= 0)
	assert.Less(t, rightOperand, leftOperand)
}

func TestGenerate_UnknownToolFallsBack(t *testing.T) {
	doc := `
<AlteryxDocument>
  <Nodes>
    <Node ToolID="1">
      <Properties><Configuration><File>in.csv</File></Configuration></Properties>
    </Node>
    <Node ToolID="2">
      <Properties><Configuration><Custom>stuff</Custom></Configuration></Properties>
      <EngineSettings EngineDll="ThirdParty.dll" />
    </Node>
  </Nodes>
  <Connections>
    <Connection><Origin>1</Origin><Destination>2</Destination></Connection>
  </Connections>
</AlteryxDocument>`
	wf, err := workflow.Parse([]byte(doc))
	require.NoError(t, err)

	script, err := NewScriptBuilder(wf).Generate()
	require.NoError(t, err)

	assert.Contains(t, script, "# Tool type 'unknown' needs manual completion")
	assert.Contains(t, script, "df_2 = df_1.copy()")
}

func TestGenerate_MacroToolFallsBack(t *testing.T) {
	doc := `
<AlteryxDocument>
  <Nodes>
    <Node ToolID="1">
      <Properties><Configuration><File>in.csv</File></Configuration></Properties>
    </Node>
    <Node ToolID="2">
      <Properties><Configuration/></Properties>
      <EngineSettings Macro="Cleanse.yxmc" />
    </Node>
  </Nodes>
  <Connections>
    <Connection><Origin>1</Origin><Destination>2</Destination></Connection>
  </Connections>
</AlteryxDocument>`
	wf, err := workflow.Parse([]byte(doc))
	require.NoError(t, err)

	script, err := NewScriptBuilder(wf).Generate()
	require.NoError(t, err)

	assert.Contains(t, script, "# Tool type 'macro:Cleanse.yxmc' needs manual completion")
}

func TestGenerate_ExcelInputAddsOpenpyxl(t *testing.T) {
	doc := `
<AlteryxDocument>
  <Nodes>
    <Node ToolID="1">
      <Properties><Configuration><File>book.xlsx</File></Configuration></Properties>
    </Node>
  </Nodes>
</AlteryxDocument>`
	wf, err := workflow.Parse([]byte(doc))
	require.NoError(t, err)

	script, err := NewScriptBuilder(wf).Generate()
	require.NoError(t, err)

	assert.Contains(t, script, "pd.read_excel('book.xlsx')")
	assert.Contains(t, script, "import openpyxl")

	// Import lines stay sorted.
	numpy := strings.Index(script, "import numpy as np")
	openpyxl := strings.Index(script, "import openpyxl")
	pandas := strings.Index(script, "import pandas as pd")
	assert.Less(t, numpy, openpyxl)
	assert.Less(t, openpyxl, pandas)
}

func TestGenerate_SkipsTextInputGenerator(t *testing.T) {
	// Text input nodes classify but have no dedicated generator; they take
	// the generic fallback.
	doc := `
<AlteryxDocument>
  <Nodes>
    <Node ToolID="1">
      <GuiSettings Plugin="AlteryxBasePluginsGui.TextInput.TextInput" />
      <Properties><Configuration/></Properties>
    </Node>
  </Nodes>
</AlteryxDocument>`
	wf, err := workflow.Parse([]byte(doc))
	require.NoError(t, err)

	script, err := NewScriptBuilder(wf).Generate()
	require.NoError(t, err)

	assert.Contains(t, script, "# Tool type 'text_input' needs manual completion")
	assert.Contains(t, script, "# No source data available")
}
