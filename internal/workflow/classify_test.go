package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_FileKeyMeansData(t *testing.T) {
	// A file reference wins over everything else, including the plugin family.
	assert.Equal(t, ToolInputData,
		Classify("AlteryxBasePluginsEngine.dll", "", ConfigValue{"File": "in.csv"}))

	assert.Equal(t, ToolOutputData,
		Classify("", "", ConfigValue{"File": "out.csv", "FileName_Out": "out.csv"}))

	// Any key containing "output" marks the node as a writer.
	assert.Equal(t, ToolOutputData,
		Classify("", "", ConfigValue{"File": "out.csv", "OutputOptions": "overwrite"}))

	assert.Equal(t, ToolInputData,
		Classify("", "", ConfigValue{"File": "in.csv", "Delimeter": ","}))
}

func TestClassify_EngineMarkers(t *testing.T) {
	engine := "AlteryxBasePluginsEngine.dll"

	cases := []struct {
		name   string
		config ConfigValue
		want   ToolType
	}{
		{"filter", ConfigValue{"Mode": "Custom filter"}, ToolFilter},
		{"join", ConfigValue{"JoinType": "inner"}, ToolJoin},
		{"sort", ConfigValue{"SortInfo": "ascending"}, ToolSort},
		{"summarize", ConfigValue{"SummarizeFields": "sum"}, ToolSummarize},
		{"groupby", ConfigValue{"GroupByFields": "region"}, ToolSummarize},
		{"formula", ConfigValue{"FormulaFields": "x"}, ToolFormula},
		{"select", ConfigValue{"SelectFields": "a,b"}, ToolSelect},
		{"unique", ConfigValue{"UniqueFields": "id"}, ToolUnique},
		{"sample", ConfigValue{"SampleSize": "10"}, ToolSample},
		{"recordid", ConfigValue{"RecordIdField": "rid"}, ToolRecordID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(engine, "", tc.config))
		})
	}
}

func TestClassify_MarkerPrecedence(t *testing.T) {
	engine := "AlteryxBasePluginsEngine.dll"

	// "filter" outranks "join" when both appear in the config.
	got := Classify(engine, "", ConfigValue{"Mode": "filter", "JoinType": "inner"})
	assert.Equal(t, ToolFilter, got)

	// "join" outranks "sort".
	got = Classify(engine, "", ConfigValue{"JoinType": "inner", "SortInfo": "asc"})
	assert.Equal(t, ToolJoin, got)

	// Markers match inside nested configs too.
	got = Classify(engine, "", ConfigValue{"Settings": ConfigValue{"Inner": "sort by date"}})
	assert.Equal(t, ToolSort, got)
}

func TestClassify_GuiPlugins(t *testing.T) {
	assert.Equal(t, ToolBrowse,
		Classify("AlteryxBasePluginsGui.Browse.Browse", "", ConfigValue{}))

	assert.Equal(t, ToolTextInput,
		Classify("AlteryxBasePluginsGui.TextInput.TextInput", "", ConfigValue{}))

	// Gui plugins without a known tool name fall through.
	assert.Equal(t, ToolUnknown,
		Classify("AlteryxBasePluginsGui.Mystery", "", ConfigValue{}))
}

func TestClassify_Macro(t *testing.T) {
	got := Classify("", "CleanseData.yxmc", ConfigValue{})
	assert.Equal(t, ToolType("macro:CleanseData.yxmc"), got)

	// An engine plugin with no marker still resolves the macro reference.
	got = Classify("AlteryxBasePluginsEngine.dll", "Custom.yxmc", ConfigValue{"Nothing": "here"})
	assert.Equal(t, ToolType("macro:Custom.yxmc"), got)
}

func TestClassify_Unknown(t *testing.T) {
	assert.Equal(t, ToolUnknown, Classify("", "", ConfigValue{}))
	assert.Equal(t, ToolUnknown, Classify("SomeOther.dll", "", ConfigValue{"Key": "value"}))
}
