package workflow

import (
	"sort"
	"strings"
)

// ToolType is the canonical tag identifying a node's processing semantics.
type ToolType string

const (
	ToolInputData     ToolType = "input_data"
	ToolOutputData    ToolType = "output_data"
	ToolSelect        ToolType = "select"
	ToolFilter        ToolType = "filter"
	ToolFormula       ToolType = "formula"
	ToolJoin          ToolType = "join"
	ToolUnion         ToolType = "union"
	ToolSort          ToolType = "sort"
	ToolSummarize     ToolType = "summarize"
	ToolUnique        ToolType = "unique"
	ToolSample        ToolType = "sample"
	ToolRecordID      ToolType = "record_id"
	ToolTextToColumns ToolType = "text_to_columns"
	ToolCrossTab      ToolType = "cross_tab"
	ToolTranspose     ToolType = "transpose"
	ToolBrowse        ToolType = "browse"
	ToolTextInput     ToolType = "text_input"
	ToolUnknown       ToolType = "unknown"
)

// macroPrefix tags nodes backed by a macro reference: "macro:<name>".
const macroPrefix = "macro:"

const (
	enginePluginFamily = "AlteryxBasePluginsEngine"
	guiPluginFamily    = "AlteryxBasePluginsGui"
)

// engineMarkers are checked against the lowercased serialized config in this
// exact order; the first hit wins. The order is a behavioral contract:
// nested configs can contain several markers at once, and reordering would
// silently reclassify such nodes.
var engineMarkers = []struct {
	marker string
	tool   ToolType
}{
	{"filter", ToolFilter},
	{"join", ToolJoin},
	{"sort", ToolSort},
	{"summarize", ToolSummarize},
	{"groupby", ToolSummarize},
	{"formula", ToolFormula},
	{"select", ToolSelect},
	{"unique", ToolUnique},
	{"sample", ToolSample},
	{"recordid", ToolRecordID},
}

// Classify resolves a node's tool type from its plugin signature, macro
// reference and configuration. This is a heuristic, not a guaranteed-correct
// classifier; rule precedence is fixed and must not be "improved" in place.
func Classify(plugin, macro string, config ConfigValue) ToolType {
	// Rule 1: a file-reference key identifies input or output data.
	if _, ok := config["File"]; ok {
		if hasOutputMarker(config) {
			return ToolOutputData
		}
		return ToolInputData
	}

	// Rule 2: generic engine plugins are identified by config substrings.
	if strings.Contains(plugin, enginePluginFamily) {
		serialized := strings.ToLower(serializeConfig(config))
		for _, m := range engineMarkers {
			if strings.Contains(serialized, m.marker) {
				return m.tool
			}
		}
	} else if strings.Contains(plugin, guiPluginFamily) {
		// Rule 3: gui plugins carry the tool name in the plugin path.
		lower := strings.ToLower(plugin)
		if strings.Contains(lower, "browse") {
			return ToolBrowse
		}
		if strings.Contains(lower, "textinput") {
			return ToolTextInput
		}
	}

	// Rule 4: macro-backed nodes keep the macro name in the tag.
	if macro != "" {
		return ToolType(macroPrefix + macro)
	}

	return ToolUnknown
}

func hasOutputMarker(config ConfigValue) bool {
	if _, ok := config["FileName_Out"]; ok {
		return true
	}
	for key := range config {
		if strings.Contains(strings.ToLower(key), "output") {
			return true
		}
	}
	return false
}

// serializeConfig renders the config tree as a flat string for substring
// matching. Keys are sorted so the result is deterministic; the marker
// checks are presence tests, so ordering only matters for reproducibility.
func serializeConfig(config ConfigValue) string {
	var sb strings.Builder
	writeConfigValue(&sb, config)
	return sb.String()
}

func writeConfigValue(sb *strings.Builder, value any) {
	switch v := value.(type) {
	case nil:
		sb.WriteString("None")
	case string:
		sb.WriteString(v)
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for _, k := range keys {
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(v[k])
			sb.WriteString(", ")
		}
		sb.WriteByte('}')
	case ConfigValue:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for _, k := range keys {
			sb.WriteString(k)
			sb.WriteString(": ")
			writeConfigValue(sb, v[k])
			sb.WriteString(", ")
		}
		sb.WriteByte('}')
	}
}
