package pygen

import (
	"regexp"
	"strings"
)

// fieldRef matches bracketed field references like [Amount].
var fieldRef = regexp.MustCompile(`\[([^\]]+)\]`)

// tokenTable maps workflow expression functions to pandas equivalents.
// Replacement order follows the table; it is a plain textual rewrite, not a
// parser, and unmapped tokens pass through untranslated. Emitted expressions
// built from such tokens may need manual repair.
var tokenTable = []struct {
	token       string
	replacement string
}{
	{"TONUMBER", "pd.to_numeric"},
	{"TOSTRING", "str"},
	{"DATETIMENOW", "pd.Timestamp.now"},
	{"DATETIMEPARSE", "pd.to_datetime"},
	{"SUBSTRING", "str.slice"},
	{"LENGTH", "str.len"},
	{"TRIM", "str.strip"},
	{"UPPER", "str.upper"},
	{"LOWER", "str.lower"},
	{"CONTAINS", "str.contains"},
	{"ISNULL", "isna"},
	{"IF", "np.where"},
	{"AND", "&"},
	{"OR", "|"},
	{"NOT", "~"},
}

// TranslateExpression rewrites a workflow expression against the active
// dataframe variable: [Name] becomes df['Name'], and known function tokens
// map to their pandas counterparts.
func TranslateExpression(expr, varName string) string {
	out := fieldRef.ReplaceAllString(expr, varName+`['${1}']`)
	for _, entry := range tokenTable {
		out = strings.ReplaceAll(out, entry.token, entry.replacement)
	}
	return out
}
