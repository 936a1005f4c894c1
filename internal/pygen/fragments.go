package pygen

import (
	"fmt"
	"strings"

	"converter/internal/workflow"
)

// The fragment generators below produce best-effort pandas statements. Where
// the node configuration does not carry enough detail (join keys, sort
// columns, aggregations) the fragment keeps a TODO for the reader instead of
// guessing; generating structurally valid code is the contract, full
// business-logic correctness is not.

func genInputData(node *workflow.Node, ctx *GeneratorContext) []string {
	varName := ctx.VarName(node.ID)
	file := node.Config.LookupOr("input.csv", "File", "FileName")

	lines := []string{fmt.Sprintf("# Read input file: %s", file)}
	switch {
	case strings.HasSuffix(file, ".csv"):
		lines = append(lines, fmt.Sprintf("%s = pd.read_csv('%s')", varName, file))
	case strings.HasSuffix(file, ".xlsx"), strings.HasSuffix(file, ".xls"):
		ctx.AddImport("openpyxl")
		lines = append(lines, fmt.Sprintf("%s = pd.read_excel('%s')", varName, file))
	case strings.HasSuffix(file, ".txt"):
		delimiter := node.Config.LookupOr(`\t`, "Delimeter")
		lines = append(lines, fmt.Sprintf("%s = pd.read_csv('%s', delimiter='%s')", varName, file, delimiter))
	default:
		lines = append(lines, fmt.Sprintf("%s = pd.read_csv('%s')  # Adjust read method as needed", varName, file))
	}
	lines = append(lines, fmt.Sprintf("print(f'Loaded {len(%s)} rows from %s')", varName, file))
	return lines
}

func genOutputData(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{fmt.Sprintf("# Output tool %s: no source data", node.ID)}
	}
	file := node.Config.LookupOr("output.csv", "File", "FileName_Out")

	lines := []string{fmt.Sprintf("# Write output file: %s", file)}
	switch {
	case strings.HasSuffix(file, ".xlsx"), strings.HasSuffix(file, ".xls"):
		lines = append(lines, fmt.Sprintf("%s.to_excel('%s', index=False)", source, file))
	default:
		lines = append(lines, fmt.Sprintf("%s.to_csv('%s', index=False)", source, file))
	}
	lines = append(lines, fmt.Sprintf("print(f'Wrote {len(%s)} rows to %s')", source, file))
	return lines
}

func genSelect(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Select tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	return []string{
		"# Select and configure fields",
		fmt.Sprintf("%s = %s.copy()", varName, source),
		"# TODO: apply field selections and type conversions",
	}
}

func genFilter(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Filter tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	expr := node.Config.LookupOr("", "Expression", "Filter")

	lines := []string{"# Apply filter"}
	if expr != "" {
		lines = append(lines, fmt.Sprintf("%s = %s[%s]", varName, source, TranslateExpression(expr, source)))
	} else {
		lines = append(lines,
			"# TODO: add filter condition",
			fmt.Sprintf("%s = %s.copy()", varName, source),
		)
	}
	lines = append(lines, fmt.Sprintf("print(f'Filter: {len(%s)} rows (from {len(%s)})')", varName, source))
	return lines
}

func genFormula(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Formula tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	formula := node.Config.LookupOr("", "Expression", "Formula")
	field := node.Config.LookupOr("new_column", "Field", "OutputField")

	lines := []string{
		"# Apply formula",
		fmt.Sprintf("%s = %s.copy()", varName, source),
	}
	if formula != "" {
		lines = append(lines, fmt.Sprintf("%s['%s'] = %s", varName, field, TranslateExpression(formula, varName)))
	} else {
		lines = append(lines,
			"# TODO: add formula expression",
			fmt.Sprintf("%s['%s'] = None", varName, field),
		)
	}
	return lines
}

func genJoin(node *workflow.Node, ctx *GeneratorContext) []string {
	sources := ctx.SourceVars(node.ID)
	if len(sources) < 2 {
		return []string{"# Join tool: insufficient source data"}
	}
	varName := ctx.VarName(node.ID)
	joinType := strings.ToLower(node.Config.LookupOr("inner", "JoinType"))

	// Join-key correctness is not guaranteed: the key stays a placeholder.
	return []string{
		"# Join two datasets",
		"# TODO: specify join keys",
		fmt.Sprintf("%s = pd.merge(", varName),
		fmt.Sprintf("    %s,", sources[0]),
		fmt.Sprintf("    %s,", sources[1]),
		"    on='key_column',  # Specify join column(s)",
		fmt.Sprintf("    how='%s'", joinType),
		")",
		fmt.Sprintf("print(f'Join: {len(%s)} rows')", varName),
	}
}

func genUnion(node *workflow.Node, ctx *GeneratorContext) []string {
	sources := ctx.SourceVars(node.ID)
	if len(sources) == 0 {
		return []string{"# Union tool: no source data"}
	}
	varName := ctx.VarName(node.ID)

	lines := []string{"# Union multiple datasets"}
	if len(sources) == 1 {
		lines = append(lines, fmt.Sprintf("%s = %s.copy()", varName, sources[0]))
	} else {
		lines = append(lines, fmt.Sprintf("%s = pd.concat([%s], ignore_index=True)", varName, strings.Join(sources, ", ")))
	}
	lines = append(lines, fmt.Sprintf("print(f'Union: {len(%s)} rows')", varName))
	return lines
}

func genSort(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Sort tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	return []string{
		"# Sort data",
		"# TODO: specify sort columns and order",
		fmt.Sprintf("%s = %s.sort_values('column_name', ascending=True)", varName, source),
	}
}

func genSummarize(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Summarize tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	return []string{
		"# Summarize/group by",
		"# TODO: specify group by columns and aggregations",
		fmt.Sprintf("%s = %s.groupby('group_column').agg({", varName, source),
		"    'value_column': 'sum',",
		"    'count_column': 'count'",
		"}).reset_index()",
	}
}

func genUnique(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Unique tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	return []string{
		"# Remove duplicates",
		fmt.Sprintf("%s = %s.drop_duplicates()", varName, source),
		fmt.Sprintf("print(f'Unique: {len(%s)} rows (from {len(%s)})')", varName, source),
	}
}

func genSample(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Sample tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	size := node.Config.LookupOr("100", "N")
	return []string{
		"# Sample records",
		fmt.Sprintf("%s = %s.sample(n=%s, random_state=42)", varName, source, size),
	}
}

func genRecordID(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Record ID tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	return []string{
		"# Add record ID",
		fmt.Sprintf("%s = %s.copy()", varName, source),
		fmt.Sprintf("%s['RecordID'] = range(1, len(%s) + 1)", varName, varName),
	}
}

func genTextToColumns(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Text to Columns tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	delimiter := node.Config.LookupOr(",", "Delimiter")
	return []string{
		"# Split text column",
		fmt.Sprintf("%s = %s.copy()", varName, source),
		"# TODO: specify column to split",
		fmt.Sprintf("split_cols = %s['text_column'].str.split('%s', expand=True)", varName, delimiter),
		fmt.Sprintf("%s = pd.concat([%s, split_cols], axis=1)", varName, varName),
	}
}

func genCrossTab(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Cross Tab tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	return []string{
		"# Create cross-tabulation",
		"# TODO: specify row, column, and value fields",
		fmt.Sprintf("%s = pd.pivot_table(", varName),
		fmt.Sprintf("    %s,", source),
		"    values='value_column',",
		"    index='row_column',",
		"    columns='column_column',",
		"    aggfunc='sum'",
		").reset_index()",
	}
}

func genTranspose(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Transpose tool: no source data"}
	}
	varName := ctx.VarName(node.ID)
	return []string{
		"# Transpose data",
		fmt.Sprintf("%s = %s.transpose()", varName, source),
	}
}

func genBrowse(node *workflow.Node, ctx *GeneratorContext) []string {
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return []string{"# Browse tool: no source data"}
	}
	return []string{
		"# Display data (browse equivalent)",
		`print(f'\nBrowse - first 10 rows:')`,
		fmt.Sprintf("print(%s.head(10))", source),
		fmt.Sprintf(`print(f'\nShape: {%s.shape}')`, source),
	}
}

// genGeneric is the fallback for tool types without a dedicated generator.
// It copies the primary source unchanged and flags the fragment for manual
// completion.
func genGeneric(node *workflow.Node, ctx *GeneratorContext) []string {
	lines := []string{fmt.Sprintf("# Tool type '%s' needs manual completion", node.Type)}
	source, ok := ctx.SourceVar(node.ID)
	if !ok {
		return append(lines, "# No source data available")
	}
	return append(lines,
		fmt.Sprintf("%s = %s.copy()", ctx.VarName(node.ID), source),
		fmt.Sprintf("# TODO: implement %s logic", node.Type),
	)
}
