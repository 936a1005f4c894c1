package service

import (
	"converter/internal/api/models"
	"converter/internal/workflow"
)

// Analyze builds the stored summary for a parsed workflow: a tool-type
// histogram plus coarse input/output/transformation counts. Browse nodes are
// display-only and counted in neither bucket.
func Analyze(wf *workflow.Workflow) models.WorkflowSummary {
	summary := models.WorkflowSummary{ToolTypes: make(map[string]int)}
	for _, node := range wf.Nodes {
		summary.ToolTypes[string(node.Type)]++
		switch {
		case node.Type == workflow.ToolInputData || node.Type == workflow.ToolTextInput:
			summary.Inputs++
		case node.Type == workflow.ToolOutputData:
			summary.Outputs++
		case node.Type == workflow.ToolUnknown:
			summary.Unknown++
		case node.Type == workflow.ToolBrowse:
		default:
			summary.Transformations++
		}
	}
	return summary
}
