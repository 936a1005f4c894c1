package response

import (
	"encoding/json"
	"time"
)

// Conversion response without the script body (for listing)
type Conversion struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Checksum        string    `json:"checksum"`
	NodeCount       int       `json:"nodeCount"`
	ConnectionCount int       `json:"connectionCount"`
	Version         string    `json:"version"`
	Author          string    `json:"author,omitempty"`
	Description     string    `json:"description,omitempty"`
	CycleWarning    bool      `json:"cycleWarning"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ConversionDetail includes the analysis summary (for single get)
type ConversionDetail struct {
	Conversion
	Summary json.RawMessage `json:"summary"`
}

// ExecutionOrder is the topological order of a stored workflow. On a cycle
// the order covers only the acyclic prefix and HasCycle is true.
type ExecutionOrder struct {
	Order    []string `json:"order"`
	HasCycle bool     `json:"hasCycle"`
}

// Lineage lists the transitive upstream or downstream nodes of one node.
type Lineage struct {
	NodeID string   `json:"nodeId"`
	Nodes  []string `json:"nodes"`
}
