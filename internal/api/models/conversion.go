package models

import "time"

// Conversion is one stored workflow-to-script conversion. The original XML
// document is kept alongside the generated script so graph queries (execution
// order, lineage) can re-derive the workflow without a separate table.
type Conversion struct {
	ID              uint   `gorm:"primaryKey"`
	PublicID        string `gorm:"uniqueIndex;size:36"`
	Name            string
	Checksum        string `gorm:"index;size:64"`
	Document        []byte `gorm:"type:bytea"`
	Script          string `gorm:"type:text"`
	NodeCount       int
	ConnectionCount int
	Version         string
	Author          string
	Description     string
	CycleWarning    bool
	Summary         []byte `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WorkflowSummary is the per-conversion analysis stored in Conversion.Summary.
type WorkflowSummary struct {
	ToolTypes       map[string]int `json:"toolTypes"`
	Inputs          int            `json:"inputs"`
	Outputs         int            `json:"outputs"`
	Transformations int            `json:"transformations"`
	Unknown         int            `json:"unknown"`
}
