package models

import "time"

// Export attempt outcomes.
const (
	ExportSucceeded = "SUCCESS"
	ExportFailed    = "FAILED"
)

// ExportLogEntry records one export attempt.
type ExportLogEntry struct {
	ID         string     `json:"id"`
	OccurredAt time.Time  `json:"occurred_at"`
	OperatorID int        `json:"operator_id"` // 0 for exports run from the CLI
	ChartType  ChartType  `json:"chart_type"`
	Label      string     `json:"label"`
	FileName   string     `json:"file_name,omitempty"`
	Rows       int        `json:"rows"`
	RangeStart *time.Time `json:"range_start,omitempty"`
	RangeEnd   *time.Time `json:"range_end,omitempty"`
	Status     string     `json:"status"` // SUCCESS | FAILED
	Error      string     `json:"error,omitempty"`
}
