package models

import "strings"

// ChartType selects which collection is queried and which field mapping applies.
type ChartType string

const (
	ChartError        ChartType = "error"
	ChartUserByRoom   ChartType = "userByRoom"
	ChartDeviceByRoom ChartType = "deviceByRoom"
	ChartDeviceByUser ChartType = "deviceByUser"
	ChartColumnData   ChartType = "columnData"
)

// ChartSelector is the (type, label) pair a list session is opened with.
type ChartSelector struct {
	Type  ChartType `json:"type"`
	Label string    `json:"label"`
}

// Normalize trims surrounding whitespace from the type. Labels are matched verbatim.
func (s ChartSelector) Normalize() ChartSelector {
	s.Type = ChartType(strings.TrimSpace(string(s.Type)))
	return s
}
