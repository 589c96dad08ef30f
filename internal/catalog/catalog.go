// Package catalog holds one descriptor per chart type. A descriptor owns every
// type-specific decision: which collection and predicate to query, how a record
// is summarised for display, and which header and cells it exports.
package catalog

import (
	"fmt"

	"device_inventory/internal/models"
)

// Query is an equality predicate against one named collection.
type Query struct {
	Collection string
	Field      string
	Value      string
}

// Descriptor describes a chart type. A zero Collection means the type has no
// fetch path; a nil header means it has no export mapping.
type Descriptor struct {
	Type models.ChartType
	// Noun names the records in the export title. ScreenNoun overrides it in
	// the on-screen heading when set.
	Noun       string
	ScreenNoun string
	Collection string
	Field      string

	display func(models.Record) models.DisplayTuple
	header  []string
	cells   func(r models.Record, label string) []any
}

// Query builds the predicate for label. ok is false when the type is never fetched.
func (d *Descriptor) Query(label string) (q Query, ok bool) {
	if d.Collection == "" {
		return Query{}, false
	}
	return Query{Collection: d.Collection, Field: d.Field, Value: label}, true
}

// Display summarises r.
func (d *Descriptor) Display(r models.Record) models.DisplayTuple {
	return d.display(r)
}

// Header returns a copy of the export header row.
func (d *Descriptor) Header() ([]string, bool) {
	if d.header == nil {
		return nil, false
	}
	out := make([]string, len(d.header))
	copy(out, d.header)
	return out, true
}

// Row builds the export row for r. index is 1-based and becomes the first cell.
func (d *Descriptor) Row(r models.Record, index int, label string) ([]any, bool) {
	if d.cells == nil {
		return nil, false
	}
	return append([]any{index}, d.cells(r, label)...), true
}

// Exportable reports whether the type has an export mapping.
func (d *Descriptor) Exportable() bool { return d.header != nil }

// Title names the exported list, e.g. "Danh sách thiết bị của P.101".
func (d *Descriptor) Title(label string) string {
	return fmt.Sprintf(titleFormat, d.Noun, label)
}

// Heading is the title shown above the list on screen.
func (d *Descriptor) Heading(label string) string {
	if d.ScreenNoun != "" {
		return fmt.Sprintf(titleFormat, d.ScreenNoun, label)
	}
	return d.Title(label)
}

var registry = map[models.ChartType]*Descriptor{
	models.ChartError:        errorReports,
	models.ChartUserByRoom:   usersByRoom,
	models.ChartDeviceByRoom: devicesBy(models.ChartDeviceByRoom, "departmentName"),
	models.ChartDeviceByUser: devicesBy(models.ChartDeviceByUser, "user"),
	models.ChartColumnData:   columnData,
}

// Lookup returns the descriptor registered for t.
func Lookup(t models.ChartType) (*Descriptor, bool) {
	d, ok := registry[t]
	return d, ok
}

// Display maps r for type t; unknown types get a constant placeholder.
func Display(r models.Record, t models.ChartType) models.DisplayTuple {
	d, ok := Lookup(t)
	if !ok {
		return unknownDisplay
	}
	return d.Display(r)
}

// Title returns the export title for t; unknown types use the generic noun.
func Title(t models.ChartType, label string) string {
	if d, ok := Lookup(t); ok {
		return d.Title(label)
	}
	return fmt.Sprintf(titleFormat, nounData, label)
}

// Heading returns the on-screen heading for t. Anything that is not an error
// or user list is headed as a device list, unknown types included.
func Heading(t models.ChartType, label string) string {
	if d, ok := Lookup(t); ok {
		return d.Heading(label)
	}
	return fmt.Sprintf(titleFormat, nounDevice, label)
}
