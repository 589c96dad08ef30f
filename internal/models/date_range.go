package models

import (
	"fmt"
	"time"
)

// DateRange bounds an error export. Start <= End.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RangeWindow is one of the preset choices offered when picking an export range.
type RangeWindow string

const (
	WindowLastWeek    RangeWindow = "last_7_days"
	WindowLastMonth   RangeWindow = "last_1_month"
	WindowLastQuarter RangeWindow = "last_3_months"
)

// Valid reports whether w is one of the preset windows.
func (w RangeWindow) Valid() bool {
	switch w {
	case WindowLastWeek, WindowLastMonth, WindowLastQuarter:
		return true
	}
	return false
}

// DefaultDateRange is "one calendar month ago" through now.
func DefaultDateRange(now time.Time) DateRange {
	return DateRange{Start: now.AddDate(0, -1, 0), End: now}
}

// RangeFor resolves a preset window ending at now.
func RangeFor(w RangeWindow, now time.Time) (DateRange, error) {
	switch w {
	case WindowLastWeek:
		return DateRange{Start: now.AddDate(0, 0, -7), End: now}, nil
	case WindowLastMonth:
		return DateRange{Start: now.AddDate(0, -1, 0), End: now}, nil
	case WindowLastQuarter:
		return DateRange{Start: now.AddDate(0, -3, 0), End: now}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown range window %q", w)
	}
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
