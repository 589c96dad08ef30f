package service

import (
	"time"

	"device_inventory/internal/catalog"
	"device_inventory/internal/models"
)

// Snapshot is the immutable state of one list session. Reducers return a new
// value; Records and Filtered slices are never mutated after they are stored.
type Snapshot struct {
	SessionID string
	Selector  models.ChartSelector
	// Generation is the fetch whose result is committed; Pending is the newest issued.
	Generation uint64
	Pending    uint64
	Records    []models.Record
	Filtered   []models.Record
	Query      string
	Range      models.DateRange
	Dialog     DialogState
	UpdatedAt  time.Time
}

func newSnapshot(id string, sel models.ChartSelector, now time.Time) Snapshot {
	return Snapshot{
		SessionID: id,
		Selector:  sel,
		Records:   []models.Record{},
		Filtered:  []models.Record{},
		Range:     models.DefaultDateRange(now),
		Dialog:    DialogIdle,
		UpdatedAt: now,
	}
}

// BeginFetch issues a new fetch generation.
func BeginFetch(s Snapshot) Snapshot {
	s.Pending++
	return s
}

// ApplyFetch commits records fetched under gen. Results from any generation but
// the newest issued are rejected (ok == false) and s is returned unchanged.
// The current search query is re-applied to the new record set.
func ApplyFetch(s Snapshot, gen uint64, records []models.Record) (Snapshot, bool) {
	if gen != s.Pending {
		return s, false
	}
	s.Generation = gen
	s.Records = records
	s.Filtered = Filter(records, s.Query)
	return s, true
}

// ApplySearch sets the query and recomputes the visible subset.
func ApplySearch(s Snapshot, query string) Snapshot {
	s.Query = query
	s.Filtered = Filter(s.Records, query)
	return s
}

// ApplyRangeChoice replaces the export range with a preset window ending at now.
func ApplyRangeChoice(s Snapshot, w models.RangeWindow, now time.Time) (Snapshot, error) {
	r, err := models.RangeFor(w, now)
	if err != nil {
		return s, err
	}
	s.Range = r
	return s, nil
}

// ListItem pairs a visible record with its rendered summary.
type ListItem struct {
	Record  models.Record       `json:"record"`
	Display models.DisplayTuple `json:"display"`
}

// View is what clients render: heading, visible items and dialog state.
type View struct {
	SessionID  string               `json:"session_id"`
	Title      string               `json:"title"`
	Selector   models.ChartSelector `json:"selector"`
	Query      string               `json:"query"`
	Total      int                  `json:"total"`
	Count      int                  `json:"count"`
	Items      []ListItem           `json:"items"`
	Range      models.DateRange     `json:"range"`
	Dialog     DialogState          `json:"dialog"`
	Generation uint64               `json:"generation"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// View maps every visible record through the selector's display rules.
func (s Snapshot) View() View {
	items := make([]ListItem, 0, len(s.Filtered))
	for _, r := range s.Filtered {
		items = append(items, ListItem{Record: r, Display: catalog.Display(r, s.Selector.Type)})
	}
	return View{
		SessionID:  s.SessionID,
		Title:      catalog.Heading(s.Selector.Type, s.Selector.Label),
		Selector:   s.Selector,
		Query:      s.Query,
		Total:      len(s.Records),
		Count:      len(s.Filtered),
		Items:      items,
		Range:      s.Range,
		Dialog:     s.Dialog,
		Generation: s.Generation,
		UpdatedAt:  s.UpdatedAt,
	}
}
