package service

import (
	"strings"

	"device_inventory/internal/models"
)

// Filter keeps records where any string-valued field, the id included, contains
// query case-insensitively. An empty query keeps everything in order.
func Filter(records []models.Record, query string) []models.Record {
	out := make([]models.Record, 0, len(records))
	if query == "" {
		return append(out, records...)
	}
	needle := strings.ToLower(query)
	for _, r := range records {
		if matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Record, needle string) bool {
	if strings.Contains(strings.ToLower(r.ID), needle) {
		return true
	}
	for _, v := range r.Fields {
		s, ok := v.(string)
		if ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
