package models

import "encoding/json"

// Record is one fetched document. Fields keeps the document body as decoded JSON
// (strings, float64, bool, nested maps/slices, nil).
type Record struct {
	ID     string
	Fields map[string]any
}

// Value returns the raw field value and whether the field is present.
func (r Record) Value(field string) (any, bool) {
	if field == "id" {
		return r.ID, true
	}
	v, ok := r.Fields[field]
	return v, ok
}

// MarshalJSON flattens the record into a single object with the document id under "id".
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	return json.Marshal(out)
}

// UnmarshalJSON accepts the flat form produced by MarshalJSON.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if id, ok := raw["id"].(string); ok {
		r.ID = id
	}
	delete(raw, "id")
	r.Fields = raw
	return nil
}
