package models

// DisplayTuple is the rendered summary of one record.
type DisplayTuple struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Icon      string `json:"icon"`
	IconColor string `json:"icon_color"`
}
