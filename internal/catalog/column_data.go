package catalog

import "device_inventory/internal/models"

// columnData is rendered from chart values handed in by the caller. It is never
// fetched and has no export mapping.
var columnData = &Descriptor{
	Type:       models.ChartColumnData,
	Noun:       nounData,
	ScreenNoun: nounDevice,
	display: func(r models.Record) models.DisplayTuple {
		return models.DisplayTuple{
			Title:     text(r, "name", noName),
			Subtitle:  "Giá trị: " + plain(r, "value", NoInformation),
			Icon:      "bar-chart",
			IconColor: colorListItem,
		}
	},
}
