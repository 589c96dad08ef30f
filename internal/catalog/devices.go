package catalog

import "device_inventory/internal/models"

// devicesBy builds a DEVICES descriptor filtered on field. Room and user views
// share display and export mapping.
func devicesBy(t models.ChartType, field string) *Descriptor {
	return &Descriptor{
		Type:       t,
		Noun:       nounDevice,
		Collection: "DEVICES",
		Field:      field,
		display: func(r models.Record) models.DisplayTuple {
			return models.DisplayTuple{
				Title: text(r, "name", noDeviceName),
				Subtitle: lines(
					text(r, "type", noDeviceKind),
					text(r, "user", noUser),
					text(r, "userEmail", noEmail),
				),
				Icon:      "desktop",
				IconColor: colorListItem,
			}
		},
		header: []string{"STT", "Tên thiết bị", "Loại thiết bị", "Người dùng", "Email", "Thông số kỹ thuật", "Ghi chú"},
		cells: func(r models.Record, _ string) []any {
			return []any{
				text(r, "name", NoInformation),
				text(r, "type", NoInformation),
				text(r, "user", NoInformation),
				text(r, "userEmail", NoInformation),
				jsonText(r, "specifications", NoInformation),
				text(r, "note", NoInformation),
			}
		},
	}
}
