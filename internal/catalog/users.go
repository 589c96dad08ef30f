package catalog

import "device_inventory/internal/models"

var usersByRoom = &Descriptor{
	Type:       models.ChartUserByRoom,
	Noun:       "người dùng",
	Collection: "USERS",
	Field:      "department",
	display: func(r models.Record) models.DisplayTuple {
		return models.DisplayTuple{
			Title:     text(r, "fullname", noName),
			Subtitle:  text(r, "email", noEmail),
			Icon:      "user",
			IconColor: colorListItem,
		}
	},
	header: []string{"STT", "Họ và tên", "Email", "Vai trò", "Phòng"},
	cells: func(r models.Record, label string) []any {
		room := label
		if room == "" {
			room = NoInformation
		}
		return []any{
			text(r, "fullname", NoInformation),
			text(r, "email", NoInformation),
			text(r, "role", NoInformation),
			room,
		}
	},
}
