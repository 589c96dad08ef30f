package catalog

import "device_inventory/internal/models"

var errorReports = &Descriptor{
	Type:       models.ChartError,
	Noun:       "lỗi",
	Collection: "ERROR",
	Field:      "deviceName",
	display: func(r models.Record) models.DisplayTuple {
		d := models.DisplayTuple{
			Title: lines(
				"Người báo cáo: "+text(r, "userreport", noName),
				"Kiểu thiết bị: "+text(r, "deviceType", noKind),
			),
			Subtitle: lines(
				"Phòng: "+text(r, "deviceRoom", ""),
				"Trạng thái: "+text(r, "state", ""),
				"Ngày báo cáo: "+text(r, "reportday", ""),
				"Ngày sửa: "+text(r, "fixday", ""),
				"Mô tả: "+text(r, "description", ""),
			),
			Icon:      "exclamation-circle",
			IconColor: "red",
		}
		if state, _ := r.Fields["state"].(string); state == FixedState {
			d.Icon, d.IconColor = "check-circle", "green"
		}
		return d
	},
	header: []string{"STT", "Tên thiết bị", "Phòng", "Tên người dùng", "Người báo lỗi", "Ngày báo cáo", "Ngày sửa", "Tình trạng", "Mô tả"},
	cells: func(r models.Record, _ string) []any {
		return []any{
			text(r, "deviceName", NoInformation),
			text(r, "deviceRoom", NoInformation),
			text(r, "userName", NoInformation),
			text(r, "userreport", NoInformation),
			text(r, "reportday", NoInformation),
			text(r, "fixday", NoInformation),
			text(r, "state", NoInformation),
			text(r, "description", NoInformation),
		}
	},
}
