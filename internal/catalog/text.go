package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"device_inventory/internal/models"
)

// Localized strings shown to end users.
const (
	NoInformation = "Không có thông tin"
	FixedState    = "Đã sửa"

	noName       = "Không có tên"
	noKind       = "Không có kiểu"
	noEmail      = "Không có email"
	noDeviceName = "Không có tên thiết bị"
	noDeviceKind = "Không có kiểu thiết bị"
	noUser       = "Không có người dùng"

	titleFormat = "Danh sách %s của %s"
	nounData    = "dữ liệu"
	nounDevice  = "thiết bị"

	colorListItem = "#0000CD"
)

var unknownDisplay = models.DisplayTuple{
	Title:     "Unknown",
	Subtitle:  "Unknown",
	Icon:      "question-circle",
	IconColor: colorListItem,
}

// text renders a field the way a falsy-or-fallback lookup would: missing, nil,
// empty string, zero and false all yield fallback.
func text(r models.Record, field, fallback string) string {
	v, ok := r.Value(field)
	if !ok || !truthy(v) {
		return fallback
	}
	return format(v)
}

// jsonText serializes a structured field (specifications) into a single line.
func jsonText(r models.Record, field, fallback string) string {
	v, ok := r.Value(field)
	if !ok || !truthy(v) {
		return fallback
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(b)
}

// plain renders a field without falsy substitution; only a missing value falls back.
func plain(r models.Record, field, fallback string) string {
	v, ok := r.Value(field)
	if !ok || v == nil {
		return fallback
	}
	return format(v)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
