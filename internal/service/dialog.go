package service

import (
	"fmt"

	"device_inventory/internal/models"
)

// DialogState is the position of a session in the export confirmation flow.
type DialogState string

const (
	DialogIdle        DialogState = "idle"
	DialogPrompt      DialogState = "prompt"
	DialogRangePrompt DialogState = "range_prompt"
	DialogConfirmed   DialogState = "confirmed"
)

type DialogEventKind string

const (
	EventExportRequested DialogEventKind = "export_requested"
	EventRangeRequested  DialogEventKind = "range_requested"
	EventRangeChosen     DialogEventKind = "range_chosen"
	EventConfirmed       DialogEventKind = "confirmed"
	EventCancelled       DialogEventKind = "cancelled"
)

// DialogEvent is one user action. Window is only read for EventRangeChosen.
type DialogEvent struct {
	Kind   DialogEventKind    `json:"event"`
	Window models.RangeWindow `json:"window,omitempty"`
}

// DialogEffect is what the caller must do after a transition.
type DialogEffect int

const (
	EffectNone DialogEffect = iota
	EffectShowPrompt
	EffectShowRangePrompt
	EffectExport
	EffectApplyRangeAndExport
)

// NextDialog is the confirmation state machine. Only error lists offer the
// range prompt; choosing a window confirms immediately.
func NextDialog(state DialogState, t models.ChartType, ev DialogEvent) (DialogState, DialogEffect, error) {
	switch state {
	case DialogIdle:
		if ev.Kind == EventExportRequested {
			return DialogPrompt, EffectShowPrompt, nil
		}
	case DialogPrompt:
		switch ev.Kind {
		case EventCancelled:
			return DialogIdle, EffectNone, nil
		case EventConfirmed:
			return DialogConfirmed, EffectExport, nil
		case EventRangeRequested:
			if t == models.ChartError {
				return DialogRangePrompt, EffectShowRangePrompt, nil
			}
		}
	case DialogRangePrompt:
		switch ev.Kind {
		case EventCancelled:
			return DialogIdle, EffectNone, nil
		case EventRangeChosen:
			if !ev.Window.Valid() {
				return state, EffectNone, fmt.Errorf("%w: unknown range window %q", ErrInvalidTransition, ev.Window)
			}
			return DialogConfirmed, EffectApplyRangeAndExport, nil
		}
	}
	return state, EffectNone, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, ev.Kind, state)
}

// Localized dialog texts.
const (
	textCancel       = "Hủy"
	textConfirm      = "Xác nhận"
	textExportTitle  = "Xuất Excel"
	textChooseRange  = "Chọn khoảng thời gian"
	textPickRange    = "Vui lòng chọn khoảng thời gian"
	textLastWeek     = "1 tuần gần đây"
	textLastMonth    = "1 tháng gần đây"
	textLastQuarter  = "3 tháng gần đây"
	textSuccessTitle = "Thành công"
	textErrorTitle   = "Lỗi"

	formatRangePrompt  = "Chọn khoảng thời gian để xuất dữ liệu\n\nTừ ngày: %s\nĐến ngày: %s"
	formatConfirmList  = "Bạn muốn xuất excel %s?"
	formatSaved        = "File đã được lưu vào thư mục Downloads với tên %s"
	textStorageDenied  = "Vui lòng mở quyền truy cập bộ nhớ của ứng dụng"
	displayDateLayout  = "02/01/2006"
	optionStyleCancel  = "cancel"
	optionStyleDefault = "default"
)

// PromptOption is a button; pressing it dispatches Event.
type PromptOption struct {
	Text  string      `json:"text"`
	Style string      `json:"style"`
	Event DialogEvent `json:"event"`
}

type Prompt struct {
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Options []PromptOption `json:"options"`
}

// ExportOutcome is the message shown after the pipeline ran.
type ExportOutcome struct {
	OK       bool   `json:"ok"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	FileName string `json:"file_name,omitempty"`
	Rows     int    `json:"rows"`
}

// DialogStep is the result of dispatching one event.
type DialogStep struct {
	State   DialogState    `json:"state"`
	Prompt  *Prompt        `json:"prompt,omitempty"`
	Outcome *ExportOutcome `json:"outcome,omitempty"`
}

func cancelOption() PromptOption {
	return PromptOption{Text: textCancel, Style: optionStyleCancel, Event: DialogEvent{Kind: EventCancelled}}
}

// exportPrompt is the first prompt. Error lists show the current range and
// offer to change it.
func exportPrompt(s Snapshot, title string) *Prompt {
	if s.Selector.Type == models.ChartError {
		return &Prompt{
			Title: textExportTitle,
			Message: fmt.Sprintf(formatRangePrompt,
				s.Range.Start.Format(displayDateLayout),
				s.Range.End.Format(displayDateLayout)),
			Options: []PromptOption{
				cancelOption(),
				{Text: textExportTitle, Style: optionStyleDefault, Event: DialogEvent{Kind: EventConfirmed}},
				{Text: textChooseRange, Style: optionStyleDefault, Event: DialogEvent{Kind: EventRangeRequested}},
			},
		}
	}
	return &Prompt{
		Title:   textExportTitle,
		Message: fmt.Sprintf(formatConfirmList, title),
		Options: []PromptOption{
			cancelOption(),
			{Text: textConfirm, Style: optionStyleDefault, Event: DialogEvent{Kind: EventConfirmed}},
		},
	}
}

func rangePrompt() *Prompt {
	choose := func(text string, w models.RangeWindow) PromptOption {
		return PromptOption{Text: text, Style: optionStyleDefault, Event: DialogEvent{Kind: EventRangeChosen, Window: w}}
	}
	return &Prompt{
		Title:   textChooseRange,
		Message: textPickRange,
		Options: []PromptOption{
			choose(textLastWeek, models.WindowLastWeek),
			choose(textLastMonth, models.WindowLastMonth),
			choose(textLastQuarter, models.WindowLastQuarter),
			cancelOption(),
		},
	}
}

func successOutcome(res ExportResult) *ExportOutcome {
	return &ExportOutcome{
		OK:       true,
		Title:    textSuccessTitle,
		Message:  fmt.Sprintf(formatSaved, res.FileName),
		FileName: res.FileName,
		Rows:     res.Rows,
	}
}

// failureOutcome shows the storage permission hint for every export failure.
func failureOutcome() *ExportOutcome {
	return &ExportOutcome{OK: false, Title: textErrorTitle, Message: textStorageDenied}
}
