package messages

import "encoding/json"

// ToastType is the severity a record is shown with on the UI channel.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastWarning ToastType = "warning"
)

// Record is a formatted notification. The toast type can only be set through
// the catalog constructors, so a record either carries a toast type or does
// not show a toast at all.
type Record struct {
	Message       string
	LoggerMessage string

	toast ToastType
}

func silent(message string) Record {
	return Record{Message: message}
}

func toast(t ToastType, message string) Record {
	return Record{Message: message, toast: t}
}

func toastWithLog(t ToastType, message, loggerMessage string) Record {
	return Record{Message: message, LoggerMessage: loggerMessage, toast: t}
}

// ShowToast reports whether the record should surface on the UI channel.
func (r Record) ShowToast() bool {
	return r.toast != ""
}

// ToastType returns the toast type and whether a toast is shown.
func (r Record) ToastType() (ToastType, bool) {
	return r.toast, r.toast != ""
}

// LogLine is the text routed to the log channel.
func (r Record) LogLine() string {
	if r.LoggerMessage != "" {
		return r.LoggerMessage
	}
	return r.Message
}

type recordJSON struct {
	Message       string    `json:"message"`
	LoggerMessage string    `json:"loggerMessage,omitempty"`
	ShowToast     bool      `json:"showToast"`
	ToastType     ToastType `json:"toastType,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Message:       r.Message,
		LoggerMessage: r.LoggerMessage,
		ShowToast:     r.ShowToast(),
		ToastType:     r.toast,
	})
}
