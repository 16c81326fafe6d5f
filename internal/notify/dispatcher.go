// Package notify routes catalog records to the log and toast channels.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/mrlokans/envport/internal/logging"
	"github.com/mrlokans/envport/internal/messages"
)

// Toast is a record surfaced on the UI channel.
type Toast struct {
	Type    messages.ToastType `json:"type"`
	Message string             `json:"message"`
	Code    string             `json:"code"`
	At      time.Time          `json:"at"`
}

// ToastSink receives toasts.
type ToastSink interface {
	PushToast(toast Toast)
}

// Dispatcher implements services.Notifier.
//
// Every record is logged once: the logger message when there is one, the
// user message otherwise. Records that show a toast are also pushed with the
// user message only: to the Collector carried by ctx when there is one, to
// the shared sink otherwise.
type Dispatcher struct {
	logger *slog.Logger
	sink   ToastSink
	now    func() time.Time
}

// NewDispatcher creates a dispatcher. A nil sink drops toasts.
func NewDispatcher(logger *slog.Logger, sink ToastSink) *Dispatcher {
	return &Dispatcher{
		logger: logging.Resolve(logger).With("component", "notify"),
		sink:   sink,
		now:    time.Now,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, level slog.Level, code messages.Code, params messages.Params) messages.Record {
	record := messages.Format(code, params)

	d.logger.Log(ctx, level, record.LogLine(), "code", code.String())

	toastType, ok := record.ToastType()
	if !ok {
		return record
	}
	sink := d.sink
	if collector := CollectorFrom(ctx); collector != nil {
		sink = collector
	}
	if sink != nil {
		sink.PushToast(Toast{
			Type:    toastType,
			Message: record.Message,
			Code:    code.String(),
			At:      d.now(),
		})
	}
	return record
}
