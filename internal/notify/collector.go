package notify

import (
	"context"
	"sync"
)

type collectorKey struct{}

// Collector gathers the toasts raised by one operation, such as a single
// HTTP request, so they are not mixed with toasts from other callers.
type Collector struct {
	mu     sync.Mutex
	toasts []Toast
}

// WithCollector returns a context whose notifications are collected instead
// of being pushed to the dispatcher's shared sink.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

// CollectorFrom returns the collector carried by ctx, or nil.
func CollectorFrom(ctx context.Context) *Collector {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

func (c *Collector) PushToast(toast Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(c.toasts, toast)
}

// Toasts returns the collected toasts oldest first. It never returns nil.
func (c *Collector) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}
