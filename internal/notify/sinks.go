package notify

import (
	"fmt"
	"io"
	"sync"
)

const DefaultToastBufferSize = 50

// ToastQueue is a bounded FIFO of toasts waiting to be shown. When full, the
// oldest toast is dropped.
type ToastQueue struct {
	mu    sync.Mutex
	items []Toast
	size  int
}

func NewToastQueue(size int) *ToastQueue {
	if size <= 0 {
		size = DefaultToastBufferSize
	}
	return &ToastQueue{size: size}
}

func (q *ToastQueue) PushToast(toast Toast) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == q.size {
		q.items = q.items[1:]
	}
	q.items = append(q.items, toast)
}

// Drain returns queued toasts oldest first and empties the queue.
func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.items
	q.items = nil
	if out == nil {
		return []Toast{}
	}
	return out
}

func (q *ToastQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// WriterSink prints toasts as they arrive. Used by the CLI.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) PushToast(toast Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "[%s] %s\n", toast.Type, toast.Message)
}
