// Package telemetry implements the SDK's own usage-telemetry pipeline: a
// bounded event queue drained to a remote log store once short-lived STS
// credentials and log-store details have been obtained. The events are
// POSTed as JSON to the log-store URL; the STS credentials are not attached
// to that request and no log topic is set. This is separate from anything the caller's sessions do —
// it reports on the SDK's own behavior, the way the source's TraceManager
// does.
package telemetry

import (
	"sync"

	"github.com/agentbay/agentbay-go/internal/metrics"
)

// DefaultQueueCapacity bounds the pending-log queue. Modeled directly on
// the ring buffer used for session event streaming: a fixed-capacity slice
// that drops the oldest entry on overflow rather than growing or blocking.
const DefaultQueueCapacity = 100

// LogItem is a fully-prepared telemetry record, ready to send or queue.
type LogItem struct {
	Owner string
	Ext   map[string]string
}

// Buffer is a bounded FIFO queue of LogItem with oldest-drop overflow.
type Buffer struct {
	mu       sync.Mutex
	items    []LogItem
	capacity int
	dropped  int64
}

// NewBuffer creates a buffer with the given capacity (DefaultQueueCapacity
// if capacity <= 0).
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Buffer{items: make([]LogItem, 0, capacity), capacity: capacity}
}

// Push appends an item, dropping the oldest item first if the buffer is full.
func (b *Buffer) Push(item LogItem) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) >= b.capacity {
		b.items = b.items[1:]
		b.dropped++
		metrics.TelemetryQueueDrops.Inc()
	}
	b.items = append(b.items, item)
}

// Drain removes and returns every queued item. Callers must send the
// returned items without holding any lock — Drain itself never performs I/O.
func (b *Buffer) Drain() []LogItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) == 0 {
		return nil
	}
	out := make([]LogItem, len(b.items))
	copy(out, b.items)
	b.items = b.items[:0]
	return out
}

// Len returns the number of items currently queued.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Dropped returns the number of items dropped due to overflow.
func (b *Buffer) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
