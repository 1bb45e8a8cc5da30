// Package diag carries diagnostic events: failures that are handled locally
// (the user only sees a generic status line) but that the host application
// still wants to observe. Components publish to a Sink; the host subscribes
// to a Bus.
package diag

import (
	"context"
	"sync"
	"time"
)

// Event describes one handled failure.
type Event struct {
	// Component names the publisher, e.g. "storeform" or "catalog".
	Component string
	// Operation names the step that failed, e.g. "check_domain".
	Operation string
	// Err is the underlying error. It is never shown to end users.
	Err error
	// Attrs holds extra low-cardinality context such as the checked domain.
	Attrs map[string]string
	// At is when the failure was observed.
	At time.Time
}

// Sink receives diagnostic events.
type Sink interface {
	Emit(ctx context.Context, e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event)

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, e Event) { f(ctx, e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) {}) //nolint: gochecknoglobals

// Bus fans events out to its subscribers in subscription order.
// The zero value is not usable; create one with NewBus.
type Bus struct {
	mu   sync.RWMutex
	subs map[uint64]SinkFunc
	ids  []uint64
	next uint64
	now  func() time.Time
}

// NewBus returns a Bus without subscribers.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[uint64]SinkFunc),
		now:  time.Now,
	}
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (b *Bus) Subscribe(fn SinkFunc) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn
	b.ids = append(b.ids, id)

	var once sync.Once

	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.subs, id)
			for i, v := range b.ids {
				if v == id {
					b.ids = append(b.ids[:i], b.ids[i+1:]...)

					break
				}
			}
		})
	}
}

// Emit delivers e to every subscriber synchronously. A zero At is set to now.
// Subscribers run outside the bus lock, so they may subscribe or unsubscribe.
func (b *Bus) Emit(ctx context.Context, e Event) {
	if e.At.IsZero() {
		e.At = b.now()
	}

	b.mu.RLock()
	subs := make([]SinkFunc, 0, len(b.ids))
	for _, id := range b.ids {
		subs = append(subs, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(ctx, e)
	}
}

// Ensure Bus conforms to the Sink interface at compile time.
var _ Sink = (*Bus)(nil)
