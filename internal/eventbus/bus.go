// Package eventbus decouples creation events from the observers that ship
// them to slow backends.
package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/kilianp07/foundry/core/factory"
)

// DefaultBuffer is the subscriber channel capacity used by Subscribe.
const DefaultBuffer = 64

// Bus is a type-safe publish/subscribe bus for events of type T.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    []chan T
	closed  bool
	dropped atomic.Uint64
}

// New creates a new Bus.
func New[T any]() *Bus[T] { return &Bus[T]{} }

// Publish sends the event to all subscribers. Delivery is non-blocking:
// a subscriber whose buffer is full misses the event.
func (b *Bus[T]) Publish(e T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were skipped on full buffers.
func (b *Bus[T]) Dropped() uint64 { return b.dropped.Load() }

// Subscribe registers a subscriber with DefaultBuffer capacity.
func (b *Bus[T]) Subscribe() <-chan T { return b.SubscribeN(DefaultBuffer) }

// SubscribeN registers a subscriber whose channel holds size events.
func (b *Bus[T]) SubscribeN(size int) <-chan T {
	ch := make(chan T, size)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes the bus and all subscriber channels.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// AsyncObserver publishes creation events on a bus and forwards them to a
// downstream observer from a single goroutine, so slow observers stay off
// the caller's path.
type AsyncObserver struct {
	bus  *Bus[factory.Event]
	done chan struct{}
}

// NewAsyncObserver starts forwarding to next. buffer bounds the number of
// pending events; extra events are dropped.
func NewAsyncObserver(next factory.Observer, buffer int) *AsyncObserver {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	a := &AsyncObserver{bus: New[factory.Event](), done: make(chan struct{})}
	sub := a.bus.SubscribeN(buffer)
	go func() {
		defer close(a.done)
		for ev := range sub {
			next.Observe(ev)
		}
	}()
	return a
}

func (a *AsyncObserver) Observe(ev factory.Event) { a.bus.Publish(ev) }

// Dropped returns the number of events lost on a full buffer.
func (a *AsyncObserver) Dropped() uint64 { return a.bus.Dropped() }

// Close stops accepting events and waits until pending ones are forwarded.
func (a *AsyncObserver) Close() error {
	a.bus.Close()
	<-a.done
	return nil
}
