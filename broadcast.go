// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"sync"
	"time"
)

// BroadcastChannel fans a single published value out to every subscriber
// channel (the "broadcast variant" mentioned alongside the point-to-point
// Attributes contract). Publish blocks until the configured barrier of
// subscribers has joined at least once, then writes to every current
// subscriber and reports how many accepted before the deadline.
type BroadcastChannel[T any] struct {
	mu   sync.Mutex
	subs []*Channel[T]

	barrier    int
	minReaders int

	ready     chan struct{}
	readyOnce sync.Once
}

// NewBroadcastChannel builds a BroadcastChannel that will not admit a
// Publish until barrier subscribers have joined, and whose Publish reports
// failure if fewer than minReaders accept the value.
func NewBroadcastChannel[T any](barrier, minReaders int) *BroadcastChannel[T] {
	b := &BroadcastChannel[T]{
		barrier:    barrier,
		minReaders: minReaders,
		ready:      make(chan struct{}),
	}
	if barrier <= 0 {
		close(b.ready)
	}
	return b
}

// Subscribe registers a new subscriber channel with the given buffer
// capacity and returns it.
func (b *BroadcastChannel[T]) Subscribe(capacity int) *Channel[T] {
	c := NewChannel[T](WithCapacity[T](capacity))
	b.mu.Lock()
	b.subs = append(b.subs, c)
	n := len(b.subs)
	b.mu.Unlock()
	if n >= b.barrier {
		b.readyOnce.Do(func() { close(b.ready) })
	}
	return c
}

// Unsubscribe retires and removes a subscriber, immediately failing any of
// its pending reads.
func (b *BroadcastChannel[T]) Unsubscribe(c *Channel[T]) {
	b.mu.Lock()
	for i, s := range b.subs {
		if s == c {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
	c.Retire(true)
}

// Publish delivers v to every current subscriber, waiting first for the
// initial-barrier subscriber count if it has not yet been reached. It
// returns the number of subscribers that accepted the value before
// deadline, and an error if that count is below the configured minimum.
func (b *BroadcastChannel[T]) Publish(v T, deadline Deadline) (int, error) {
	if !isNever(deadline) {
		select {
		case <-b.ready:
		case <-time.After(time.Until(deadline)):
			return 0, newError(Timeout, "Publish", "")
		}
	} else {
		<-b.ready
	}

	b.mu.Lock()
	subs := make([]*Channel[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	delivered := 0
	for _, c := range subs {
		if err := c.Write(v, deadline); err == nil {
			delivered++
		}
	}
	if delivered < b.minReaders {
		return delivered, newError(InvalidOperation, "Publish", "")
	}
	return delivered, nil
}
