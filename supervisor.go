// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// enqueueSpins bounds how many times Go backs off on a contended queue
// before falling back to forcing room by eviction.
const enqueueSpins = 4

// Supervisor collects errors from fire-and-forget goroutines spawned by
// alt-driven callback code, so a panic-free failure doesn't vanish
// silently. It is backed by a lock-free MPMC queue: many detached
// goroutines enqueue concurrently, one drainer consumes.
type Supervisor struct {
	q      *lfq.MPMC[error]
	dropOn OverflowPolicy
}

// NewSupervisor builds a Supervisor with a queue of the given capacity.
// Only Reject and FIFODropHead make sense for a queue with no LIFO
// primitive; LIFO is treated as FIFODropHead.
func NewSupervisor(capacity int, dropOn OverflowPolicy) *Supervisor {
	return &Supervisor{q: lfq.NewMPMC[error](capacity), dropOn: dropOn}
}

// Go runs f on its own goroutine and enqueues a non-nil error it returns.
// A full queue is first treated as transient contention with a concurrent
// drainer: Go backs off with [iox.Backoff] and retries. If the queue is
// still full afterward, Reject discards the error; FIFODropHead (or LIFO,
// treated the same here) dequeues the oldest entry to make room.
func (s *Supervisor) Go(f func() error) {
	go func() {
		err := f()
		if err == nil {
			return
		}
		var bo iox.Backoff
		for range enqueueSpins {
			if s.q.Enqueue(&err) == nil {
				return
			}
			bo.Wait()
		}
		if s.dropOn == Reject {
			return
		}
		s.q.Dequeue()
		_ = s.q.Enqueue(&err)
	}()
}

// Drain calls fn for every currently queued error, stopping once Dequeue
// reports the queue empty.
func (s *Supervisor) Drain(fn func(error)) {
	for {
		e, err := s.q.Dequeue()
		if err != nil {
			return
		}
		fn(e)
	}
}
