// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"errors"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// ChannelState is the Channel lifecycle (§3): Open accepts new requests,
// Retiring drains what is already queued but refuses new admission,
// Retired is terminal.
type ChannelState = uint32

const (
	StateOpen ChannelState = iota
	StateRetiring
	StateRetired
)

// pendingReader is one queued Read request. It carries no value of its own:
// whichever side of matchmake resolves it delivers the value through fut.
type pendingReader[T any] struct {
	offer *Offer
	fut   *future
}

// pendingWriter is one queued Write request, carrying the value it wants
// delivered.
type pendingWriter[T any] struct {
	value T
	offer *Offer
	fut   *future
}

// Stats is a point-in-time snapshot returned by [Channel.Probe] (§4.2).
// It is inherently stale the instant it is returned; use it for
// diagnostics and backpressure heuristics, never for correctness.
type Stats struct {
	Name           string
	Buffered       int
	Capacity       int
	PendingReaders int
	PendingWriters int
	State          ChannelState
}

// Channel is a typed rendezvous point (§3, §4.2): a bounded buffer plus two
// pending-request queues, a single mutex serializing all three, and a
// retirement state machine. The zero value is not usable; construct with
// [NewChannel].
type Channel[T any] struct {
	id   ID
	name string

	capacity   int
	maxReaders int
	maxWriters int
	readerPol  OverflowPolicy
	writerPol  OverflowPolicy

	mu      sync.Mutex
	buffer  []T
	readers []*pendingReader[T]
	writers []*pendingWriter[T]
	state   atomix.Uint32

	retireImmediate bool
}

// ChannelOption configures a [Channel] at construction time.
type ChannelOption[T any] func(*Channel[T])

// WithCapacity sets the internal buffer size. Zero (the default) makes the
// channel purely synchronous: a Write can only complete against a matching
// Read or a queued reader.
func WithCapacity[T any](n int) ChannelOption[T] {
	return func(c *Channel[T]) { c.capacity = n }
}

// WithMaxReaders bounds the pending-reader queue. Negative (the default)
// means unbounded.
func WithMaxReaders[T any](n int) ChannelOption[T] {
	return func(c *Channel[T]) { c.maxReaders = n }
}

// WithMaxWriters bounds the pending-writer queue. Negative (the default)
// means unbounded.
func WithMaxWriters[T any](n int) ChannelOption[T] {
	return func(c *Channel[T]) { c.maxWriters = n }
}

// WithReaderOverflow sets the policy applied when a Read arrives and the
// pending-reader queue is already at its cap.
func WithReaderOverflow[T any](p OverflowPolicy) ChannelOption[T] {
	return func(c *Channel[T]) { c.readerPol = p }
}

// WithWriterOverflow sets the policy applied when a Write arrives and the
// pending-writer queue is already at its cap.
func WithWriterOverflow[T any](p OverflowPolicy) ChannelOption[T] {
	return func(c *Channel[T]) { c.writerPol = p }
}

// WithName attaches a diagnostic name, surfaced in [Error] and [Stats].
func WithName[T any](name string) ChannelOption[T] {
	return func(c *Channel[T]) { c.name = name }
}

// NewChannel constructs an Open channel. Unset caps default to unbounded
// (-1) and unset overflow policies default to Reject.
func NewChannel[T any](opts ...ChannelOption[T]) *Channel[T] {
	c := &Channel[T]{
		maxReaders: -1,
		maxWriters: -1,
		id:         nextChannelID(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.name == "" {
		c.name = defaultChannelName(c.id)
	}
	return c
}

func defaultChannelName(id ID) string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 0, 20)
	buf = append(buf, "channel-"...)
	if id == 0 {
		return string(append(buf, '0'))
	}
	var tmp [16]byte
	i := len(tmp)
	for id > 0 {
		i--
		tmp[i] = hex[id&0xf]
		id >>= 4
	}
	return string(append(buf, tmp[i:]...))
}

func (c *Channel[T]) ID() ID       { return c.id }
func (c *Channel[T]) Name() string { return c.name }

func (c *Channel[T]) stateRaw() ChannelState { return c.state.Load() }

// Probe returns a snapshot of queue depths and lifecycle state.
func (c *Channel[T]) Probe() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Name:           c.name,
		Buffered:       len(c.buffer),
		Capacity:       c.capacity,
		PendingReaders: len(c.readers),
		PendingWriters: len(c.writers),
		State:          c.stateRaw(),
	}
}

// Peek returns the next buffered value without consuming it, and whether
// one was available.
func (c *Channel[T]) Peek() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.buffer) == 0 {
		var zero T
		return zero, false
	}
	return c.buffer[0], true
}

// TryRead attempts an immediate receive without registering as a pending
// reader. It reports [iox.ErrWouldBlock] when no writer or buffered value
// is available right now, so callers can retry with [iox.Backoff] instead
// of paying for an [Offer] and a future on the hot path.
func (c *Channel[T]) TryRead() (T, error) {
	var zero T
	c.mu.Lock()
	if c.stateRaw() == StateRetired {
		c.mu.Unlock()
		return zero, newError(Retired, "TryRead", c.name)
	}
	for len(c.writers) > 0 {
		w := c.writers[0]
		c.writers = c.writers[1:]
		if !w.offer.TryAccept() {
			continue
		}
		v, cid, wf, wo := w.value, c.id, w.fut, w.offer
		finalize := []func(){func() {
			wo.Commit()
			wf.setResult(struct{}{}, cid, true)
		}}
		c.checkRetiredLocked(&finalize)
		c.mu.Unlock()
		for _, f := range finalize {
			f()
		}
		return v, nil
	}
	if len(c.buffer) > 0 {
		v := c.buffer[0]
		c.buffer = c.buffer[1:]
		var finalize []func()
		c.checkRetiredLocked(&finalize)
		c.mu.Unlock()
		for _, f := range finalize {
			f()
		}
		return v, nil
	}
	c.mu.Unlock()
	return zero, iox.ErrWouldBlock
}

// TryWrite attempts an immediate send without registering as a pending
// writer, reporting [iox.ErrWouldBlock] when neither a queued reader nor
// buffer capacity is available.
func (c *Channel[T]) TryWrite(v T) error {
	c.mu.Lock()
	if c.stateRaw() == StateRetired {
		c.mu.Unlock()
		return newError(Retired, "TryWrite", c.name)
	}
	if c.stateRaw() == StateRetiring {
		c.mu.Unlock()
		return newError(Retired, "TryWrite", c.name)
	}
	for len(c.readers) > 0 {
		r := c.readers[0]
		c.readers = c.readers[1:]
		if !r.offer.TryAccept() {
			continue
		}
		cid, rf, ro := c.id, r.fut, r.offer
		finalize := []func(){func() {
			ro.Commit()
			rf.setResult(v, cid, false)
		}}
		c.checkRetiredLocked(&finalize)
		c.mu.Unlock()
		for _, f := range finalize {
			f()
		}
		return nil
	}
	if len(c.buffer) < c.capacity {
		c.buffer = append(c.buffer, v)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return iox.ErrWouldBlock
}

// Read performs a synchronous, single-channel receive. It first tries
// [Channel.TryRead]; past that non-blocking boundary it falls back to
// building a solo [Offer], posting one pendingReader, and waiting.
func (c *Channel[T]) Read(deadline Deadline) (T, error) {
	var zero T
	if v, err := c.TryRead(); !errors.Is(err, iox.ErrWouldBlock) {
		return v, err
	}
	if c.stateRaw() == StateRetired {
		return zero, newError(Retired, "Read", c.name)
	}
	fut := newFuture(true)
	pr := &pendingReader[T]{fut: fut}
	offer := NewOffer(deadline, nil, nil)
	pr.offer = offer
	finalize, rejected := c.postReadLocked(pr)
	for _, f := range finalize {
		f()
	}
	if rejected {
		if c.stateRaw() != StateOpen {
			return zero, newError(Retired, "Read", c.name)
		}
		return zero, newError(OverflowRejected, "Read", c.name)
	}
	if !offer.Done() {
		offer.arm(func(kind Kind) {
			if offer.Withdraw() {
				c.retractReader(pr)
				fut.setError(newError(kind, "Read", c.name))
			}
		})
	}
	v, _, _, err := fut.wait()
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Write performs a synchronous, single-channel send, trying
// [Channel.TryWrite] before falling back to the Offer-based slow path.
func (c *Channel[T]) Write(v T, deadline Deadline) error {
	if err := c.TryWrite(v); !errors.Is(err, iox.ErrWouldBlock) {
		return err
	}
	if c.stateRaw() == StateRetired {
		return newError(Retired, "Write", c.name)
	}
	fut := newFuture(true)
	pw := &pendingWriter[T]{value: v, fut: fut}
	offer := NewOffer(deadline, nil, nil)
	pw.offer = offer
	finalize, rejected := c.postWriteLocked(pw)
	for _, f := range finalize {
		f()
	}
	if rejected {
		if c.stateRaw() != StateOpen {
			return newError(Retired, "Write", c.name)
		}
		return newError(OverflowRejected, "Write", c.name)
	}
	if !offer.Done() {
		offer.arm(func(kind Kind) {
			if offer.Withdraw() {
				c.retractWriter(pw)
				fut.setError(newError(kind, "Write", c.name))
			}
		})
	}
	_, _, _, err := fut.wait()
	return err
}

// ReadAsync posts a Read against a shared Offer, for use by the Alt Engine,
// which arms the Offer only after posting every candidate. It returns
// whether the request was admitted (false means it was rejected outright
// by overflow or by the channel already being closed to new admission; a
// solo future has then already been resolved with the corresponding error,
// while a non-solo future is left untouched).
func (c *Channel[T]) ReadAsync(offer *Offer, fut *future) bool {
	if c.stateRaw() == StateRetired {
		if fut.solo {
			fut.setError(newError(Retired, "Read", c.name))
		}
		return false
	}
	pr := &pendingReader[T]{offer: offer, fut: fut}
	finalize, rejected := c.postReadLocked(pr)
	for _, f := range finalize {
		f()
	}
	if rejected {
		if fut.solo {
			fut.setError(newError(OverflowRejected, "Read", c.name))
		}
		return false
	}
	return true
}

// WriteAsync is the write-side counterpart of ReadAsync.
func (c *Channel[T]) WriteAsync(v T, offer *Offer, fut *future) bool {
	if c.stateRaw() == StateRetired {
		if fut.solo {
			fut.setError(newError(Retired, "Write", c.name))
		}
		return false
	}
	pw := &pendingWriter[T]{value: v, offer: offer, fut: fut}
	finalize, rejected := c.postWriteLocked(pw)
	for _, f := range finalize {
		f()
	}
	if rejected {
		if fut.solo {
			fut.setError(newError(OverflowRejected, "Write", c.name))
		}
		return false
	}
	return true
}

// RetractRead removes a previously posted, not-yet-resolved read request.
// Used by the timeout/cancel path once it has won the Offer's Withdraw
// race, so no stale entry lingers in the queue.
func (c *Channel[T]) RetractRead(offer *Offer, fut *future) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, r := range c.readers {
		if r.fut == fut {
			c.readers = append(c.readers[:i], c.readers[i+1:]...)
			return
		}
	}
	_ = offer
}

// RetractWrite is the write-side counterpart of RetractRead.
func (c *Channel[T]) RetractWrite(offer *Offer, fut *future) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, w := range c.writers {
		if w.fut == fut {
			c.writers = append(c.writers[:i], c.writers[i+1:]...)
			return
		}
	}
	_ = offer
}

func (c *Channel[T]) retractReader(pr *pendingReader[T]) {
	c.RetractRead(pr.offer, pr.fut)
}

func (c *Channel[T]) retractWriter(pw *pendingWriter[T]) {
	c.RetractWrite(pw.offer, pw.fut)
}

// postReadLocked admits pr (subject to admission/overflow rules) and runs
// the matchmake loop, returning the finalize actions to run once mu is
// released. rejected reports an outright Reject-policy or Retiring
// admission failure that the caller must translate into an error for pr.
func (c *Channel[T]) postReadLocked(pr *pendingReader[T]) (finalize []func(), rejected bool) {
	c.mu.Lock()
	if c.stateRaw() == StateRetiring {
		c.mu.Unlock()
		return nil, true
	}
	var evictedFin []func()
	if c.maxReaders < 0 || len(c.readers) < c.maxReaders {
		c.readers = append(c.readers, pr)
	} else {
		switch {
		case c.readerPol == Reject || len(c.readers) == 0:
			// A zero cap has nothing older to evict under LIFO or
			// FIFODropHead either, so it behaves like Reject.
			c.mu.Unlock()
			return nil, true
		case c.readerPol == LIFO:
			victim := c.readers[len(c.readers)-1]
			c.readers[len(c.readers)-1] = pr
			evictedFin = append(evictedFin, c.failReaderOverflow(victim))
		default: // FIFODropHead
			victim := c.readers[0]
			c.readers = append(c.readers[1:], pr)
			evictedFin = append(evictedFin, c.failReaderOverflow(victim))
		}
	}
	finalize = c.matchmakeLocked()
	c.mu.Unlock()
	finalize = append(evictedFin, finalize...)
	return finalize, false
}

func (c *Channel[T]) postWriteLocked(pw *pendingWriter[T]) (finalize []func(), rejected bool) {
	c.mu.Lock()
	if c.stateRaw() == StateRetiring {
		c.mu.Unlock()
		return nil, true
	}
	var evictedFin []func()
	if c.maxWriters < 0 || len(c.writers) < c.maxWriters {
		c.writers = append(c.writers, pw)
	} else {
		switch {
		case c.writerPol == Reject || len(c.writers) == 0:
			// A zero cap has nothing older to evict under LIFO or
			// FIFODropHead either, so it behaves like Reject.
			c.mu.Unlock()
			return nil, true
		case c.writerPol == LIFO:
			victim := c.writers[len(c.writers)-1]
			c.writers[len(c.writers)-1] = pw
			evictedFin = append(evictedFin, c.failWriterOverflow(victim))
		default:
			victim := c.writers[0]
			c.writers = append(c.writers[1:], pw)
			evictedFin = append(evictedFin, c.failWriterOverflow(victim))
		}
	}
	finalize = c.matchmakeLocked()
	c.mu.Unlock()
	finalize = append(evictedFin, finalize...)
	return finalize, false
}

// failReaderOverflow returns a finalize action failing an evicted reader.
// A non-solo future (part of a still-live multi-candidate alt) is left
// untouched: the Offer stays Probing and may yet be won elsewhere (§9).
func (c *Channel[T]) failReaderOverflow(pr *pendingReader[T]) func() {
	return func() {
		if pr.fut.solo && pr.offer.Withdraw() {
			pr.fut.setError(newError(OverflowRejected, "Read", c.name))
		}
	}
}

func (c *Channel[T]) failWriterOverflow(pw *pendingWriter[T]) func() {
	return func() {
		if pw.fut.solo && pw.offer.Withdraw() {
			pw.fut.setError(newError(OverflowRejected, "Write", c.name))
		}
	}
}

// matchmakeLocked runs the pairing algorithm (§4.2) to a fixed point and
// collects the finalize actions (Offer.Commit plus completer resolution)
// to be run once mu is released, per the "never call user code while
// holding the channel lock" rule (§5). Must be called with mu held.
func (c *Channel[T]) matchmakeLocked() []func() {
	var finalize []func()
	for {
		progressed := false
		switch {
		case len(c.writers) > 0 && len(c.readers) > 0:
			w, r := c.writers[0], c.readers[0]
			switch {
			case !w.offer.TryAccept():
				c.writers = c.writers[1:]
			case !r.offer.TryAccept():
				w.offer.Rescind()
				c.readers = c.readers[1:]
			default:
				c.writers = c.writers[1:]
				c.readers = c.readers[1:]
				cid, v := c.id, w.value
				wf, rf, wo, ro := w.fut, r.fut, w.offer, r.offer
				finalize = append(finalize, func() {
					wo.Commit()
					ro.Commit()
					rf.setResult(v, cid, false)
					wf.setResult(struct{}{}, cid, true)
				})
			}
			progressed = true
		case len(c.writers) > 0 && len(c.buffer) < c.capacity:
			w := c.writers[0]
			if !w.offer.TryAccept() {
				c.writers = c.writers[1:]
			} else {
				c.writers = c.writers[1:]
				c.buffer = append(c.buffer, w.value)
				cid, wf, wo := c.id, w.fut, w.offer
				finalize = append(finalize, func() {
					wo.Commit()
					wf.setResult(struct{}{}, cid, true)
				})
			}
			progressed = true
		case len(c.readers) > 0 && len(c.buffer) > 0:
			r := c.readers[0]
			if !r.offer.TryAccept() {
				c.readers = c.readers[1:]
			} else {
				v := c.buffer[0]
				c.buffer = c.buffer[1:]
				c.readers = c.readers[1:]
				cid, rf, ro := c.id, r.fut, r.offer
				finalize = append(finalize, func() {
					ro.Commit()
					rf.setResult(v, cid, false)
				})
			}
			progressed = true
		}
		if !progressed {
			break
		}
	}
	c.checkRetiredLocked(&finalize)
	return finalize
}

func (c *Channel[T]) checkRetiredLocked(finalize *[]func()) {
	if c.stateRaw() != StateRetiring {
		return
	}
	if len(c.readers) != 0 || len(c.writers) != 0 {
		return
	}
	if !c.retireImmediate && len(c.buffer) != 0 {
		return
	}
	c.state.Store(StateRetired)
}

// Retire begins (or, if immediate, completes) retirement (§3, §4.2).
// A non-immediate retirement drains what is already queued and lets the
// buffer empty through later reads (TryRead, and so Read, still takes
// buffered values while Retiring); it may never reach Retired if nothing
// ever drains a lingering buffer. An immediate retirement drops the buffer
// and fails with [ErrRetired] every pending request whose Offer it
// withdraws (a request whose Offer was already decided is only dropped),
// reaching Retired synchronously. Idempotent.
func (c *Channel[T]) Retire(immediate bool) {
	c.mu.Lock()
	if c.stateRaw() == StateRetired {
		c.mu.Unlock()
		return
	}
	if c.stateRaw() == StateOpen {
		c.state.Store(StateRetiring)
	}
	if immediate {
		c.retireImmediate = true
		c.buffer = c.buffer[:0]
		readers, writers := c.readers, c.writers
		c.readers, c.writers = nil, nil
		c.state.Store(StateRetired)
		c.mu.Unlock()
		for _, r := range readers {
			if r.offer.Withdraw() {
				r.fut.setError(newError(Retired, "Read", c.name))
			}
		}
		for _, w := range writers {
			if w.offer.Withdraw() {
				w.fut.setError(newError(Retired, "Write", c.name))
			}
		}
		return
	}
	finalize := c.matchmakeLocked()
	c.mu.Unlock()
	for _, f := range finalize {
		f()
	}
}
