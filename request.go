// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// request is the tagged union {Read(channel), Write(channel, value)} from
// §3: one candidate of an alt operation, bound to the alt's shared Offer
// and shared future. The Alt Engine holds a slice of these to talk to
// heterogeneously typed channels without a type parameter of its own.
type request interface {
	channelID() ID
	channelName() string
	isWrite() bool
	post(offer *Offer, fut *future) bool
	retract(offer *Offer, fut *future)
}

// readRequest is a Read candidate against a *Channel[T].
type readRequest[T any] struct {
	ch *Channel[T]
}

// Read builds a Read candidate for use with [ReadOrWriteAny]; [ReadFromAny]
// and [ChannelSet.ReadFair] build the same candidates internally.
func Read[T any](ch *Channel[T]) request { return readRequest[T]{ch: ch} }

func (r readRequest[T]) channelID() ID        { return r.ch.ID() }
func (r readRequest[T]) channelName() string  { return r.ch.Name() }
func (r readRequest[T]) isWrite() bool        { return false }
func (r readRequest[T]) post(o *Offer, f *future) bool {
	return r.ch.ReadAsync(o, f)
}
func (r readRequest[T]) retract(o *Offer, f *future) {
	r.ch.RetractRead(o, f)
}

// writeRequest is a Write candidate against a *Channel[T].
type writeRequest[T any] struct {
	ch  *Channel[T]
	val T
}

// Write builds a Write candidate for use with [ReadOrWriteAny]; [WriteToAny]
// and [ChannelSet.WriteFair] build the same candidates internally.
func Write[T any](ch *Channel[T], v T) request { return writeRequest[T]{ch: ch, val: v} }

func (w writeRequest[T]) channelID() ID       { return w.ch.ID() }
func (w writeRequest[T]) channelName() string { return w.ch.Name() }
func (w writeRequest[T]) isWrite() bool       { return true }
func (w writeRequest[T]) post(o *Offer, f *future) bool {
	return w.ch.WriteAsync(w.val, o, f)
}
func (w writeRequest[T]) retract(o *Offer, f *future) {
	w.ch.RetractWrite(o, f)
}
