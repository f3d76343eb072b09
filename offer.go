// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// offerState is the public-facing lifecycle state of an [Offer] (§3).
type offerState = uint32

const (
	offerProbing offerState = iota
	offerCommitted
	offerWithdrawn
)

// commitSpins bounds the Offer Arbiter's CAS-contention spin in
// [Offer.TryAccept] before it accepts that some other pairing attempt is
// racing it. Kept small:
// this is a bounded courtesy spin, not a substitute for the atomic CAS itself,
// which is what actually decides the winner.
const commitSpins = 16

// Offer is the two-phase commit primitive shared by every request of one
// alt operation (§4.1). It is single-use: created when the alt begins,
// and transitions Probing → Committed (exactly once) or Probing →
// Withdrawn, never both.
type Offer struct {
	state     atomix.Uint32
	finalized atomix.Uint32
	probed    atomix.Uint32

	deadline Deadline
	cancel   <-chan struct{}
	onCommit func()

	timer      *time.Timer
	stopCancel func()
}

// NewOffer creates a fresh, Probing Offer with the given deadline and
// optional cancellation signal. onCommit, if non-nil, is invoked exactly
// once, before the winning completer resolves, by whichever goroutine's
// [Offer.Commit] call wins.
func NewOffer(deadline Deadline, cancel <-chan struct{}, onCommit func()) *Offer {
	return &Offer{deadline: deadline, cancel: cancel, onCommit: onCommit}
}

// arm starts the deadline timer and cancellation watcher. Must be called
// after the Offer has been posted to every candidate channel (for an alt,
// after MarkProbed), so that an immediate expiry cannot race a not-yet-posted
// request. Both the timer and the cancellation watcher may call withdraw;
// the callback decides the race itself by gating on [Offer.Withdraw].
func (o *Offer) arm(withdraw func(Kind)) {
	if !isNever(o.deadline) {
		d := time.Until(o.deadline)
		if d <= 0 {
			withdraw(Timeout)
		} else {
			o.timer = time.AfterFunc(d, func() { withdraw(Timeout) })
		}
	}
	if o.cancel != nil {
		stop := make(chan struct{})
		o.stopCancel = func() { close(stop) }
		go func() {
			select {
			case <-o.cancel:
				withdraw(Cancelled)
			case <-stop:
			}
		}()
	}
}

// disarm releases the timer and cancellation watcher. Safe to call
// multiple times.
func (o *Offer) disarm() {
	if o.timer != nil {
		o.timer.Stop()
	}
	if o.stopCancel != nil {
		o.stopCancel()
		o.stopCancel = nil
	}
}

// MarkProbed records that the Alt Engine has finished posting this Offer
// to every candidate channel (§4.1's "probe complete" mark). Channels
// polling TryAccept before this mark may still accept — the fast path for
// a channel that already has data at post time; channels polling after
// are guaranteed not to observe a not-yet-fully-posted offer.
func (o *Offer) MarkProbed() {
	o.probed.Store(1)
}

// Probed reports whether MarkProbed has been called.
func (o *Offer) Probed() bool {
	return o.probed.Load() != 0
}

// TryAccept is the arbiter's "offer()" step (§4.1): a channel asks whether
// it may tentatively claim this Offer for the pairing it is currently
// attempting. At most one caller across all channels this Offer is posted
// on holds the claim at a time; the state is left Committed on success. A
// caller that fails to find a partner must call [Offer.Rescind] to release
// the offer back to Probing so another channel may still win it.
func (o *Offer) TryAccept() bool {
	if o.state.CompareAndSwap(offerProbing, offerCommitted) {
		return true
	}
	// A losing attempt elsewhere may Rescind the offer microseconds later
	// (its partner declined); a short bounded spin lets a genuinely
	// available offer be caught instead of falling straight to Decline.
	for i := 0; i < commitSpins; i++ {
		spin.Pause()
		if o.state.CompareAndSwap(offerProbing, offerCommitted) {
			return true
		}
	}
	return false
}

// Rescind releases a tentative TryAccept back to Probing when this
// channel's matchmake attempt found no partner for it. A no-op once the
// Offer has been finalized by a successful [Offer.Commit] elsewhere.
func (o *Offer) Rescind() {
	if o.finalized.Load() != 0 {
		return
	}
	o.state.CompareAndSwap(offerCommitted, offerProbing)
}

// Commit finalizes a pairing this channel already won via TryAccept: it
// runs the commit callback and reports whether this call is the one that
// fired it. Idempotent — a second Commit call for the same pairing is a
// safe no-op, matching §4.2 step 2 ("idempotent no-ops if already
// committed to this pair").
func (o *Offer) Commit() bool {
	if !o.finalized.CompareAndSwap(0, 1) {
		return false
	}
	o.state.Store(offerCommitted)
	o.disarm()
	if o.onCommit != nil {
		o.onCommit()
	}
	return true
}

// Withdraw flips a still-Probing Offer to Withdrawn — the timeout/cancel
// path (§4.4). A no-op once committed, matching "withdraw() after commit
// is a no-op." Returns whether this call performed the transition.
func (o *Offer) Withdraw() bool {
	if o.finalized.Load() != 0 {
		return false
	}
	ok := o.state.CompareAndSwap(offerProbing, offerWithdrawn)
	if ok {
		o.disarm()
	}
	return ok
}

// State reports the Offer's current public state.
func (o *Offer) State() offerState {
	return o.state.Load()
}

// Done reports whether the Offer has left Probing, in either direction.
func (o *Offer) Done() bool {
	return o.state.Load() != offerProbing
}
