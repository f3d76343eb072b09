// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// future is the tagged-union completer every pending request resolves
// through (Design Notes: "post a result into the caller's completer
// without knowing T statically" — mirrors [code.hybscloud.com/kont.Resumed],
// a runtime any used the same way to avoid threading a static type
// parameter through the arbitration machinery). Exactly one of setResult
// or setError is ever called, by whichever channel's matchmake pass (or
// timeout/cancel/overflow path) wins the shared [Offer].
//
// solo marks a future backing a single-channel, single-request operation
// (a plain Read/Write, or an alt of exactly one candidate): only a solo
// future is resolved by an overflow eviction, since a multi-candidate
// alt's Offer may still be won through one of its other candidates
// (§9 Open Question) even after one candidate channel evicts it.
type future struct {
	done   chan struct{}
	val    any
	winner ID
	write  bool
	err    error
	solo   bool
}

func newFuture(solo bool) *future {
	return &future{done: make(chan struct{}), solo: solo}
}

func (f *future) setResult(v any, winner ID, write bool) {
	f.val, f.winner, f.write = v, winner, write
	close(f.done)
}

func (f *future) setError(err error) {
	f.err = err
	close(f.done)
}

// wait blocks until the future resolves.
func (f *future) wait() (any, ID, bool, error) {
	<-f.done
	return f.val, f.winner, f.write, f.err
}

// Done exposes the resolution signal for callers that want to select on
// it directly instead of blocking in wait.
func (f *future) Done() <-chan struct{} {
	return f.done
}
