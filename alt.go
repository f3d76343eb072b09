// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// Result is the outcome of a heterogeneous alt ([ReadOrWriteAny]): which
// channel won, whether it was a read or a write,
// and the value (for a read; a write's Value is the zero any).
type Result struct {
	ChannelID   ID
	ChannelName string
	Write       bool
	Value       any
}

// runAlt posts reqs (already ordered per the desired [Priority]) against a
// freshly built Offer, arms it, waits for resolution, and retracts every
// candidate the winner didn't consume. It is the single mechanism behind
// every alt entry point in this package (§4.3, §4.4).
func runAlt(reqs []request, deadline Deadline, cancel <-chan struct{}) (Result, error) {
	if len(reqs) == 0 {
		return Result{}, newError(InvalidOperation, "Alt", "")
	}
	seen := make(map[ID]struct{}, len(reqs))
	for _, r := range reqs {
		if _, dup := seen[r.channelID()]; dup {
			return Result{}, newError(InvalidOperation, "Alt", r.channelName())
		}
		seen[r.channelID()] = struct{}{}
	}
	fut := newFuture(len(reqs) == 1)
	offer := NewOffer(deadline, cancel, nil)
	admitted := false
	for _, r := range reqs {
		if r.post(offer, fut) {
			admitted = true
			if offer.Done() {
				break
			}
		}
	}
	if !admitted {
		// Every candidate refused admission outright (retired, or
		// Retiring and rejecting new admission): §4.3's "all channels
		// retired before commit" edge case, which must fail synchronously
		// rather than wait on a future nothing will ever resolve.
		return Result{}, newError(Retired, "Alt", "")
	}
	offer.MarkProbed()
	if !offer.Done() {
		offer.arm(func(kind Kind) {
			if offer.Withdraw() {
				fut.setError(newError(kind, "Alt", ""))
			}
		})
	}
	val, winner, write, err := fut.wait()
	for _, r := range reqs {
		if r.channelID() != winner {
			r.retract(offer, fut)
		}
	}
	if err != nil {
		return Result{}, err
	}
	name := ""
	for _, r := range reqs {
		if r.channelID() == winner {
			name = r.channelName()
			break
		}
	}
	return Result{ChannelID: winner, ChannelName: name, Write: write, Value: val}, nil
}

func orderedRequests(reqs []request, priority Priority) []request {
	switch priority {
	case Random:
		idx := make([]int, len(reqs))
		for i := range idx {
			idx[i] = i
		}
		shuffle(idx)
		out := make([]request, len(reqs))
		for i, j := range idx {
			out[i] = reqs[j]
		}
		return out
	default: // First, Any: posted in caller order (§9 Open Question: synonyms)
		return reqs
	}
}

// errFairNeedsChannelSet is the message spec §4.3 mandates when Fair is
// requested through an ad-hoc alt call instead of a [ChannelSet]: Fair
// needs a cursor that survives across calls, which a one-shot channel
// list cannot provide.
const errFairNeedsChannelSet = "construct a ChannelSet for fair operations"

// ReadFromAny alts a Read across channels of the same element type,
// returning the value received and the ID of the channel it came from.
func ReadFromAny[T any](priority Priority, deadline Deadline, cancel <-chan struct{}, chans ...*Channel[T]) (T, ID, error) {
	var zero T
	if len(chans) == 0 {
		return zero, 0, newError(InvalidOperation, "ReadFromAny", "")
	}
	if priority == Fair {
		return zero, 0, newError(InvalidOperation, "ReadFromAny", errFairNeedsChannelSet)
	}
	reqs := make([]request, len(chans))
	for i, c := range chans {
		reqs[i] = Read(c)
	}
	res, err := runAlt(orderedRequests(reqs, priority), deadline, cancel)
	if err != nil {
		return zero, 0, err
	}
	return res.Value.(T), res.ChannelID, nil
}

// WriteToAny alts a Write of the same value across channels of the same
// element type, returning the ID of the channel that accepted it.
func WriteToAny[T any](priority Priority, deadline Deadline, cancel <-chan struct{}, v T, chans ...*Channel[T]) (ID, error) {
	if len(chans) == 0 {
		return 0, newError(InvalidOperation, "WriteToAny", "")
	}
	if priority == Fair {
		return 0, newError(InvalidOperation, "WriteToAny", errFairNeedsChannelSet)
	}
	reqs := make([]request, len(chans))
	for i, c := range chans {
		reqs[i] = Write(c, v)
	}
	res, err := runAlt(orderedRequests(reqs, priority), deadline, cancel)
	if err != nil {
		return 0, err
	}
	return res.ChannelID, nil
}

// ReadOrWriteAny alts across a heterogeneous mix of Read and Write
// candidates built with [Read] and [Write], returning which one committed.
func ReadOrWriteAny(priority Priority, deadline Deadline, cancel <-chan struct{}, reqs ...request) (Result, error) {
	if len(reqs) == 0 {
		return Result{}, newError(InvalidOperation, "ReadOrWriteAny", "")
	}
	if priority == Fair {
		return Result{}, newError(InvalidOperation, "ReadOrWriteAny", errFairNeedsChannelSet)
	}
	return runAlt(orderedRequests(reqs, priority), deadline, cancel)
}
