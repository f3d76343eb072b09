// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "fmt"

// Kind classifies the reason a channel operation or alt failed.
// Kind is not itself an error; wrap it in an [Error] to satisfy the
// error interface.
type Kind uint8

const (
	// Timeout means the deadline elapsed before a commit.
	Timeout Kind = iota + 1
	// Cancelled means an external cancellation signal fired before a commit.
	Cancelled
	// Retired means the channel reached (or already was in) the Retired state
	// while the request was live, or refused it because it was Retiring.
	Retired
	// OverflowRejected means the pending queue cap was exceeded and the
	// overflow policy discarded this request (Reject, or eviction under
	// LIFO/FIFO-drop-head).
	OverflowRejected
	// InvalidOperation means the caller misused the API: an empty alt list,
	// Fair priority without a ChannelSet, or a read and a write against the
	// same channel in one alt.
	InvalidOperation
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case Timeout:
		return "Timeout"
	case Cancelled:
		return "Cancelled"
	case Retired:
		return "Retired"
	case OverflowRejected:
		return "OverflowRejected"
	case InvalidOperation:
		return "InvalidOperation"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every operation in this
// package. Callers distinguish failures with [errors.Is] against the
// package-level sentinels, or by inspecting [Error.Kind].
type Error struct {
	Kind Kind
	// Op names the operation that failed (e.g. "Read", "Write", "Alt").
	Op string
	// ChannelName is the name of the channel involved, if any.
	ChannelName string
}

func (e *Error) Error() string {
	if e.ChannelName != "" {
		return fmt.Sprintf("csp: %s on %q: %s", e.Op, e.ChannelName, e.Kind)
	}
	return fmt.Sprintf("csp: %s: %s", e.Op, e.Kind)
}

// Is reports whether target is a sentinel for e's Kind, so callers can
// write errors.Is(err, csp.ErrTimeout).
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	return ok && sentinel.Op == "" && sentinel.ChannelName == "" && sentinel.Kind == e.Kind
}

// Sentinel errors for use with errors.Is. They carry no Op/ChannelName so
// they compare by Kind only (see [Error.Is]).
var (
	ErrTimeout          = &Error{Kind: Timeout}
	ErrCancelled        = &Error{Kind: Cancelled}
	ErrRetired          = &Error{Kind: Retired}
	ErrOverflowRejected = &Error{Kind: OverflowRejected}
	ErrInvalidOperation = &Error{Kind: InvalidOperation}
)

func newError(kind Kind, op, channelName string) *Error {
	return &Error{Kind: kind, Op: op, ChannelName: channelName}
}
