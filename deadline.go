// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "time"

// Deadline is an absolute instant past which a pending operation fails
// with [ErrTimeout]. Use [Never] for an operation that never times out.
type Deadline = time.Time

// Never is the sentinel deadline denoting "wait indefinitely."
// It is a [time.Time] far beyond any real deadline (Unix second 1<<62),
// matching Go idiom over inventing a separate infinite/finite sum type.
var Never = time.Unix(1<<62, 0)

// elapsed reports whether d denotes an already-elapsed deadline.
// The zero Deadline is treated as "already elapsed" per §4.4.
func elapsed(d Deadline) bool {
	if d.IsZero() {
		return true
	}
	return !d.After(time.Now())
}

// isNever reports whether d is the infinite sentinel.
func isNever(d Deadline) bool {
	return d.Equal(Never)
}

// deadlineTimer returns a timer that fires at d, already expired if d has
// already passed.
func deadlineTimer(d Deadline) *time.Timer {
	dur := time.Until(d)
	if dur < 0 {
		dur = 0
	}
	return time.NewTimer(dur)
}
