// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// OverflowPolicy governs what happens when a pending queue would exceed
// its configured cap (§4.2).
type OverflowPolicy uint8

const (
	// Reject fails the newly arriving request with OverflowRejected.
	Reject OverflowPolicy = iota
	// LIFO drops and fails the newest previously queued request, then
	// admits the new one.
	LIFO
	// FIFODropHead drops and fails the oldest queued request, then admits
	// the new one.
	FIFODropHead
)
