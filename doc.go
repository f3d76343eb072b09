// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package csp provides Communicating Sequential Processes style channels:
// typed rendezvous points with buffering, fairness, priority, timeouts,
// cancellation, and cooperative retirement, plus a multi-channel
// alternation ("alt") protocol for selecting among many pending reads and
// writes at once.
//
// # Architecture
//
//   - Channel: a typed rendezvous queue ([Channel]) holding a bounded
//     buffer plus FIFO queues of pending readers and writers, guarded by
//     one mutex per channel.
//   - Offer Arbiter: the two-phase commit primitive ([Offer]) that lets one
//     alt post an intent to many channels and commit at most one, backed by
//     [code.hybscloud.com/atomix] atomics.
//   - Channel Set: a stable, ordered container ([ChannelSet]) over channels
//     with a fairness cursor for round-robin alternation.
//   - Alt Engine: the multi-channel [ReadFromAny], [WriteToAny] and
//     [ReadOrWriteAny] operations.
//   - Timer & Cancellation: per-request deadlines and external cancellation
//     signals race against the Offer Arbiter; see [Deadline] and [Never].
//   - Registry/Scope: named-channel lookup in nested scopes, see [Scope].
//
// # Non-blocking fast path
//
// Every mutating channel operation runs matchmaking under the channel's own
// critical section without ever suspending. [Channel.TryRead] and
// [Channel.TryWrite] expose that immediate attempt directly, reporting
// [code.hybscloud.com/iox.ErrWouldBlock] when no partner or buffer slot is
// available right now; [Channel.Read] and [Channel.Write] try the same
// fast path before falling back to a blocking [Offer]-backed wait.
// [code.hybscloud.com/iox.Backoff] gives the same non-blocking vocabulary
// to [Supervisor]'s contended-queue retry, and [code.hybscloud.com/spin]
// backs the Offer Arbiter's bounded CAS-contention spin.
//
// # Example
//
//	c := csp.NewChannel[int]()
//	go func() { c.Write(42, csp.Never) }()
//	v, err := c.Read(csp.Never)
package csp
