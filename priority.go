// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "math/rand/v2"

// Priority selects how an alt operation orders its candidate requests
// before posting them (§4.3).
type Priority uint8

const (
	// First posts requests in the caller-supplied order. Because posting
	// is ordered and the Offer Arbiter accepts the first success, any
	// channel already satisfiable at post time wins over later channels.
	// This is a preference, not a guarantee, under contention.
	First Priority = iota
	// Any posts in the same order as First. The library never reorders
	// for Any; the two are synonyms (§9 Open Question).
	Any
	// Random permutes requests with a uniform Fisher-Yates shuffle before
	// posting, otherwise identical to First.
	Random
	// Fair is only available through an explicit [ChannelSet]; it starts
	// posting from the set's persistent cursor and wraps around,
	// advancing the cursor to (winner-index + 1) mod N on commit.
	Fair
)

// shuffle permutes idx in place with a uniform Fisher-Yates shuffle.
func shuffle(idx []int) {
	for i := len(idx) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
}
