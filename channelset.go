// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "sync"

// ChannelSet is an ordered collection of same-typed channels with a
// persistent round-robin cursor, the only way to obtain [Fair] alt
// semantics (§4.3): Fair needs a cursor that survives across calls, which
// a one-shot slice of channels passed to [ReadFromAny] cannot provide.
type ChannelSet[T any] struct {
	mu     sync.Mutex
	chans  []*Channel[T]
	cursor int
}

// NewChannelSet builds a ChannelSet over the given channels, in the given
// order. The cursor starts at index 0.
func NewChannelSet[T any](chans ...*Channel[T]) *ChannelSet[T] {
	cs := make([]*Channel[T], len(chans))
	copy(cs, chans)
	return &ChannelSet[T]{chans: cs}
}

// Add appends a channel to the set.
func (s *ChannelSet[T]) Add(c *Channel[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chans = append(s.chans, c)
}

// Len reports the number of channels currently in the set.
func (s *ChannelSet[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chans)
}

// fairOrder returns the channel slice rotated to start at the cursor, and
// the cursor's snapshot index into the set's own order. The next cursor is
// computed separately by advanceCursor from the winner's ID.
func (s *ChannelSet[T]) fairOrder() ([]*Channel[T], int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.chans)
	if n == 0 {
		return nil, 0
	}
	start := s.cursor % n
	ordered := make([]*Channel[T], n)
	for i := 0; i < n; i++ {
		ordered[i] = s.chans[(start+i)%n]
	}
	return ordered, start
}

func (s *ChannelSet[T]) advanceCursor(winner ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.chans {
		if c.ID() == winner {
			s.cursor = (i + 1) % len(s.chans)
			return
		}
	}
}

// ReadFair alts a Read across the set using Fair priority: it starts from
// the persistent cursor, wraps around, and advances the cursor to
// (winner-index + 1) mod N on commit so the next call favors the channel
// just after the one that won.
func (s *ChannelSet[T]) ReadFair(deadline Deadline, cancel <-chan struct{}) (T, ID, error) {
	var zero T
	ordered, _ := s.fairOrder()
	if len(ordered) == 0 {
		return zero, 0, newError(InvalidOperation, "ReadFair", "")
	}
	reqs := make([]request, len(ordered))
	for i, c := range ordered {
		reqs[i] = Read(c)
	}
	res, err := runAlt(reqs, deadline, cancel)
	if err != nil {
		return zero, 0, err
	}
	s.advanceCursor(res.ChannelID)
	return res.Value.(T), res.ChannelID, nil
}

// WriteFair is the write-side counterpart of ReadFair.
func (s *ChannelSet[T]) WriteFair(v T, deadline Deadline, cancel <-chan struct{}) (ID, error) {
	ordered, _ := s.fairOrder()
	if len(ordered) == 0 {
		return 0, newError(InvalidOperation, "WriteFair", "")
	}
	reqs := make([]request, len(ordered))
	for i, c := range ordered {
		reqs[i] = Write(c, v)
	}
	res, err := runAlt(reqs, deadline, cancel)
	if err != nil {
		return 0, err
	}
	s.advanceCursor(res.ChannelID)
	return res.ChannelID, nil
}
