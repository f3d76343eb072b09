// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "sync"

// Scope is a node in a tree of named registries (§4.5): channels,
// ChannelSets, or anything else callers want addressable by name are
// stored as `any` and looked up Local → Parent → Global. Each node
// serializes its own map with its own mutex; a lookup that misses locally
// walks up the parent chain rather than taking every ancestor's lock at
// once.
type Scope struct {
	mu     sync.Mutex
	parent *Scope
	values map[string]any
}

// NewRootScope creates a Scope with no parent — the Global scope of a
// registry tree.
func NewRootScope() *Scope {
	return &Scope{values: make(map[string]any)}
}

// NewChild creates a Scope whose lookups fall back to s.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, values: make(map[string]any)}
}

// Set stores v under name in this scope node only.
func (s *Scope) Set(name string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = v
}

// Find looks up name starting at s and walking up through parents.
func (s *Scope) Find(name string) (any, bool) {
	for node := s; node != nil; node = node.parent {
		node.mu.Lock()
		v, ok := node.values[name]
		node.mu.Unlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// GetOrCreate returns the existing value for name if present anywhere in
// the chain, or calls make and stores the result in s (not an ancestor)
// if not. make is invoked at most once per miss, but is not itself
// serialized against a concurrent GetOrCreate racing for the same name;
// the loser's freshly made value is discarded and the winner's is kept.
func (s *Scope) GetOrCreate(name string, make_ func() any) any {
	if v, ok := s.Find(name); ok {
		return v
	}
	v := make_()
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.values[name]; ok {
		return existing
	}
	s.values[name] = v
	return v
}

// Delete removes name from this scope node only.
func (s *Scope) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
}
