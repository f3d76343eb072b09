// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"testing"
	"time"

	"code.hybscloud.com/csp"
)

func TestChannelSetFairRoundRobin(t *testing.T) {
	a := csp.NewChannel[int](csp.WithCapacity[int](1))
	b := csp.NewChannel[int](csp.WithCapacity[int](1))
	c := csp.NewChannel[int](csp.WithCapacity[int](1))
	set := csp.NewChannelSet(a, b, c)

	a.Write(1, csp.Never) //nolint:errcheck
	b.Write(2, csp.Never) //nolint:errcheck
	c.Write(3, csp.Never) //nolint:errcheck

	seen := make([]uint64, 0, 3)
	for i := 0; i < 3; i++ {
		_, id, err := set.ReadFair(time.Now().Add(50*time.Millisecond), nil)
		if err != nil {
			t.Fatalf("ReadFair: %v", err)
		}
		seen = append(seen, id)
	}
	if seen[0] != a.ID() || seen[1] != b.ID() || seen[2] != c.ID() {
		t.Fatalf("got order %v, want [%d %d %d]", seen, a.ID(), b.ID(), c.ID())
	}
}

func TestChannelSetFairAdvancesPastBusyChannel(t *testing.T) {
	a := csp.NewChannel[int](csp.WithCapacity[int](1))
	b := csp.NewChannel[int](csp.WithCapacity[int](1))
	set := csp.NewChannelSet(a, b)

	b.Write(2, csp.Never) //nolint:errcheck
	_, id, err := set.ReadFair(time.Now().Add(50*time.Millisecond), nil)
	if err != nil {
		t.Fatalf("ReadFair: %v", err)
	}
	if id != b.ID() {
		t.Fatalf("got %d, want %d (only b had data)", id, b.ID())
	}

	a.Write(1, csp.Never) //nolint:errcheck
	b.Write(3, csp.Never) //nolint:errcheck
	_, id, err = set.ReadFair(time.Now().Add(50*time.Millisecond), nil)
	if err != nil {
		t.Fatalf("ReadFair: %v", err)
	}
	if id != a.ID() {
		t.Fatalf("got %d, want %d (cursor should favor a after b won)", id, a.ID())
	}
}
