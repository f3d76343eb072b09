// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/csp"
)

func TestReadFromAnyPicksReadyChannel(t *testing.T) {
	a := csp.NewChannel[int](csp.WithName[int]("a"))
	b := csp.NewChannel[int](csp.WithName[int]("b"))

	go func() {
		time.Sleep(10 * time.Millisecond)
		b.Write(9, csp.Never) //nolint:errcheck
	}()

	v, id, err := csp.ReadFromAny(csp.First, csp.Never, nil, a, b)
	if err != nil {
		t.Fatalf("ReadFromAny: %v", err)
	}
	if v != 9 || id != b.ID() {
		t.Fatalf("got (%d, %d), want (9, %d)", v, id, b.ID())
	}
}

func TestWriteToAnyPicksReadyChannel(t *testing.T) {
	a := csp.NewChannel[int]()
	b := csp.NewChannel[int]()

	got := make(chan int, 1)
	go func() {
		v, _ := b.Read(csp.Never)
		got <- v
	}()
	time.Sleep(10 * time.Millisecond)

	id, err := csp.WriteToAny(csp.First, csp.Never, nil, 3, a, b)
	if err != nil {
		t.Fatalf("WriteToAny: %v", err)
	}
	if id != b.ID() {
		t.Fatalf("got channel %d, want %d", id, b.ID())
	}
	if v := <-got; v != 3 {
		t.Fatalf("receiver got %d, want 3", v)
	}
}

func TestReadOrWriteAnyMixed(t *testing.T) {
	in := csp.NewChannel[int]()
	out := csp.NewChannel[string]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		in.Write(5, csp.Never) //nolint:errcheck
	}()

	res, err := csp.ReadOrWriteAny(csp.First, csp.Never, nil, csp.Read(in), csp.Write(out, "hi"))
	if err != nil {
		t.Fatalf("ReadOrWriteAny: %v", err)
	}
	if res.Write || res.ChannelID != in.ID() || res.Value.(int) != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestReadOrWriteAnySameChannelIsInvalidOperation(t *testing.T) {
	c := csp.NewChannel[int]()
	_, err := csp.ReadOrWriteAny(csp.First, time.Now().Add(50*time.Millisecond), nil, csp.Read(c), csp.Write(c, 1))
	if !errors.Is(err, csp.ErrInvalidOperation) {
		t.Fatalf("got %v, want ErrInvalidOperation", err)
	}
}

func TestReadFromAnyFairIsInvalidOperation(t *testing.T) {
	a := csp.NewChannel[int]()
	_, _, err := csp.ReadFromAny(csp.Fair, csp.Never, nil, a)
	if !errors.Is(err, csp.ErrInvalidOperation) {
		t.Fatalf("got %v, want ErrInvalidOperation", err)
	}
}

func TestWriteToAnyFairIsInvalidOperation(t *testing.T) {
	a := csp.NewChannel[int]()
	_, err := csp.WriteToAny(csp.Fair, csp.Never, nil, 1, a)
	if !errors.Is(err, csp.ErrInvalidOperation) {
		t.Fatalf("got %v, want ErrInvalidOperation", err)
	}
}

func TestReadOrWriteAnyFairIsInvalidOperation(t *testing.T) {
	a := csp.NewChannel[int]()
	_, err := csp.ReadOrWriteAny(csp.Fair, csp.Never, nil, csp.Read(a))
	if !errors.Is(err, csp.ErrInvalidOperation) {
		t.Fatalf("got %v, want ErrInvalidOperation", err)
	}
}

func TestAltEmptyIsInvalidOperation(t *testing.T) {
	_, _, err := csp.ReadFromAny[int](csp.First, csp.Never, nil)
	if !errors.Is(err, csp.ErrInvalidOperation) {
		t.Fatalf("got %v, want ErrInvalidOperation", err)
	}
}

func TestAltAllRetiredFailsRetired(t *testing.T) {
	a := csp.NewChannel[int]()
	b := csp.NewChannel[int]()
	a.Retire(true)
	b.Retire(true)

	_, _, err := csp.ReadFromAny(csp.First, csp.Never, nil, a, b)
	if !errors.Is(err, csp.ErrRetired) {
		t.Fatalf("got %v, want ErrRetired", err)
	}
}

func TestAltExactlyOnceWinner(t *testing.T) {
	const n = 8
	chans := make([]*csp.Channel[int], n)
	for i := range chans {
		chans[i] = csp.NewChannel[int]()
	}
	go func() {
		time.Sleep(5 * time.Millisecond)
		chans[3].Write(1, csp.Never) //nolint:errcheck
	}()
	_, id, err := csp.ReadFromAny(csp.Random, csp.Never, nil, chans...)
	if err != nil {
		t.Fatalf("ReadFromAny: %v", err)
	}
	if id != chans[3].ID() {
		t.Fatalf("got channel %d, want %d", id, chans[3].ID())
	}
	for _, c := range chans {
		if stats := c.Probe(); stats.PendingReaders != 0 {
			t.Fatalf("channel %d has a leftover pending reader", c.ID())
		}
	}
}
