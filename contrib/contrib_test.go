// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contrib_test

import (
	"testing"
	"time"

	"code.hybscloud.com/csp"
	"code.hybscloud.com/csp/contrib"
	"code.hybscloud.com/kont"
)

func TestSendThenRecvBind(t *testing.T) {
	ch := csp.NewChannel[int]()

	sender := contrib.SendThen(ch, 42, csp.Never, kont.Pure(struct{}{}))
	go func() { contrib.Exec(sender) }()

	receiver := contrib.RecvBind(ch, csp.Never, func(v int) kont.Eff[int] {
		return kont.Pure(v)
	})
	result := contrib.Exec(receiver)
	v, ok := result.GetRight()
	if !ok || v != 42 {
		t.Fatalf("got %+v, want Right(42)", result)
	}
}

func TestExecReturnsLeftOnTimeout(t *testing.T) {
	ch := csp.NewChannel[int]()
	receiver := contrib.RecvBind(ch, time.Now().Add(10*time.Millisecond), func(v int) kont.Eff[int] {
		return kont.Pure(v)
	})
	result := contrib.Exec(receiver)
	if _, ok := result.GetRight(); ok {
		t.Fatal("expected Left on timeout, got Right")
	}
	err, ok := result.GetLeft()
	if !ok || err == nil {
		t.Fatal("expected a non-nil Left error")
	}
}

func TestLoopSendsSequence(t *testing.T) {
	ch := csp.NewChannel[int](csp.WithCapacity[int](4))
	payload := []int{1, 2, 3}

	sender := contrib.Loop(payload, func(s []int) kont.Eff[kont.Either[[]int, struct{}]] {
		if len(s) == 0 {
			return kont.Pure(kont.Right[[]int, struct{}](struct{}{}))
		}
		return contrib.SendThen(ch, s[0], csp.Never, kont.Pure(kont.Left[[]int, struct{}](s[1:])))
	})
	contrib.Exec(sender)

	for _, want := range payload {
		v, err := ch.Read(csp.Never)
		if err != nil || v != want {
			t.Fatalf("got (%d, %v), want (%d, nil)", v, err, want)
		}
	}
}

func TestReifyReflectRoundTrip(t *testing.T) {
	ch := csp.NewChannel[int](csp.WithCapacity[int](1))
	ch.Write(11, csp.Never) //nolint:errcheck

	prog := contrib.RecvBind(ch, csp.Never, func(v int) kont.Eff[int] { return kont.Pure(v) })
	back := contrib.Reflect(contrib.Reify(prog))
	result := contrib.Exec(back)
	v, ok := result.GetRight()
	if !ok || v != 11 {
		t.Fatalf("got %+v, want Right(11)", result)
	}
}
