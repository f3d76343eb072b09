// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package contrib provides an algebraic-effects combinator layer over the
// csp package's blocking Read/Write, built on code.hybscloud.com/kont's
// Cont-world Eff. It lets a channel protocol be written as an effect
// program and evaluated later, rather than as a sequence of direct calls.
package contrib

import (
	"code.hybscloud.com/csp"
	"code.hybscloud.com/kont"
)

// Recv is the effect operation for receiving a value of type T from ch.
// Perform(Recv[T]{Ch: ch, Deadline: d}) receives one value.
type Recv[T any] struct {
	kont.Phantom[T]
	Ch       *csp.Channel[T]
	Deadline csp.Deadline
}

// DispatchChannel handles Recv by blocking on the channel's own alt-of-one
// Read until it commits, times out, or the channel retires.
func (r Recv[T]) DispatchChannel() (kont.Resumed, error) {
	v, err := r.Ch.Read(r.Deadline)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Send is the effect operation for sending v on ch.
// Perform(Send[T]{Ch: ch, Value: v, Deadline: d}) sends one value.
type Send[T any] struct {
	kont.Phantom[struct{}]
	Ch       *csp.Channel[T]
	Value    T
	Deadline csp.Deadline
}

// DispatchChannel handles Send by blocking on the channel's Write.
func (s Send[T]) DispatchChannel() (kont.Resumed, error) {
	if err := s.Ch.Write(s.Value, s.Deadline); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Retire is the effect operation for retiring ch.
type Retire[T any] struct {
	kont.Phantom[struct{}]
	Ch        *csp.Channel[T]
	Immediate bool
}

// DispatchChannel handles Retire. Never fails.
func (r Retire[T]) DispatchChannel() (kont.Resumed, error) {
	r.Ch.Retire(r.Immediate)
	return struct{}{}, nil
}

// channelDispatcher is the structural interface every effect operation in
// this package satisfies.
type channelDispatcher interface {
	DispatchChannel() (kont.Resumed, error)
}
