// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contrib

import (
	"code.hybscloud.com/csp"
	"code.hybscloud.com/kont"
)

// SendThen writes v to ch and then continues with next.
// Fuses Perform(Send[T]{...}) + Then.
func SendThen[T, B any](ch *csp.Channel[T], v T, deadline csp.Deadline, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send[T]{Ch: ch, Value: v, Deadline: deadline}), next)
}

// RecvBind reads from ch and passes the value to f.
// Fuses Perform(Recv[T]{...}) + Bind.
func RecvBind[T, B any](ch *csp.Channel[T], deadline csp.Deadline, f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv[T]{Ch: ch, Deadline: deadline}), f)
}

// RetireDone retires ch and returns a.
// Fuses Perform(Retire[T]{...}) + Then + Pure.
func RetireDone[T, A any](ch *csp.Channel[T], immediate bool, a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Retire[T]{Ch: ch, Immediate: immediate}), kont.Pure(a))
}
