// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contrib

import "code.hybscloud.com/kont"

// channelHandler implements kont.Handler for the effects in this package,
// short-circuiting on the first DispatchChannel error into a Left value
// instead of panicking: a Timeout or Retired mid-protocol is an expected
// outcome here, not a programmer error.
type channelHandler[R any] struct{}

// Dispatch implements kont.Handler via structural interface assertion.
func (h channelHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	d, ok := op.(channelDispatcher)
	if !ok {
		panic("contrib: unhandled effect in channelHandler")
	}
	v, err := d.DispatchChannel()
	if err != nil {
		return kont.Left[error, R](err), false
	}
	return v, true
}

// Exec runs a Cont-world channel protocol to completion, returning
// Right(result) on success or Left(err) at the first failing operation.
func Exec[R any](protocol kont.Eff[R]) kont.Either[error, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return kont.Handle(wrapped, channelHandler[R]{})
}

// ExecExpr is the Expr-world counterpart of Exec.
func ExecExpr[R any](protocol kont.Expr[R]) kont.Either[error, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return kont.HandleExpr(wrapped, channelHandler[R]{})
}
