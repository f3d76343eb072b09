// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"testing"

	"code.hybscloud.com/csp"
)

func TestOfferTryAcceptCommitOnce(t *testing.T) {
	calls := 0
	o := csp.NewOffer(csp.Never, nil, func() { calls++ })
	if !o.TryAccept() {
		t.Fatal("first TryAccept should succeed")
	}
	if o.TryAccept() {
		t.Fatal("second concurrent TryAccept should fail while already accepted")
	}
	if !o.Commit() {
		t.Fatal("first Commit should report true")
	}
	if o.Commit() {
		t.Fatal("second Commit should be a no-op reporting false")
	}
	if calls != 1 {
		t.Fatalf("onCommit called %d times, want 1", calls)
	}
	if o.State() != 1 {
		t.Fatalf("state after commit = %d, want Committed", o.State())
	}
}

func TestOfferRescindReleasesForAnotherWinner(t *testing.T) {
	o := csp.NewOffer(csp.Never, nil, nil)
	if !o.TryAccept() {
		t.Fatal("TryAccept should succeed")
	}
	o.Rescind()
	if !o.TryAccept() {
		t.Fatal("TryAccept after Rescind should succeed again")
	}
}

func TestOfferWithdrawIsNoOpAfterCommit(t *testing.T) {
	o := csp.NewOffer(csp.Never, nil, nil)
	o.TryAccept()
	o.Commit()
	if o.Withdraw() {
		t.Fatal("Withdraw after Commit should report false")
	}
}

func TestOfferDoneReflectsResolution(t *testing.T) {
	o := csp.NewOffer(csp.Never, nil, nil)
	if o.Done() {
		t.Fatal("fresh offer should not be Done")
	}
	o.Withdraw()
	if !o.Done() {
		t.Fatal("withdrawn offer should be Done")
	}
}
