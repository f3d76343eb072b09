// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"testing"

	"code.hybscloud.com/csp"
)

func TestScopeLocalShadowsParent(t *testing.T) {
	root := csp.NewRootScope()
	root.Set("x", 1)
	child := root.NewChild()
	child.Set("x", 2)

	if v, ok := child.Find("x"); !ok || v.(int) != 2 {
		t.Fatalf("child lookup: got (%v, %v), want (2, true)", v, ok)
	}
	if v, ok := root.Find("x"); !ok || v.(int) != 1 {
		t.Fatalf("root lookup: got (%v, %v), want (1, true)", v, ok)
	}
}

func TestScopeFallsBackToParent(t *testing.T) {
	root := csp.NewRootScope()
	root.Set("y", "global")
	child := root.NewChild()

	v, ok := child.Find("y")
	if !ok || v.(string) != "global" {
		t.Fatalf("got (%v, %v), want (global, true)", v, ok)
	}
}

func TestScopeMissReturnsFalse(t *testing.T) {
	root := csp.NewRootScope()
	if _, ok := root.Find("nope"); ok {
		t.Fatal("expected miss")
	}
}

func TestScopeGetOrCreate(t *testing.T) {
	root := csp.NewRootScope()
	calls := 0
	make1 := func() any { calls++; return csp.NewChannel[int]() }
	first := root.GetOrCreate("ch", make1)
	second := root.GetOrCreate("ch", make1)
	if first != second {
		t.Fatal("GetOrCreate should return the same value on the second call")
	}
	if calls != 1 {
		t.Fatalf("make called %d times, want 1", calls)
	}
}
