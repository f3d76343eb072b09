// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/csp"
)

func TestGoroutineExecutorRunsAndWaits(t *testing.T) {
	e := csp.NewGoroutineExecutor()
	var n atomic.Int32
	for i := 0; i < 10; i++ {
		e.Submit(func() {
			time.Sleep(time.Millisecond)
			n.Add(1)
		})
	}
	if err := e.EnsureFinished(csp.Never); err != nil {
		t.Fatalf("EnsureFinished: %v", err)
	}
	if n.Load() != 10 {
		t.Fatalf("ran %d tasks, want 10", n.Load())
	}
}

func TestPoolExecutorBoundsParallelism(t *testing.T) {
	e := csp.NewPoolExecutor(2)
	var running, maxRunning atomic.Int32
	for i := 0; i < 6; i++ {
		e.Submit(func() {
			cur := running.Add(1)
			for {
				m := maxRunning.Load()
				if cur <= m || maxRunning.CompareAndSwap(m, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
		})
	}
	if err := e.EnsureFinished(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("EnsureFinished: %v", err)
	}
	if maxRunning.Load() > 2 {
		t.Fatalf("observed %d concurrent tasks, want <= 2", maxRunning.Load())
	}
}
