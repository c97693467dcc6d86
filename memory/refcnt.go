// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package memory

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/colvec/internal/invariants"
)

// refcnt provides an atomic reference count.
type refcnt struct {
	val atomic.Int32
}

// init initializes the reference count to the specified value.
func (v *refcnt) init(val int32) {
	v.val.Store(val)
}

func (v *refcnt) refs() int32 {
	return v.val.Load()
}

func (v *refcnt) acquire() {
	n := v.val.Add(1)
	if invariants.Enabled && n <= 1 {
		panic(fmt.Sprintf("refcnt: acquire with %d refs", n-1))
	}
}

// release decrements the reference count, returning true when no references
// remain.
func (v *refcnt) release() bool {
	n := v.val.Add(-1)
	if invariants.Enabled && n < 0 {
		panic(fmt.Sprintf("refcnt: release with %d refs", n+1))
	}
	return n == 0
}
