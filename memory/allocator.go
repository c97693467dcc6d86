// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package memory provides the reference-counted buffers and the budgeted
// allocator backing columnar vectors. It is the leaf dependency of the
// vector layer: vectors never touch raw byte slices directly, only Buffers
// obtained here.
package memory

import (
	"math/bits"
	"sync/atomic"

	"github.com/cockroachdb/crlib/crbytes"
	"github.com/cockroachdb/errors"
)

// ErrOutOfMemory is returned when an allocation would exceed the allocator's
// byte budget.
var ErrOutOfMemory = errors.New("memory: allocation budget exhausted")

// An Allocator hands out reference-counted Buffers and accounts for every
// live byte. Allocation sizes are rounded up to a power of two, so the
// capacity of a returned Buffer may exceed the request; callers that track
// achieved capacity (rather than requested capacity) benefit from the
// rounding on subsequent allocations.
//
// The accounting is atomic; everything else about an Allocator is immutable
// after construction, so an Allocator may be shared by vectors on different
// goroutines.
type Allocator struct {
	// budget bounds the total in-use bytes. Zero means unlimited.
	budget int64

	inUse    atomic.Int64
	total    atomic.Int64
	allocs   atomic.Int64
	releases atomic.Int64

	empty Buffer
}

// NewAllocator constructs an Allocator with the provided byte budget. A
// budget of zero or less imposes no limit.
func NewAllocator(budget int64) *Allocator {
	return &Allocator{budget: budget}
}

// roundUpPow2 rounds n up to the next power of two.
func roundUpPow2(n int) int {
	if n <= 1 {
		return n
	}
	return 1 << bits.Len64(uint64(n-1))
}

// Allocate returns a zeroed Buffer with capacity of at least n bytes,
// debiting the allocator's budget. The returned Buffer holds the sole
// reference to its backing storage. Allocate fails with ErrOutOfMemory when
// the rounded size would push the in-use total past the budget.
func (a *Allocator) Allocate(n int) (*Buffer, error) {
	if n < 0 {
		panic(errors.AssertionFailedf("memory: allocate %d bytes", n))
	}
	if n == 0 {
		return a.Empty(), nil
	}
	size := roundUpPow2(n)
	if a.budget > 0 && a.inUse.Load()+int64(size) > a.budget {
		return nil, errors.Wrapf(ErrOutOfMemory,
			"allocating %d bytes (%d rounded, %d in use, budget %d)",
			n, size, a.inUse.Load(), a.budget)
	}
	a.inUse.Add(int64(size))
	a.total.Add(int64(size))
	a.allocs.Add(1)

	alloc := &allocation{a: a, buf: crbytes.AllocAligned(size)}
	alloc.refs.init(1)
	return &Buffer{alloc: alloc, data: alloc.buf}, nil
}

// Empty returns the zero-capacity placeholder buffer. It has no backing
// allocation: Retain and Release on it are no-ops, and it is shared by every
// caller.
func (a *Allocator) Empty() *Buffer {
	return &a.empty
}

// free credits size bytes back to the allocator. Called by the final Release
// of a Buffer.
func (a *Allocator) free(size int) {
	a.inUse.Add(-int64(size))
	a.releases.Add(1)
}

// Metrics contains the allocator's memory statistics.
type Metrics struct {
	// InUseBytes is the total number of bytes currently allocated.
	InUseBytes int64
	// TotalBytes is the cumulative number of bytes allocated since the
	// allocator was constructed.
	TotalBytes int64
	// AllocCount is the number of Allocate calls that returned a buffer.
	AllocCount int64
	// ReleaseCount is the number of backing allocations freed.
	ReleaseCount int64
}

// Metrics returns the allocator's current memory statistics.
func (a *Allocator) Metrics() Metrics {
	return Metrics{
		InUseBytes:   a.inUse.Load(),
		TotalBytes:   a.total.Load(),
		AllocCount:   a.allocs.Load(),
		ReleaseCount: a.releases.Load(),
	}
}
