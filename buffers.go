// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import (
	"github.com/cockroachdb/colvec/internal/bitutil"
	"github.com/cockroachdb/colvec/memory"
)

// ZeroVector zeroes both buffers over their full capacity.
func (v *Vector) ZeroVector() {
	v.validity.SetZero(0, v.validity.Capacity())
	v.values.SetZero(0, v.values.Capacity())
}

// Reset returns the vector to its initial state without releasing any
// memory: both buffers are zero-filled and the value count drops to zero.
func (v *Vector) Reset() {
	v.valueCount = 0
	v.ZeroVector()
}

// Clear releases both buffers back to the allocator and empties the vector.
// It is idempotent and safe to call on an already-empty vector.
func (v *Vector) Clear() {
	v.valueCount = 0
	v.validity.Release()
	v.validity = v.alloc.Empty()
	v.values.Release()
	v.values = v.alloc.Empty()
}

// Close is Clear.
func (v *Vector) Close() {
	v.Clear()
}

// detach empties the vector without releasing the buffers, for use after
// their ownership has moved to another vector.
func (v *Vector) detach() {
	v.valueCount = 0
	v.validity = v.alloc.Empty()
	v.values = v.alloc.Empty()
}

// setReaderAndWriterIndex normalizes both buffers' cursors for external
// exposure: read cursors drop to zero and write cursors delimit exactly the
// semantically meaningful bytes for the current value count.
func (v *Vector) setReaderAndWriterIndex() {
	v.validity.SetReaderIndex(0)
	v.values.SetReaderIndex(0)
	if v.valueCount == 0 {
		v.validity.SetWriterIndex(0)
		v.values.SetWriterIndex(0)
	} else {
		v.validity.SetWriterIndex(bitutil.ValidityBytes(v.valueCount))
		if v.typeWidth == 0 {
			v.values.SetWriterIndex(bitutil.ValidityBytes(v.valueCount))
		} else {
			v.values.SetWriterIndex(v.valueCount * v.typeWidth)
		}
	}
}

// Buffers exposes the cursor-normalized (validity, value) buffer pair for
// serialization; together with the value count this pair is the vector's
// on-the-wire representation. A logically empty vector yields no buffers.
//
// With clear set, an explicit reference is retained for the caller before the
// vector's own references are dropped, leaving the returned pair as the only
// remaining reference and the vector empty.
func (v *Vector) Buffers(clear bool) []*memory.Buffer {
	v.setReaderAndWriterIndex()
	var buffers []*memory.Buffer
	if v.BufferSize() != 0 {
		buffers = []*memory.Buffer{v.validity, v.values}
	}
	if clear {
		for _, b := range buffers {
			b.Retain()
		}
		v.Clear()
	}
	return buffers
}

// FieldBuffers returns the cursor-normalized (validity, value) pair without
// affecting reference counts or vector state. External callers must not hold
// the returned buffers across operations that replace them.
func (v *Vector) FieldBuffers() []*memory.Buffer {
	v.setReaderAndWriterIndex()
	return []*memory.Buffer{v.validity, v.values}
}
