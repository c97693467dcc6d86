// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import (
	"testing"

	"github.com/cockroachdb/colvec/memory"
	"github.com/stretchr/testify/require"
)

func TestBuffersCursorNormalization(t *testing.T) {
	alloc := memory.NewAllocator(0)
	v := newUint32Vector(t, alloc)
	defer v.Close()

	require.NoError(t, v.AllocateNew(100))
	require.NoError(t, v.SetUint32(0, 1))
	require.NoError(t, v.SetValueCount(10))

	bufs := v.FieldBuffers()
	require.Len(t, bufs, 2)
	validity, values := bufs[0], bufs[1]
	require.Zero(t, validity.ReaderIndex())
	require.Zero(t, values.ReaderIndex())
	// 10 elements: 2 validity bytes and 40 value bytes are meaningful; the
	// rest of each buffer is slack capacity.
	require.Equal(t, 2, validity.WriterIndex())
	require.Equal(t, 40, values.WriterIndex())
	require.Greater(t, validity.Capacity(), validity.WriterIndex())
	require.Greater(t, values.Capacity(), values.WriterIndex())
}

func TestBuffersZeroWidthCursors(t *testing.T) {
	alloc := memory.NewAllocator(0)
	v := New(Field{Name: "bits", Type: DataTypeBool}, alloc, nil)
	defer v.Close()

	require.NoError(t, v.AllocateNew(20))
	require.NoError(t, v.SetValueCount(20))

	bufs := v.FieldBuffers()
	// The zero-width case co-sizes both write cursors.
	require.Equal(t, 3, bufs[0].WriterIndex())
	require.Equal(t, 3, bufs[1].WriterIndex())
}

func TestBuffersEmptyVector(t *testing.T) {
	alloc := memory.NewAllocator(0)
	v := newUint32Vector(t, alloc)
	defer v.Close()

	require.Empty(t, v.Buffers(false))
	require.NoError(t, v.AllocateNew(8))
	// Still logically empty until a value count is set.
	require.Empty(t, v.Buffers(false))
}

func TestBuffersWithClear(t *testing.T) {
	alloc := memory.NewAllocator(0)
	v := newUint32Vector(t, alloc)
	defer v.Close()

	require.NoError(t, v.AllocateNew(8))
	require.NoError(t, v.SetUint32(1, 5))
	require.NoError(t, v.SetValueCount(4))

	bufs := v.Buffers(true)
	require.Len(t, bufs, 2)
	// The caller holds the only remaining reference to each buffer, and the
	// vector has been reset to empty.
	require.Equal(t, int32(1), bufs[0].Refs())
	require.Equal(t, int32(1), bufs[1].Refs())
	require.Zero(t, v.ValueCount())
	require.Zero(t, v.ValueCapacity())

	require.NotZero(t, alloc.Metrics().InUseBytes)
	bufs[0].Release()
	bufs[1].Release()
	require.Zero(t, alloc.Metrics().InUseBytes)
}

func TestBuffersWithoutClearKeepsOwnership(t *testing.T) {
	alloc := memory.NewAllocator(0)
	v := newUint32Vector(t, alloc)
	defer v.Close()

	require.NoError(t, v.AllocateNew(8))
	require.NoError(t, v.SetValueCount(4))

	bufs := v.Buffers(false)
	require.Len(t, bufs, 2)
	require.Equal(t, int32(1), bufs[0].Refs())
	require.Equal(t, 4, v.ValueCount())
}
