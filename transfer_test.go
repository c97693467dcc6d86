// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import (
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/colvec/memory"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestTransferToIsExclusive(t *testing.T) {
	alloc := memory.NewAllocator(0)
	src := newUint32Vector(t, alloc)
	dst := newUint32Vector(t, alloc)
	defer src.Close()
	defer dst.Close()

	require.NoError(t, src.AllocateNew(16))
	for i := 0; i < 10; i++ {
		require.NoError(t, src.SetUint32(i, uint32(100+i)))
	}
	require.NoError(t, src.SetValueCount(10))
	validity, values := src.ValidityBuffer(), src.DataBuffer()

	require.NoError(t, src.TransferTo(dst))

	// The source is empty; the target holds the exact buffers with their
	// original single reference.
	require.Zero(t, src.ValueCount())
	require.Zero(t, src.ValidityBuffer().Capacity())
	require.Zero(t, src.DataBuffer().Capacity())
	require.Same(t, validity, dst.ValidityBuffer())
	require.Same(t, values, dst.DataBuffer())
	require.Equal(t, int32(1), dst.ValidityBuffer().Refs())
	require.Equal(t, int32(1), dst.DataBuffer().Refs())

	require.Equal(t, 10, dst.ValueCount())
	for i := 0; i < 10; i++ {
		require.Equal(t, uint32(100+i), dst.Uint32(i))
	}

	// The source remains usable for a fresh allocation cycle.
	require.True(t, src.AllocateNewSafe())
}

func TestTransferToIncompatibleType(t *testing.T) {
	alloc := memory.NewAllocator(0)
	src := newUint32Vector(t, alloc)
	dst := New(Field{Name: "w", Type: DataTypeUint64}, alloc, nil)
	defer src.Close()
	defer dst.Close()

	require.NoError(t, src.AllocateNew(4))
	require.NoError(t, src.SetValueCount(4))

	require.True(t, errors.Is(src.TransferTo(dst), ErrIncompatibleType))
	require.True(t, errors.Is(src.SplitAndTransferTo(0, 2, dst), ErrIncompatibleType))
	// No partial mutation occurred before the check.
	require.Equal(t, 4, src.ValueCount())
}

func TestTransferToDifferentAllocator(t *testing.T) {
	src := newUint32Vector(t, memory.NewAllocator(0))
	dst := newUint32Vector(t, memory.NewAllocator(0))
	defer src.Close()
	defer dst.Close()

	require.NoError(t, src.AllocateNew(4))
	require.NoError(t, src.SetValueCount(4))

	// Buffer accounting is pinned to the allocating Allocator; moving a
	// buffer into a vector on a different allocator would credit the wrong
	// budget on the final release.
	require.Panics(t, func() { _ = src.TransferTo(dst) })
	require.Panics(t, func() { _ = src.SplitAndTransferTo(0, 2, dst) })
}

func TestSplitAndTransferAligned(t *testing.T) {
	alloc := memory.NewAllocator(0)
	src := newUint32Vector(t, alloc)
	dst := newUint32Vector(t, alloc)
	defer src.Close()
	defer dst.Close()

	require.NoError(t, src.AllocateNew(16))
	for _, i := range []int{0, 3, 8, 9, 15} {
		require.NoError(t, src.SetUint32(i, uint32(i)))
	}
	require.NoError(t, src.SetValueCount(16))

	require.NoError(t, src.SplitAndTransferTo(8, 8, dst))

	// Byte-aligned split: the target's validity buffer shares the source's
	// storage, recorded by one extra reference.
	require.Equal(t, int32(2), src.ValidityBuffer().Refs())
	require.Equal(t, int32(2), dst.ValidityBuffer().Refs())
	require.Equal(t, int32(2), src.DataBuffer().Refs())

	require.Equal(t, 8, dst.ValueCount())
	for i := 0; i < 8; i++ {
		want := i == 0 || i == 1 || i == 7 // source indices 8, 9, 15
		require.Equal(t, want, dst.IsSet(i), "index %d", i)
		if want {
			require.Equal(t, uint32(8+i), dst.Uint32(i))
		}
	}

	// The source is untouched beyond the shared reference counts.
	require.Equal(t, 16, src.ValueCount())
	require.Equal(t, uint32(3), src.Uint32(3))

	// Releasing the target returns the references.
	dst.Clear()
	require.Equal(t, int32(1), src.ValidityBuffer().Refs())
	require.Equal(t, int32(1), src.DataBuffer().Refs())
}

func TestSplitAndTransferMisaligned(t *testing.T) {
	alloc := memory.NewAllocator(0)

	// A pattern long enough to span several bytes, with the number of source
	// elements landing exactly on a byte boundary so splits whose windows end
	// on the last populated byte are exercised.
	const count = 32
	pattern := func(i int) bool { return i%3 == 0 || i%7 == 0 }

	src := newUint32Vector(t, alloc)
	defer src.Close()
	require.NoError(t, src.AllocateNew(count))
	for i := 0; i < count; i++ {
		if pattern(i) {
			require.NoError(t, src.SetUint32(i, uint32(i)))
		}
	}
	require.NoError(t, src.SetValueCount(count))

	for offset := 1; offset <= 7; offset++ {
		for _, length := range []int{1, 3, 8, 16, count - offset} {
			t.Run(fmt.Sprintf("offset=%d/len=%d", offset, length), func(t *testing.T) {
				dst := newUint32Vector(t, alloc)
				defer dst.Close()
				require.NoError(t, src.SplitAndTransferTo(offset, length, dst))

				// Misaligned starts force a fresh validity buffer: no sharing.
				require.Equal(t, int32(1), dst.ValidityBuffer().Refs())
				require.Equal(t, int32(1), src.ValidityBuffer().Refs())

				require.Equal(t, length, dst.ValueCount())
				for i := 0; i < length; i++ {
					require.Equal(t, pattern(offset+i), dst.IsSet(i),
						"target index %d (source %d)", i, offset+i)
					if pattern(offset + i) {
						require.Equal(t, uint32(offset+i), dst.Uint32(i))
					}
				}
			})
		}
	}
}

func TestSplitAndTransferRandom(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewSource(seed))

	alloc := memory.NewAllocator(0)
	count := rng.Intn(512) + 1

	src := newUint32Vector(t, alloc)
	defer src.Close()
	require.NoError(t, src.AllocateNew(count))
	set := make([]bool, count)
	for i := 0; i < count; i++ {
		set[i] = rng.Intn(2) == 0
		if set[i] {
			require.NoError(t, src.SetUint32(i, rng.Uint32()))
		}
	}
	require.NoError(t, src.SetValueCount(count))

	for trial := 0; trial < 100; trial++ {
		start := rng.Intn(count)
		length := rng.Intn(count - start + 1)
		dst := newUint32Vector(t, alloc)
		require.NoError(t, src.SplitAndTransferTo(start, length, dst))
		require.Equal(t, length, dst.ValueCount())
		for i := 0; i < length; i++ {
			require.Equal(t, set[start+i], dst.IsSet(i),
				"start %d length %d index %d", start, length, i)
			if set[start+i] {
				require.Equal(t, src.Uint32(start+i), dst.Uint32(i))
			}
		}
		dst.Close()
	}
	// Every split target has been released: the source holds the only
	// references again.
	require.Equal(t, int32(1), src.ValidityBuffer().Refs())
	require.Equal(t, int32(1), src.DataBuffer().Refs())
}

func TestSplitAndTransferZeroWidth(t *testing.T) {
	alloc := memory.NewAllocator(0)
	src := New(Field{Name: "bits", Type: DataTypeBool}, alloc, nil)
	defer src.Close()

	const count = 19
	require.NoError(t, src.AllocateNew(count))
	for i := 0; i < count; i++ {
		if i%2 == 0 {
			require.NoError(t, src.SetIndexDefined(i))
		}
	}
	require.NoError(t, src.SetValueCount(count))

	dst := New(Field{Name: "bits", Type: DataTypeBool}, alloc, nil)
	defer dst.Close()
	require.NoError(t, src.SplitAndTransferTo(3, 13, dst))
	require.Equal(t, 13, dst.ValueCount())
	for i := 0; i < 13; i++ {
		require.Equal(t, (3+i)%2 == 0, dst.IsSet(i), "index %d", i)
	}
}

func TestSplitAndTransferEmptyRange(t *testing.T) {
	alloc := memory.NewAllocator(0)
	src := newUint32Vector(t, alloc)
	dst := newUint32Vector(t, alloc)
	defer src.Close()
	defer dst.Close()

	require.NoError(t, src.AllocateNew(8))
	require.NoError(t, src.SetValueCount(8))
	require.NoError(t, src.SplitAndTransferTo(4, 0, dst))
	require.Zero(t, dst.ValueCount())
	require.Equal(t, int32(1), src.ValidityBuffer().Refs())
}

func TestTransferPair(t *testing.T) {
	alloc := memory.NewAllocator(0)
	src := newUint32Vector(t, alloc)
	defer src.Close()

	require.NoError(t, src.AllocateNew(8))
	require.NoError(t, src.SetUint32(2, 7))
	require.NoError(t, src.SetValueCount(8))

	pair := src.NewTransferPair("copy")
	dst := pair.Vector()
	defer dst.Close()
	require.Equal(t, "copy", dst.Field().Name)
	require.Equal(t, src.Field().Type, dst.Field().Type)

	require.NoError(t, pair.Transfer())
	require.Zero(t, src.ValueCount())
	require.Equal(t, 8, dst.ValueCount())
	require.Equal(t, uint32(7), dst.Uint32(2))
}

// TestSplitAndTransferScenario walks the transfer of a sub-range of a sparse
// 4-byte vector end to end.
func TestSplitAndTransferScenario(t *testing.T) {
	alloc := memory.NewAllocator(0)
	src := newUint32Vector(t, alloc)
	dst := newUint32Vector(t, alloc)
	defer src.Close()
	defer dst.Close()

	require.NoError(t, src.AllocateNew(10))
	require.NoError(t, src.SetUint32(0, 7))
	require.NoError(t, src.SetUint32(2, 9))
	require.NoError(t, src.SetUint32(5, 11))
	require.NoError(t, src.SetValueCount(10))
	require.Equal(t, 7, src.NullCount())

	require.NoError(t, src.SplitAndTransferTo(2, 4, dst))

	require.Equal(t, 4, dst.ValueCount())
	require.False(t, dst.IsNull(0))
	require.Equal(t, uint32(9), dst.Uint32(0))
	require.True(t, dst.IsNull(1))
	require.True(t, dst.IsNull(2))
	require.False(t, dst.IsNull(3))
	require.Equal(t, uint32(11), dst.Uint32(3))
	require.Equal(t, 2, dst.NullCount())

	// The source still reads back its own data.
	require.Equal(t, 10, src.ValueCount())
	require.Equal(t, uint32(7), src.Uint32(0))
	require.Equal(t, uint32(9), src.Uint32(2))
	require.Equal(t, uint32(11), src.Uint32(5))
}
