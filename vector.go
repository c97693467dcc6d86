// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package colvec implements the buffer-management core of a columnar
// fixed-width data vector: N elements of a statically known byte width plus a
// parallel null-indicator bitmap, backed by two independently growable,
// reference-counted buffers. Higher-level typed vectors (integers, floats,
// fixed-size binary, decimals, timestamps) are this same buffer-pair
// mechanism specialized by element width.
package colvec

import (
	"github.com/cockroachdb/colvec/internal/bitutil"
	"github.com/cockroachdb/colvec/memory"
	"github.com/cockroachdb/errors"
)

// A Vector is a nullable column of fixed-width elements. It owns exactly one
// live reference to each of two buffers: a validity buffer encoding one bit
// per element (set meaning non-null) and a value buffer holding the raw
// element bytes. Ownership is exclusive until explicitly transferred
// (TransferTo) or shared through an explicit slice-retain (SplitAndTransferTo).
//
// A Vector is not safe for concurrent use. Buffer reference counts are the
// only state shared across vectors, and only through the sequential transfer
// operations.
type Vector struct {
	field     Field
	typeWidth int
	alloc     *memory.Allocator
	opts      Options

	valueCount int
	// lastValueCapacity remembers the capacity achieved by the previous
	// allocation or growth cycle; it is the default target for the next bare
	// allocation.
	lastValueCapacity int
	// allocationMonitor is a signed hysteresis counter: positive runs record
	// observed over-provisioning, negative runs under-provisioning. It is a
	// forward-looking signal for capacity tuning and is not consumed for any
	// decision here.
	allocationMonitor int

	validity *memory.Buffer
	values   *memory.Buffer
}

// New constructs an empty Vector over the given field's element layout. Both
// buffers start as zero-capacity placeholders; no memory is allocated until
// AllocateNew or a growth-triggering write.
func New(field Field, alloc *memory.Allocator, opts *Options) *Vector {
	return &Vector{
		field:             field,
		typeWidth:         field.TypeWidth(),
		alloc:             alloc,
		opts:              *opts.EnsureDefaults(),
		lastValueCapacity: initialValueAllocation,
		validity:          alloc.Empty(),
		values:            alloc.Empty(),
	}
}

// Field returns the schema metadata the vector was constructed over.
func (v *Vector) Field() Field { return v.field }

// TypeWidth returns the element byte width. Zero identifies the
// one-bit-per-element representation, in which the value buffer is sized like
// a second validity buffer.
func (v *Vector) TypeWidth() int { return v.typeWidth }

// ValueCount returns the number of logically populated elements.
func (v *Vector) ValueCount() int { return v.valueCount }

// ValidityBuffer returns the buffer encoding the null bitmap.
func (v *Vector) ValidityBuffer() *memory.Buffer { return v.validity }

// DataBuffer returns the buffer holding the raw element bytes.
func (v *Vector) DataBuffer() *memory.Buffer { return v.values }

// OffsetBuffer fails for fixed-width vectors, which structurally lack an
// offsets buffer.
func (v *Vector) OffsetBuffer() (*memory.Buffer, error) {
	return nil, errors.Wrapf(ErrUnsupportedOperation, "offset buffer of %s", v.field)
}

// dataBytes returns the value-buffer byte size for count elements. The
// zero-width case co-sizes the value buffer with the validity buffer.
func (v *Vector) dataBytes(count int) int {
	if v.typeWidth == 0 {
		return bitutil.ValidityBytes(count)
	}
	return count * v.typeWidth
}

// BufferSizeFor returns the combined byte size of the buffers backing a
// vector holding count elements.
func (v *Vector) BufferSizeFor(count int) int {
	if count == 0 {
		return 0
	}
	return v.dataBytes(count) + bitutil.ValidityBytes(count)
}

// BufferSize returns the combined byte size of the semantically meaningful
// portions of the vector's buffers.
func (v *Vector) BufferSize() int {
	return v.BufferSizeFor(v.valueCount)
}

// checkBufferSize computes the combined buffer size for count elements and
// fails with ErrOversizedAllocation when it exceeds the configured maximum.
func (v *Vector) checkBufferSize(count int) (int64, error) {
	size := int64(count)*int64(v.typeWidth) + int64(bitutil.ValidityBytes(count))
	if v.typeWidth == 0 {
		size = 2 * int64(bitutil.ValidityBytes(count))
	}
	if size > v.opts.MaxAllocationBytes {
		return 0, errors.Wrapf(ErrOversizedAllocation,
			"vector capacity %d requires %d bytes, above the maximum of %d",
			count, size, v.opts.MaxAllocationBytes)
	}
	return size, nil
}

// SetInitialCapacity validates that count elements are representable within
// the allocation ceiling and records count as the next default allocation
// target. No memory is allocated.
func (v *Vector) SetInitialCapacity(count int) error {
	if _, err := v.checkBufferSize(count); err != nil {
		return err
	}
	v.lastValueCapacity = count
	return nil
}

// ValueCapacity returns the number of elements the vector can hold without
// growing: the lesser of what the value buffer and the validity buffer can
// represent.
func (v *Vector) ValueCapacity() int {
	validityCap := v.validity.Capacity() * 8
	if v.typeWidth == 0 {
		return validityCap
	}
	return min(v.values.Capacity()/v.typeWidth, validityCap)
}

// IsSafe reports whether index is within the current value capacity.
func (v *Vector) IsSafe(index int) bool {
	return index < v.ValueCapacity()
}

// AllocateNew releases any currently held buffers and allocates a fresh,
// zeroed buffer pair sized for count elements. The achieved capacity may
// exceed count due to allocator rounding; it is recorded as the default
// target for the next bare allocation. Allocation failure is returned and
// leaves the vector cleared.
func (v *Vector) AllocateNew(count int) error {
	if _, err := v.checkBufferSize(count); err != nil {
		return err
	}
	v.Clear()
	if err := v.allocateBytes(count); err != nil {
		v.Clear()
		return err
	}
	return nil
}

// AllocateNewSafe is AllocateNew targeting the remembered capacity from the
// previous allocation cycle. It reports failure instead of returning an
// error, rolling the vector back to the empty state first.
func (v *Vector) AllocateNewSafe() bool {
	if _, err := v.checkBufferSize(v.lastValueCapacity); err != nil {
		return false
	}
	v.Clear()
	if err := v.allocateBytes(v.lastValueCapacity); err != nil {
		v.Clear()
		return false
	}
	return true
}

func (v *Vector) allocateBytes(count int) error {
	validity, err := v.alloc.Allocate(bitutil.ValidityBytes(count))
	if err != nil {
		return err
	}
	values, err := v.alloc.Allocate(v.dataBytes(count))
	if err != nil {
		validity.Release()
		return err
	}
	v.validity = validity
	v.values = values
	v.ZeroVector()
	v.lastValueCapacity = v.ValueCapacity()
	return nil
}

// ReAlloc grows the vector by doubling the current value capacity, falling
// back to the remembered capacity and then a fixed default when the vector is
// empty. Each new buffer is sized to at least the old buffer's capacity: the
// value and validity buffers may have divergent sizes relative to the element
// count after LoadFieldBuffers, and the capacity-derived target alone would
// undersize the larger of the two. Existing bytes are copied verbatim into
// the low range of each new buffer and the remainder is zero-filled,
// preserving bits written beyond valueCount by not-yet-finalized writes. This
// is the sole growth path.
func (v *Vector) ReAlloc() error {
	target := v.ValueCapacity() * 2
	if target == 0 {
		if v.lastValueCapacity > 0 {
			target = v.lastValueCapacity
		} else {
			target = initialValueAllocation * 2
		}
	}
	if _, err := v.checkBufferSize(target); err != nil {
		return err
	}

	newValues, err := v.alloc.Allocate(max(v.dataBytes(target), v.values.Capacity()))
	if err != nil {
		return err
	}
	newValues.CopyFrom(0, v.values, 0, v.values.Capacity())
	newValues.SetZero(v.values.Capacity(), newValues.Capacity()-v.values.Capacity())
	v.values.Release()
	v.values = newValues

	newValidity, err := v.alloc.Allocate(max(bitutil.ValidityBytes(target), v.validity.Capacity()))
	if err != nil {
		return err
	}
	newValidity.CopyFrom(0, v.validity, 0, v.validity.Capacity())
	newValidity.SetZero(v.validity.Capacity(), newValidity.Capacity()-v.validity.Capacity())
	v.validity.Release()
	v.validity = newValidity

	v.lastValueCapacity = v.ValueCapacity()
	return nil
}

// handleSafe grows the vector until index is within capacity, recording each
// growth as an under-provisioning signal.
func (v *Vector) handleSafe(index int) error {
	for index >= v.ValueCapacity() {
		v.decrementAllocationMonitor()
		if err := v.ReAlloc(); err != nil {
			return err
		}
	}
	return nil
}

// SetValueCount finalizes the number of logically populated elements, growing
// the vector as needed, and normalizes the buffers' cursors. The observed
// relationship between capacity and count feeds the allocation monitor: a
// capacity at least twice the count records over-provisioning, a capacity at
// most half the count under-provisioning.
func (v *Vector) SetValueCount(count int) error {
	v.valueCount = count
	currentCapacity := v.ValueCapacity()
	for count > v.ValueCapacity() {
		if err := v.ReAlloc(); err != nil {
			return err
		}
	}
	if count > 0 {
		if currentCapacity >= count*2 {
			v.incrementAllocationMonitor()
		} else if currentCapacity <= count/2 {
			v.decrementAllocationMonitor()
		}
	}
	v.setReaderAndWriterIndex()
	return nil
}

// incrementAllocationMonitor records an over-provisioning observation,
// restarting the run if the previous trend was under-provisioning.
func (v *Vector) incrementAllocationMonitor() {
	if v.allocationMonitor < 0 {
		v.allocationMonitor = 0
	}
	v.allocationMonitor++
}

// decrementAllocationMonitor records an under-provisioning observation,
// restarting the run if the previous trend was over-provisioning.
func (v *Vector) decrementAllocationMonitor() {
	if v.allocationMonitor > 0 {
		v.allocationMonitor = 0
	}
	v.allocationMonitor--
}

// IsSet reports whether the element at index is non-null.
func (v *Vector) IsSet(index int) bool {
	return bitutil.GetBit(v.validity, index)
}

// IsNull reports whether the element at index is null.
func (v *Vector) IsNull(index int) bool {
	return !v.IsSet(index)
}

// SetIndexDefined marks the element at index as non-null, growing the vector
// if index is beyond the current capacity. Bits are never cleared
// individually; null-ness comes from the zero fill at allocation time.
func (v *Vector) SetIndexDefined(index int) error {
	if err := v.handleSafe(index); err != nil {
		return err
	}
	bitutil.SetBit(v.validity, index)
	return nil
}

// NullCount returns the number of null elements among the first valueCount
// elements. Bits beyond valueCount are defined to be zero and do not
// contribute.
func (v *Vector) NullCount() int {
	return bitutil.ZeroCount(v.validity, v.valueCount)
}
