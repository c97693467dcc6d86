// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import (
	"github.com/cockroachdb/colvec/internal/bitutil"
	"github.com/cockroachdb/colvec/memory"
	"github.com/cockroachdb/errors"
)

// compareTypes verifies the target vector shares this vector's element
// layout. Buffer accounting is pinned to the allocating Allocator, so a
// transfer target must also share the source's allocator; a mismatch is a
// programming error and panics.
func (v *Vector) compareTypes(target *Vector, caller string) error {
	if v.alloc != target.alloc {
		panic(errors.AssertionFailedf("%s between vectors of different allocators", caller))
	}
	if v.field.Type != target.field.Type || v.typeWidth != target.typeWidth {
		return errors.Wrapf(ErrIncompatibleType, "%s from %s to %s", caller, v.field, target.field)
	}
	return nil
}

// TransferTo moves this vector's buffers and value count to target. No bytes
// are copied and no reference counts change: ownership of both buffers moves
// wholesale. The target's previous buffers are released, and the source is
// left empty; source and target never both hold a reference to the same
// buffer afterwards. The target must share the source's allocator.
func (v *Vector) TransferTo(target *Vector) error {
	if err := v.compareTypes(target, "transfer"); err != nil {
		return err
	}
	v.setReaderAndWriterIndex()
	target.Clear()
	target.validity = v.validity
	target.values = v.values
	target.valueCount = v.valueCount
	v.detach()
	return nil
}

// SplitAndTransferTo transfers the element range [startIndex,
// startIndex+length) to target. The value sub-range is always a zero-copy
// slice (value-buffer slicing is byte-aligned for any element width); the
// validity sub-range shares storage when startIndex falls on a byte boundary
// and is stitched together byte by byte otherwise. The source vector remains
// fully valid and independently usable; only its buffers' shared reference
// counts change.
//
// The range must lie within the source's value count; violating the
// precondition is a programming error and panics.
func (v *Vector) SplitAndTransferTo(startIndex, length int, target *Vector) error {
	if err := v.compareTypes(target, "split-and-transfer"); err != nil {
		return err
	}
	if startIndex < 0 || length < 0 || startIndex+length > v.valueCount {
		panic(errors.AssertionFailedf("split [%d, %d) of vector with %d values",
			startIndex, startIndex+length, v.valueCount))
	}
	target.Clear()

	validity, err := v.splitBitmapBuffer(v.validity, startIndex, length)
	if err != nil {
		return err
	}
	target.validity = validity

	if v.typeWidth == 0 {
		// The zero-width value buffer is a second bitmap and needs the same
		// bit-exact treatment as the validity buffer.
		values, err := v.splitBitmapBuffer(v.values, startIndex, length)
		if err != nil {
			target.Clear()
			return err
		}
		target.values = values
	} else if length > 0 {
		slice := v.values.Slice(startIndex*v.typeWidth, length*v.typeWidth)
		slice.Retain()
		target.values = slice
	}
	return target.SetValueCount(length)
}

// splitBitmapBuffer produces a standalone bitmap buffer whose bit i equals
// bit startIndex+i of src, for i in [0, length). When startIndex falls on a
// byte boundary the result is a zero-copy slice of src with an explicit
// retain recording the shared ownership. Otherwise a fresh buffer is
// allocated and each output byte stitches together the tail of one source
// byte and the head of the next; the final output byte skips the next-byte
// contribution when src's populated range (bounded by the vector's value
// count) holds no further byte.
func (v *Vector) splitBitmapBuffer(src *memory.Buffer, startIndex, length int) (*memory.Buffer, error) {
	if length == 0 {
		return v.alloc.Empty(), nil
	}
	firstByteSource := bitutil.ByteIndex(startIndex)
	byteSizeTarget := bitutil.ValidityBytes(length)
	offset := startIndex % 8

	if offset == 0 {
		slice := src.Slice(firstByteSource, byteSizeTarget)
		slice.Retain()
		return slice, nil
	}

	dst, err := v.alloc.Allocate(byteSizeTarget)
	if err != nil {
		return nil, err
	}
	for i := 0; i < byteSizeTarget-1; i++ {
		b1 := bitutil.BitsFromCurrentByte(src, firstByteSource+i, offset)
		b2 := bitutil.BitsFromNextByte(src, firstByteSource+i+1, offset)
		dst.SetByte(i, b1|b2)
	}
	// The last output byte may not have a next source byte to borrow from:
	// reading one would run past the source's last populated byte.
	lastByteSource := bitutil.ByteIndex(v.valueCount - 1)
	b1 := bitutil.BitsFromCurrentByte(src, firstByteSource+byteSizeTarget-1, offset)
	if firstByteSource+byteSizeTarget-1 < lastByteSource {
		b2 := bitutil.BitsFromNextByte(src, firstByteSource+byteSizeTarget, offset)
		dst.SetByte(byteSizeTarget-1, b1|b2)
	} else {
		dst.SetByte(byteSizeTarget-1, b1)
	}
	return dst, nil
}

// A TransferPair pairs a source vector with a freshly constructed target over
// the same field layout and allocator, ready to receive a full transfer or a
// split.
type TransferPair struct {
	from *Vector
	to   *Vector
}

// NewTransferPair constructs a TransferPair whose target vector carries the
// given name and this vector's type and options.
func (v *Vector) NewTransferPair(name string) *TransferPair {
	field := v.field
	field.Name = name
	return &TransferPair{from: v, to: New(field, v.alloc, &v.opts)}
}

// Vector returns the pair's target vector.
func (p *TransferPair) Vector() *Vector { return p.to }

// Transfer moves the source's buffers to the target.
func (p *TransferPair) Transfer() error {
	return p.from.TransferTo(p.to)
}

// SplitAndTransfer transfers the element range [startIndex,
// startIndex+length) to the target.
func (p *TransferPair) SplitAndTransfer(startIndex, length int) error {
	return p.from.SplitAndTransferTo(startIndex, length, p.to)
}
