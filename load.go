// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import (
	"github.com/cockroachdb/colvec/internal/bitutil"
	"github.com/cockroachdb/colvec/memory"
	"github.com/cockroachdb/errors"
)

// A FieldNode describes a pre-populated vector state received across a
// serialization boundary: the element count and the number of nulls among
// them.
type FieldNode struct {
	Length    int
	NullCount int
}

// LoadFieldBuffers adopts externally supplied buffers — a validity bitmap and
// a data buffer, in that order — as this vector's state. The caller keeps its
// own references; the vector retains what it adopts. Until both buffers are
// validated the vector is left untouched: a buffer list whose length is not
// exactly two fails with ErrInvalidBufferCount.
//
// The bitmap buffer is normalized through loadValidityBuffer, so the adopted
// validity buffer always spans exactly the bytes node.Length requires even
// when the supplied bitmap is an all-valid or all-null placeholder.
func (v *Vector) LoadFieldBuffers(node FieldNode, buffers []*memory.Buffer) error {
	if len(buffers) != 2 {
		return errors.Wrapf(ErrInvalidBufferCount, "expected 2 buffers, got %d", len(buffers))
	}
	bitBuffer, dataBuffer := buffers[0], buffers[1]

	validity, err := v.loadValidityBuffer(node, bitBuffer)
	if err != nil {
		return err
	}
	v.validity.Release()
	v.validity = validity

	dataBuffer.Retain()
	v.values.Release()
	v.values = dataBuffer

	v.valueCount = node.Length
	return nil
}

// loadValidityBuffer returns the validity buffer to adopt for the given node.
// When the node indicates all elements are valid or all are null, the
// supplied bitmap (conventionally an empty placeholder in that case) is
// ignored and a bitmap of exactly ValidityBytes(node.Length) bytes is
// synthesized instead. Otherwise the supplied bitmap is retained as-is.
func (v *Vector) loadValidityBuffer(node FieldNode, bitBuffer *memory.Buffer) (*memory.Buffer, error) {
	if node.NullCount != 0 && node.NullCount != node.Length {
		bitBuffer.Retain()
		return bitBuffer, nil
	}
	buf, err := v.alloc.Allocate(bitutil.ValidityBytes(node.Length))
	if err != nil {
		return nil, err
	}
	if node.NullCount == 0 && node.Length > 0 {
		// All valid: whole bytes first, then the remainder bits one by one so
		// bits beyond node.Length stay zero.
		fullBytes := node.Length >> 3
		for i := 0; i < fullBytes; i++ {
			buf.SetByte(i, 0xFF)
		}
		for i := fullBytes << 3; i < node.Length; i++ {
			bitutil.SetBit(buf, i)
		}
	}
	return buf, nil
}
