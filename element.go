// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import (
	"encoding/binary"

	"github.com/cockroachdb/colvec/internal/bitutil"
	"github.com/cockroachdb/errors"
)

// SetElement writes the raw bytes of one element at index and marks it
// non-null, growing the vector if index is beyond the current capacity. p
// must be exactly typeWidth bytes; zero-width vectors have no byte elements.
func (v *Vector) SetElement(index int, p []byte) error {
	if v.typeWidth == 0 || len(p) != v.typeWidth {
		panic(errors.AssertionFailedf("%d byte element in a %s vector", len(p), v.field))
	}
	if err := v.handleSafe(index); err != nil {
		return err
	}
	bitutil.SetBit(v.validity, index)
	v.values.SetBytes(index*v.typeWidth, p)
	return nil
}

// Element returns the raw bytes of the element at index. The slice aliases
// the value buffer; it is only valid until the vector grows or is cleared.
func (v *Vector) Element(index int) []byte {
	return v.values.Bytes()[index*v.typeWidth : (index+1)*v.typeWidth]
}

// SetUint32 writes a little-endian 4-byte element at index and marks it
// non-null.
func (v *Vector) SetUint32(index int, value uint32) error {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], value)
	return v.SetElement(index, p[:])
}

// Uint32 reads the little-endian 4-byte element at index.
func (v *Vector) Uint32(index int) uint32 {
	return binary.LittleEndian.Uint32(v.Element(index))
}

// SetUint64 writes a little-endian 8-byte element at index and marks it
// non-null.
func (v *Vector) SetUint64(index int, value uint64) error {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], value)
	return v.SetElement(index, p[:])
}

// Uint64 reads the little-endian 8-byte element at index.
func (v *Vector) Uint64(index int) uint64 {
	return binary.LittleEndian.Uint64(v.Element(index))
}
