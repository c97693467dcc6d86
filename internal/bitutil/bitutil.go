// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package bitutil implements the bit-level primitives for validity bitmaps:
// one bit per element, bit i stored as bit i%8 of byte i/8, set meaning
// non-null.
package bitutil

import (
	"math/bits"

	"github.com/cockroachdb/colvec/memory"
)

// ValidityBytes returns the number of bytes needed to hold a validity bit for
// count elements.
func ValidityBytes(count int) int {
	return (count + 7) >> 3
}

// ByteIndex returns the index of the byte holding bit i.
func ByteIndex(i int) int {
	return i >> 3
}

// GetBit returns true if bit i of the buffer is set.
func GetBit(b *memory.Buffer, i int) bool {
	return b.GetByte(i>>3)>>(uint(i)&7)&1 != 0
}

// SetBit sets bit i of the buffer to one.
func SetBit(b *memory.Buffer, i int) {
	idx := i >> 3
	b.SetByte(idx, b.GetByte(idx)|1<<(uint(i)&7))
}

// ZeroCount returns the number of zero bits among the first validBits bits of
// the buffer. Bits at validBits and beyond do not contribute, whatever their
// value.
func ZeroCount(b *memory.Buffer, validBits int) int {
	if validBits == 0 {
		return 0
	}
	ones := 0
	fullBytes := validBits >> 3
	for i := 0; i < fullBytes; i++ {
		ones += bits.OnesCount8(b.GetByte(i))
	}
	if rem := uint(validBits) & 7; rem != 0 {
		ones += bits.OnesCount8(b.GetByte(fullBytes) & (1<<rem - 1))
	}
	return validBits - ones
}

// BitsFromCurrentByte returns the contribution of byte idx to an output byte
// when copying a bit range that starts offset bits into a byte: the high
// 8-offset bits of the source byte shifted down into the low positions.
func BitsFromCurrentByte(b *memory.Buffer, idx, offset int) byte {
	return b.GetByte(idx) >> uint(offset)
}

// BitsFromNextByte returns the contribution of byte idx to the preceding
// output byte: the low offset bits of the source byte shifted up into the
// high positions.
func BitsFromNextByte(b *memory.Buffer, idx, offset int) byte {
	return b.GetByte(idx) << uint(8-offset)
}
