// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package memory

import (
	"github.com/cockroachdb/colvec/internal/invariants"
)

// A Buffer is a view over a reference-counted, fixed-capacity region of
// bytes. Multiple Buffers may share the same backing allocation: Slice
// produces a new view over a sub-range without copying, and Retain/Release
// adjust the shared reference count. The backing storage is returned to the
// allocator's accounting when the count reaches zero.
//
// A Buffer additionally carries reader and writer indexes. They are a
// presentation concern for consumers that serialize the buffer (they bound
// the semantically meaningful bytes versus slack capacity) and carry no
// ownership semantics.
//
// Buffers are not safe for concurrent mutation. The reference count is the
// only state that may be manipulated from multiple goroutines.
type Buffer struct {
	alloc *allocation
	data  []byte
	rdIdx int
	wrIdx int
}

// allocation is the backing storage shared by every Buffer sliced from the
// same Allocate call. refs counts the live Buffer views.
type allocation struct {
	refs refcnt
	a    *Allocator
	buf  []byte
}

// Capacity returns the number of bytes addressable through this view.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

// Refs returns the number of live references to the backing allocation.
// Returns zero for the empty buffer, which has no backing allocation.
func (b *Buffer) Refs() int32 {
	if b.alloc == nil {
		return 0
	}
	return b.alloc.refs.refs()
}

// Retain records a new reference to the backing allocation. It must be paired
// with a Release. Retaining the empty buffer is a no-op.
func (b *Buffer) Retain() {
	if b.alloc != nil {
		b.alloc.refs.acquire()
	}
}

// Release drops a reference to the backing allocation, freeing it and
// crediting the allocator once no references remain. Releasing the empty
// buffer is a no-op.
func (b *Buffer) Release() {
	if b.alloc == nil {
		return
	}
	if b.alloc.refs.release() {
		if invariants.Enabled {
			invariants.Mangle(b.alloc.buf)
		}
		b.alloc.a.free(len(b.alloc.buf))
		b.alloc.buf = nil
	}
}

// Slice returns a new Buffer over the byte range [off, off+n) of this view,
// sharing the backing allocation without copying. The returned view does not
// count as a new reference: a caller that stores the slice beyond the
// lifetime of its own reference must pair it with Retain.
func (b *Buffer) Slice(off, n int) *Buffer {
	return &Buffer{
		alloc: b.alloc,
		data:  b.data[off : off+n : off+n],
	}
}

// GetByte returns the byte at the absolute offset i.
func (b *Buffer) GetByte(i int) byte {
	invariants.CheckBounds(i, len(b.data))
	return b.data[i]
}

// SetByte sets the byte at the absolute offset i.
func (b *Buffer) SetByte(i int, v byte) {
	invariants.CheckBounds(i, len(b.data))
	b.data[i] = v
}

// SetBytes copies p into the buffer starting at the absolute offset off.
func (b *Buffer) SetBytes(off int, p []byte) {
	copy(b.data[off:off+len(p)], p)
}

// CopyFrom copies n bytes from src starting at srcOff into this buffer
// starting at off.
func (b *Buffer) CopyFrom(off int, src *Buffer, srcOff, n int) {
	copy(b.data[off:off+n], src.data[srcOff:srcOff+n])
}

// SetZero zeroes n bytes starting at the absolute offset off.
func (b *Buffer) SetZero(off, n int) {
	clear(b.data[off : off+n])
}

// Bytes returns the buffer's bytes over its full capacity. The slice aliases
// the backing storage and must not be held past the final Release.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// ReaderIndex returns the buffer's read cursor.
func (b *Buffer) ReaderIndex() int { return b.rdIdx }

// WriterIndex returns the buffer's write cursor: the number of semantically
// meaningful bytes in the buffer.
func (b *Buffer) WriterIndex() int { return b.wrIdx }

// SetReaderIndex sets the buffer's read cursor.
func (b *Buffer) SetReaderIndex(i int) { b.rdIdx = i }

// SetWriterIndex sets the buffer's write cursor.
func (b *Buffer) SetWriterIndex(i int) { b.wrIdx = i }
