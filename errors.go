// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import "github.com/cockroachdb/errors"

// ErrOversizedAllocation is returned when the buffers required for a
// requested capacity would exceed Options.MaxAllocationBytes.
var ErrOversizedAllocation = errors.New("colvec: oversized allocation")

// ErrIncompatibleType is returned by transfer operations whose target vector
// has a different element layout than the source.
var ErrIncompatibleType = errors.New("colvec: incompatible vector types")

// ErrInvalidBufferCount is returned by LoadFieldBuffers when the supplied
// buffer list does not hold exactly a validity buffer and a data buffer.
var ErrInvalidBufferCount = errors.New("colvec: invalid buffer count")

// ErrUnsupportedOperation is returned by offset-buffer queries: fixed-width
// vectors structurally lack an offsets buffer.
var ErrUnsupportedOperation = errors.New("colvec: unsupported operation for fixed-width vectors")
