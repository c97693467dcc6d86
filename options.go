// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import "math"

const (
	// initialValueAllocation is the default element capacity used when a
	// vector is allocated without a remembered capacity.
	initialValueAllocation = 4096
)

// Options holds the tunables for a Vector.
type Options struct {
	// MaxAllocationBytes caps the combined byte size of the validity and
	// value buffers computed for any single requested capacity. Requests
	// whose buffers would exceed it fail with ErrOversizedAllocation. It
	// guards against integer overflow and unbounded memory claims from
	// caller-supplied counts.
	//
	// The default is math.MaxInt32.
	MaxAllocationBytes int64
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified, returning the updated options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.MaxAllocationBytes <= 0 {
		o.MaxAllocationBytes = math.MaxInt32
	}
	return o
}
