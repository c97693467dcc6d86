// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package humanize provides routines for formatting counts and byte sizes
// for human consumption.
package humanize

import "fmt"

type config struct {
	scale    float64
	suffixes []string
}

// Bytes produces human readable representations of byte values: 1024
// becomes "1.0 KB".
var Bytes = config{1024, []string{" B", " KB", " MB", " GB", " TB", " PB", " EB"}}

// Count produces human readable representations of unitless values: 1000
// becomes "1.0K".
var Count = config{1000, []string{"", "K", "M", "G", "T"}}

// FormattedString is a string produced by humanize. It implements
// redact.SafeValue.
type FormattedString string

// SafeValue implements redact.SafeValue.
func (fs FormattedString) SafeValue() {}

func (fs FormattedString) String() string { return string(fs) }

// Int64 produces a human readable representation of the value.
func (c config) Int64(value int64) FormattedString {
	if value < 0 {
		return FormattedString("-" + c.Uint64(uint64(-value)))
	}
	return c.Uint64(uint64(value))
}

// Uint64 produces a human readable representation of the value.
func (c config) Uint64(value uint64) FormattedString {
	v := float64(value)
	i := 0
	for v >= c.scale && i+1 < len(c.suffixes) {
		v /= c.scale
		i++
	}
	if i == 0 {
		return FormattedString(fmt.Sprintf("%d%s", value, c.suffixes[0]))
	}
	return FormattedString(fmt.Sprintf("%.1f%s", v, c.suffixes[i]))
}
