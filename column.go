// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package colvec

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// DataType describes the logical type of a vector's values. Every data type
// handled by this package has a fixed physical width; variable-width and
// nested types layer an offsets buffer on top of this representation and are
// out of scope here.
type DataType uint8

const (
	// DataTypeInvalid represents an unset or invalid data type.
	DataTypeInvalid DataType = 0
	// DataTypeBool is a data type encoding one bit per element. Its type
	// width is zero: the value buffer is sized like a validity buffer.
	DataTypeBool DataType = 1
	// DataTypeUint8 is a data type encoding a fixed 8 bits per element.
	DataTypeUint8 DataType = 2
	// DataTypeUint16 is a data type encoding a fixed 16 bits per element.
	DataTypeUint16 DataType = 3
	// DataTypeUint32 is a data type encoding a fixed 32 bits per element.
	DataTypeUint32 DataType = 4
	// DataTypeUint64 is a data type encoding a fixed 64 bits per element.
	DataTypeUint64 DataType = 5
	// DataTypeFloat32 is a data type encoding a 4-byte float per element.
	DataTypeFloat32 DataType = 6
	// DataTypeFloat64 is a data type encoding an 8-byte float per element.
	DataTypeFloat64 DataType = 7
	// DataTypeTimestamp is a data type encoding an 8-byte instant per
	// element.
	DataTypeTimestamp DataType = 8
	// DataTypeDecimal is a data type encoding a 16-byte decimal per element.
	DataTypeDecimal DataType = 9
	// DataTypeFixedBinary is a data type encoding an opaque byte string of a
	// per-field constant width; the width is carried by Field.FixedWidth.
	DataTypeFixedBinary DataType = 10

	dataTypesCount DataType = 11
)

var dataTypeName [dataTypesCount]string = [dataTypesCount]string{
	DataTypeInvalid:     "invalid",
	DataTypeBool:        "bool",
	DataTypeUint8:       "uint8",
	DataTypeUint16:      "uint16",
	DataTypeUint32:      "uint32",
	DataTypeUint64:      "uint64",
	DataTypeFloat32:     "float32",
	DataTypeFloat64:     "float64",
	DataTypeTimestamp:   "timestamp",
	DataTypeDecimal:     "decimal",
	DataTypeFixedBinary: "fixedbinary",
}

// dataTypeWidth holds the element byte width per data type; -1 marks types
// whose width is carried by the field.
var dataTypeWidth [dataTypesCount]int = [dataTypesCount]int{
	DataTypeInvalid:     0,
	DataTypeBool:        0,
	DataTypeUint8:       1,
	DataTypeUint16:      2,
	DataTypeUint32:      4,
	DataTypeUint64:      8,
	DataTypeFloat32:     4,
	DataTypeFloat64:     8,
	DataTypeTimestamp:   8,
	DataTypeDecimal:     16,
	DataTypeFixedBinary: -1,
}

// String returns a human-readable string representation of the data type.
func (t DataType) String() string {
	return dataTypeName[t]
}

// SafeFormat implements redact.SafeFormatter.
func (t DataType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(dataTypeName[t]))
}

// Field carries the schema metadata for one vector: a name and a logical
// type. The vector layer treats it as opaque except for the element width
// derived from the type.
type Field struct {
	Name string
	Type DataType
	// FixedWidth is the element byte width for DataTypeFixedBinary; it is
	// ignored for every other type.
	FixedWidth int
}

// TypeWidth returns the element byte width for the field. A width of zero
// identifies the one-bit-per-element representation.
func (f Field) TypeWidth() int {
	w := dataTypeWidth[f.Type]
	if w < 0 {
		return f.FixedWidth
	}
	return w
}

func (f Field) String() string {
	if f.Type == DataTypeFixedBinary {
		return fmt.Sprintf("%s: %s[%d]", f.Name, f.Type, f.FixedWidth)
	}
	return fmt.Sprintf("%s: %s", f.Name, f.Type)
}
