// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/colvec"
	"github.com/cockroachdb/colvec/internal/humanize"
	"github.com/cockroachdb/colvec/memory"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	sizesType       string
	sizesFixedWidth int
	sizesCounts     []int
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "print buffer sizes and achieved capacities for element counts",
	Long: `
Prints, for each element count, the validity and value buffer sizes a vector
of the given type requires, and the capacity actually achieved after
allocator rounding.
`,
	RunE: runSizes,
}

func init() {
	sizesCmd.Flags().StringVarP(
		&sizesType, "type", "t", "uint64", "element data type")
	sizesCmd.Flags().IntVar(
		&sizesFixedWidth, "fixed-width", 0, "element width for the fixedbinary type")
	sizesCmd.Flags().IntSliceVarP(
		&sizesCounts, "counts", "n", []int{1 << 10, 1 << 14, 1 << 20}, "element counts")
}

func parseDataType(s string) (colvec.DataType, error) {
	for t := colvec.DataTypeBool; t <= colvec.DataTypeFixedBinary; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return colvec.DataTypeInvalid, fmt.Errorf("unknown data type %q", s)
}

func runSizes(cmd *cobra.Command, args []string) error {
	dt, err := parseDataType(sizesType)
	if err != nil {
		return err
	}
	field := colvec.Field{Name: "sizes", Type: dt, FixedWidth: sizesFixedWidth}
	alloc := memory.NewAllocator(0)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"count", "validity", "data", "total", "capacity"})
	for _, n := range sizesCounts {
		v := colvec.New(field, alloc, nil)
		if err := v.AllocateNew(n); err != nil {
			return err
		}
		dataBytes := v.BufferSizeFor(n) - (n+7)/8
		table.Append([]string{
			strconv.Itoa(n),
			strconv.Itoa((n + 7) / 8),
			strconv.Itoa(dataBytes),
			humanize.Bytes.Int64(int64(v.BufferSizeFor(n))).String(),
			strconv.Itoa(v.ValueCapacity()),
		})
		v.Close()
	}
	table.Render()
	return nil
}
