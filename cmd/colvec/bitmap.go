// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/colvec"
	"github.com/cockroachdb/colvec/memory"
	"github.com/spf13/cobra"
)

var (
	bitmapSplitStart  int
	bitmapSplitLength int
)

var bitmapCmd = &cobra.Command{
	Use:   "bitmap <bits>",
	Short: "build a validity bitmap from a 0/1 string and dump its layout",
	Long: `
Builds a vector whose validity bitmap matches the given 0/1 string (1 =
non-null), prints the bitmap bytes and the null count, and optionally the
bitmap of a split-and-transferred sub-range.
`,
	Args: cobra.ExactArgs(1),
	RunE: runBitmap,
}

func init() {
	bitmapCmd.Flags().IntVar(
		&bitmapSplitStart, "split-start", 0, "start index of the split to dump")
	bitmapCmd.Flags().IntVar(
		&bitmapSplitLength, "split-len", 0, "length of the split to dump (0 disables)")
}

func runBitmap(cmd *cobra.Command, args []string) error {
	bits := strings.TrimSpace(args[0])
	alloc := memory.NewAllocator(0)
	v := colvec.New(colvec.Field{Name: "bitmap", Type: colvec.DataTypeUint8}, alloc, nil)
	defer v.Close()

	if err := v.AllocateNew(len(bits)); err != nil {
		return err
	}
	for i, r := range bits {
		switch r {
		case '1':
			if err := v.SetIndexDefined(i); err != nil {
				return err
			}
		case '0':
		default:
			return fmt.Errorf("bit string may only contain 0 and 1, got %q", r)
		}
	}
	if err := v.SetValueCount(len(bits)); err != nil {
		return err
	}
	dumpVector(cmd, "source", v)

	if bitmapSplitLength > 0 {
		pair := v.NewTransferPair("split")
		if err := pair.SplitAndTransfer(bitmapSplitStart, bitmapSplitLength); err != nil {
			return err
		}
		target := pair.Vector()
		defer target.Close()
		dumpVector(cmd, "split", target)
	}
	return nil
}

func dumpVector(cmd *cobra.Command, name string, v *colvec.Vector) {
	var sb strings.Builder
	for i := 0; i < v.ValueCount(); i++ {
		if v.IsSet(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	validity := v.ValidityBuffer()
	cmd.Printf("%s: %s\n", name, sb.String())
	cmd.Printf("%s: % x (%d/%d null)\n",
		name, validity.Bytes()[:(v.ValueCount()+7)/8], v.NullCount(), v.ValueCount())
}
