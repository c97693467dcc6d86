// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Command colvec is an introspection tool for columnar fixed-width vector
// layouts: buffer sizing tables and validity-bitmap dumps.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "colvec [command] (flags)",
	Short: "colvec layout introspection tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		sizesCmd,
		bitmapCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
