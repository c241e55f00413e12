// SPDX-License-Identifier: MIT

// Package main provides the triarith CLI: element-wise arithmetic on loss
// triangles stored as YAML or TOML documents.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
