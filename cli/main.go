// ABOUTME: Entry point for gpu-tco CLI
// ABOUTME: Storage sizing, catalog lookups, and interactive planning

package main

import (
	"fmt"
	"os"

	"github.com/nullsector/gpu-tco-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
