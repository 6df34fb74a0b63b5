// ABOUTME: Plan command for gpu-tco CLI
// ABOUTME: Launches the interactive storage planning TUI

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui"
	"github.com/spf13/cobra"
)

// runTUI is swapped out in tests
var runTUI = tui.Run

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan storage interactively",
	Long: `Open an interactive wizard that walks through deployment size, tier mix,
and vendor preference, then shows the storage estimate as a scrollable report.

When the backend has vSphere configured, the GPU count can be discovered
from inventory.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runPlan(context.Background(), os.Stdout)
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}

// runPlan checks the backend is reachable, then hands the terminal to the TUI
func runPlan(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := c.Health(probeCtx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if err := runTUI(c, health.VSphere == "configured"); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
