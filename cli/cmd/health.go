// ABOUTME: Health command for gpu-tco CLI
// ABOUTME: Checks backend connectivity and catalog status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the GPU TCO Analyzer backend and report catalog and cache status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return exitOK
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Backend:       %s\n", url)
	fmt.Fprintf(&sb, "Status:        %s\n", resp.Status)
	fmt.Fprintf(&sb, "Catalog:       %d architectures, %d vendors, %d presets\n",
		resp.Architectures, resp.Vendors, resp.Combinations)
	fmt.Fprintf(&sb, "vSphere:       %s", resp.VSphere)

	names := make([]string, 0, len(resp.CacheStatus))
	for name := range resp.CacheStatus {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		s := resp.CacheStatus[name]
		fmt.Fprintf(&sb, "\nCache %-8s %s entries, %s hits, %s misses",
			name+":", humanize.Comma(int64(s.Entries)), humanize.Comma(s.Hits), humanize.Comma(s.Misses))
	}
	return sb.String()
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	output := map[string]any{
		"backend":       url,
		"status":        resp.Status,
		"architectures": resp.Architectures,
		"vendors":       resp.Vendors,
		"combinations":  resp.Combinations,
		"vsphere":       resp.VSphere,
		"cache_status":  resp.CacheStatus,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
