package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/output"
	"github.com/jmylchreest/tourtip/internal/store"
)

var statusOpts struct {
	format string
	popups bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tour progress",
	Long: `Show which popups have been seen, per page.

Examples:
  # Page summaries
  tourtip status

  # Per-popup rows with dismissal times
  tourtip status --popups

  # Machine-readable output
  tourtip status --format json --popups`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusOpts.format, "format", "plain",
		"Output format (plain, json, yaml)")
	statusCmd.Flags().BoolVar(&statusOpts.popups, "popups", false,
		"Show per-popup rows")
}

func runStatus(cmd *cobra.Command, args []string) error {
	records, err := seenLog.Load()
	if err != nil {
		return fmt.Errorf("failed to read seen log: %w", err)
	}

	status := model.BuildTourStatus(tourPages, store.SeenTimes(records))

	formatter := output.NewFormatter(output.FormatType(statusOpts.format), output.FormatterOptions{
		ShowPopups: statusOpts.popups,
	})
	return formatter.Format(os.Stdout, status)
}
