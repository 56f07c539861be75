package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetOpts struct {
	page string
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget seen popups",
	Long: `Remove dismissal records from the seen log so popups show again.

Examples:
  # Forget everything
  tourtip reset

  # Forget one page's popups
  tourtip reset --page compose`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().StringVar(&resetOpts.page, "page", "",
		"Only reset this page (default: all pages)")
}

func runReset(cmd *cobra.Command, args []string) error {
	removed, err := seenLog.Reset(resetOpts.page)
	if err != nil {
		return fmt.Errorf("failed to reset seen log: %w", err)
	}

	if resetOpts.page != "" {
		fmt.Printf("Removed %d record(s) for page %q\n", removed, resetOpts.page)
	} else {
		fmt.Printf("Removed %d record(s)\n", removed)
	}
	return nil
}
