package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the tour's pages",
	RunE:  runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, args []string) error {
	seen, err := seenLog.IDs()
	if err != nil {
		return fmt.Errorf("failed to read seen log: %w", err)
	}

	seenSet := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	for _, page := range tourPages {
		count := 0
		for _, id := range page.IDs() {
			if _, ok := seenSet[id]; ok {
				count++
			}
		}
		fmt.Printf("%s  %d popup(s), %d seen\n", page.Name, len(page.Popups), count)
	}
	return nil
}
