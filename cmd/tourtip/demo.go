package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tourtip/internal/store"
	"github.com/jmylchreest/tourtip/internal/tour"
	"github.com/jmylchreest/tourtip/internal/tui"
)

var demoOpts struct {
	page    string
	fresh   bool
	noAudio bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive tour demo",
	Long: `Run a fake multi-screen application wired to the tour engine.

Each screen is one tour page; its widgets anchor the popups. Switching
to a screen discovers its page, dismissing a popup advances to the next
unseen one, and dismissals are persisted to the seen log so a popup is
never shown twice across runs.

Key bindings:
  tab          Switch to the next screen
  enter/space  Dismiss the visible popup
  ?            Toggle help
  q            Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoOpts.page, "page", "",
		"Screen to start on (default: first page in the tour)")
	demoCmd.Flags().BoolVar(&demoOpts.fresh, "fresh", false,
		"Ignore persisted seen state for this run (nothing is deleted)")
	demoCmd.Flags().BoolVar(&demoOpts.noAudio, "no-audio", false,
		"Disable chimes")
}

func runDemo(cmd *cobra.Command, args []string) error {
	var seen []string
	if !demoOpts.fresh {
		var err error
		seen, err = seenLog.IDs()
		if err != nil {
			return fmt.Errorf("failed to read seen log: %w", err)
		}
	}

	// Dismissals append to the seen log as they happen. In --fresh mode
	// the manager starts empty but new dismissals are still recorded.
	session := store.NewSessionID()
	onSeen := func(id string) {
		record := store.NewRecord(id, pageOf(id), session)
		if err := seenLog.Append(record); err != nil {
			logger.Warn("failed to persist dismissal", "id", id, "error", err)
		}
	}

	manager := tour.NewManager(seen, onSeen, logger)
	defer manager.Close()

	for _, page := range tourPages {
		if err := manager.AddPage(page.Name, page.IDs()); err != nil {
			return fmt.Errorf("failed to register page %q: %w", page.Name, err)
		}
	}

	startPage := demoOpts.page
	if startPage == "" {
		startPage = cfg.Demo.StartPage
	}

	return tui.Run(tui.RunOptions{
		Config:    cfg,
		Pages:     tourPages,
		Manager:   manager,
		SeenLog:   seenLog,
		Logger:    logger,
		StartPage: startPage,
		NoAudio:   demoOpts.noAudio,
		Fresh:     demoOpts.fresh,
	})
}
