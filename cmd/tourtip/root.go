// Package main provides the CLI entrypoint for tourtip.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tourtip/internal/config"
	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		tourPath   string
		seenFile   string
	}
	logger *slog.Logger

	// tourPages is the loaded tour definition.
	tourPages []model.Page

	// seenLog is the global seen-log handle.
	seenLog *store.SeenLog
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tourtip",
	Short: "Anchored popup tours for terminal and GUI hosts",
	Long: `tourtip sequences spotlight popups anchored to on-screen elements:
one unseen popup at a time per page, advancing on dismissal, never
showing a popup twice.

Running tourtip without a subcommand launches the interactive demo.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Verbose wins; otherwise the config decides.
		if !globalOpts.verbose {
			applyLogLevel(cfg.Log.Level)
		}

		tourPages, err = config.LoadTour(globalOpts.tourPath)
		if err != nil {
			return fmt.Errorf("failed to load tour: %w", err)
		}

		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		seenPath := globalOpts.seenFile
		if seenPath == "" {
			seenPath = config.SeenLogPath()
		}

		seenLog, err = store.Open(seenPath)
		if err != nil {
			return fmt.Errorf("failed to open seen log: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if seenLog != nil {
			return seenLog.Close()
		}
		return nil
	},
	// Default to the demo when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/tourtip/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.tourPath, "tour", "",
		"Path to tour definition file (default: ~/.config/tourtip/tour.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.seenFile, "seen-file", "",
		"Path to seen log (default: ~/.local/share/tourtip/seen.jsonl)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// applyLogLevel rebuilds the logger at the configured level.
func applyLogLevel(name string) {
	var level slog.Level
	switch name {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// pageOf maps a popup id back to the page that declares it.
func pageOf(id string) string {
	for _, p := range tourPages {
		if p.Popup(id) != nil {
			return p.Name
		}
	}
	return ""
}
