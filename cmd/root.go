// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"linkgrab/internal/config"
	"linkgrab/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagJSON     bool
	flagDownload string
	flagSave     bool
	flagPlay     bool
	flagLink     int
	flagPlayer   string
	flagRelays   []string
	flagTimeout  string
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// logger is configured from cfg in loadConfig.
var logger = logrus.StandardLogger()

// errFailed signals an error result that has already been reported.
var errFailed = errors.New("extraction failed")

var rootCmd = &cobra.Command{
	Use:   "linkgrab <url>",
	Short: "Resolve social media page links into direct media URLs",
	Long: `Linkgrab turns a YouTube, Instagram, TikTok, Facebook or Twitter/X page
link into direct, downloadable media URLs. Page fetches go through a
prioritized list of public relays and fail over to the next relay when one
is down.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              resolveRun,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().StringArrayVar(&flagRelays, "relay", nil, "Relay template containing {url} or {raw} (repeatable, replaces configured relays)")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "Per-relay attempt timeout, e.g. 10s")

	rootCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Print the extraction result as JSON")
	rootCmd.Flags().StringVarP(&flagDownload, "download", "d", "", "Download the chosen link into DIR")
	rootCmd.Flags().BoolVarP(&flagSave, "save", "s", false, "Download the chosen link into the configured download_dir")
	rootCmd.Flags().BoolVar(&flagPlay, "play", false, "Open the chosen link in the configured player")
	rootCmd.Flags().IntVarP(&flagLink, "link", "k", 0, "Choose link N (1-based) instead of prompting")
	rootCmd.Flags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")

	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(relaysCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if len(flagRelays) > 0 {
		cfg.Relays = flagRelays
	}
	if flagTimeout != "" {
		cfg.RelayTimeout = flagTimeout
	}
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.Setup(logging.Options{
		Level: cfg.Level(),
		JSON:  cfg.LogJSON,
		Out:   os.Stderr,
	})

	return nil
}
