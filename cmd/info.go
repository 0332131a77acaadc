package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"linkgrab/internal/platform"
	"linkgrab/internal/relay"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms in detection order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, sig := range platform.NewDetector().Signatures() {
			fmt.Fprintf(out, "%-10s %s\n", sig.Platform.DisplayName(), strings.Join(sig.Needles, ", "))
		}
		return nil
	},
}

var relaysCmd = &cobra.Command{
	Use:   "relays",
	Short: "List the active relay templates in priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := relay.NewSet(cfg.Relays...)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, t := range set.Templates() {
			fmt.Fprintf(out, "%d. %-28s %s\n", i+1, t.Host(), t)
		}
		fmt.Fprintf(out, "timeout per attempt: %s\n", cfg.RelayTimeout)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "linkgrab %s\n", Version)
	},
}
