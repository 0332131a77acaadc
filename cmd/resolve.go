package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linkgrab/internal/download"
	"linkgrab/internal/media"
	"linkgrab/internal/player"
	"linkgrab/internal/resolver"
	"linkgrab/internal/ui"
)

// resolveRun is the default command: linkgrab <url>
func resolveRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	r, err := resolver.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	res := r.Resolve(cmd.Context(), args[0])
	logger.WithField("status", res.Status).Debug("resolved")

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else if err := ui.RenderResult(out, res); err != nil {
		return err
	}

	if !res.OK() {
		return errFailed
	}

	if flagDownload == "" && !flagSave && !flagPlay {
		return nil
	}

	idx, err := chooseLink(res)
	if err != nil {
		return err
	}
	link := res.Links[idx]
	logger.WithField("quality", link.Quality).Debug("link chosen")

	if flagDownload != "" || flagSave {
		dir := flagDownload
		if dir == "" {
			dir, err = cfg.ExpandDownloadDir()
			if err != nil {
				return fmt.Errorf("resolving download dir: %w", err)
			}
		}
		outputPath, err := download.Download(cmd.Context(), link, res.Title, dir, download.Options{
			UserAgent: cfg.UserAgent,
			Progress:  os.Stderr,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
	}

	if flagPlay {
		p := player.New(cfg.Player)
		if !p.Available() {
			return fmt.Errorf("player %q not found in PATH", cfg.Player)
		}
		if err := p.Play(link, res.Title); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	}

	return nil
}

// chooseLink picks the link to act on: --link when given, the picker on an
// interactive terminal, the first link otherwise.
func chooseLink(res media.Result) (int, error) {
	if flagLink != 0 {
		if flagLink < 1 || flagLink > len(res.Links) {
			return -1, fmt.Errorf("--link %d out of range (1-%d)", flagLink, len(res.Links))
		}
		return flagLink - 1, nil
	}

	if len(res.Links) == 1 || flagJSON || !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stderr) {
		return 0, nil
	}

	return ui.Select(res.Title, res.Links)
}
