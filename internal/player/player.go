// Package player hands a resolved media link to an external player.
// All invocations use exec.Command with explicit argument slices; remote
// data never reaches a shell.
package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"linkgrab/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play opens link and blocks until the player exits.
	Play(link media.Link, title string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch strings.ToLower(name) {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: strings.ToLower(name)}
	default:
		return &MPV{} // Default to mpv
	}
}

func available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// run starts bin attached to the terminal. Players exit non-zero when the
// user closes the window, so exit errors are not reported.
func run(bin string, args []string) error {
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", bin, err)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("running %s: %w", bin, err)
	}
	return nil
}
