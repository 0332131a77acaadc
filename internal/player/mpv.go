package player

import "linkgrab/internal/media"

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return available("mpv") }

func (m *MPV) Play(link media.Link, title string) error {
	return run("mpv", m.args(link, title))
}

func (m *MPV) args(link media.Link, title string) []string {
	args := []string{
		link.URL,
		"--force-media-title=" + title,
		"--really-quiet",
	}
	switch link.Kind {
	case media.Audio:
		args = append(args, "--force-window=immediate")
	case media.Image:
		// Keep stills on screen until the user closes them.
		args = append(args, "--image-display-duration=inf")
	}
	return args
}
