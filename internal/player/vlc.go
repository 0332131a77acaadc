package player

import "linkgrab/internal/media"

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return available("vlc") }

func (v *VLC) Play(link media.Link, title string) error {
	return run("vlc", v.args(link, title))
}

func (v *VLC) args(link media.Link, title string) []string {
	return []string{
		link.URL,
		"--meta-title", title,
		"--play-and-exit",
	}
}
