package player

import "linkgrab/internal/media"

// Generic implements the Player interface for players like iina and
// celluloid that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return available(g.name) }

func (g *Generic) Play(link media.Link, title string) error {
	return run(g.name, g.args(link, title))
}

func (g *Generic) args(link media.Link, title string) []string {
	return []string{link.URL, "--force-media-title=" + title}
}
