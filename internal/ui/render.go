package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"linkgrab/internal/media"
)

// styles are bound to a renderer so colour is dropped automatically when
// the destination is not a terminal.
type styles struct {
	title   lipgloss.Style
	error   lipgloss.Style
	tag     lipgloss.Style
	faint   lipgloss.Style
	quality lipgloss.Style
	card    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Padding(0, 1),
		tag:     r.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
		faint:   r.NewStyle().Faint(true),
		quality: r.NewStyle().Bold(true),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
	}
}

// RenderResult writes a human-readable card for res to w.
func RenderResult(w io.Writer, res media.Result) error {
	s := newStyles(w)

	if !res.OK() {
		_, err := fmt.Fprintln(w, s.error.Render("error")+" "+res.Message)
		return err
	}

	var b strings.Builder
	b.WriteString(s.title.Render(res.Title))
	b.WriteString("\n")
	b.WriteString(s.tag.Render(res.Platform.DisplayName()))
	if res.Thumbnail != "" {
		b.WriteString("  " + s.faint.Render(res.Thumbnail))
	}
	b.WriteString("\n")

	for i, l := range res.Links {
		fmt.Fprintf(&b, "\n%2d. %s %s\n    %s",
			i+1,
			s.quality.Render(l.Quality),
			s.faint.Render(fmt.Sprintf("(%s, %s)", l.Kind, l.Extension)),
			l.URL,
		)
	}

	_, err := fmt.Fprintln(w, s.card.Render(b.String()))
	return err
}
