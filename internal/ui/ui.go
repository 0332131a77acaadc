// Package ui renders extraction results and lets the user pick a link.
// The picker is a bubbletea program and only runs on an interactive
// terminal; callers fall back to the first link otherwise.
package ui

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"linkgrab/internal/media"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// linkItem implements list.DefaultItem for a media link.
type linkItem struct {
	index int
	link  media.Link
}

func (i linkItem) Title() string {
	return fmt.Sprintf("%d. %s", i.index+1, i.link.Quality)
}

func (i linkItem) Description() string {
	host := i.link.URL
	if u, err := url.Parse(i.link.URL); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("%s · %s · %s", i.link.Kind, i.link.Extension, host)
}

func (i linkItem) FilterValue() string { return i.link.Quality }

type picker struct {
	list   list.Model
	chosen int
}

func newPicker(title string, links []media.Link) picker {
	items := make([]list.Item, len(links))
	for i, l := range links {
		items[i] = linkItem{index: i, link: l}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)

	return picker{list: l, chosen: -1}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.list.SetSize(msg.Width, msg.Height)
		return p, nil
	case tea.KeyMsg:
		if p.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := p.list.SelectedItem().(linkItem); ok {
				p.chosen = item.index
			}
			return p, tea.Quit
		case "ctrl+c", "esc", "q":
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p picker) View() string { return p.list.View() }

// Select shows links in an interactive list and returns the chosen index.
func Select(title string, links []media.Link) (int, error) {
	if len(links) == 0 {
		return -1, fmt.Errorf("no links to select from")
	}
	if len(links) == 1 {
		return 0, nil
	}

	final, err := tea.NewProgram(newPicker(title, links),
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	).Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}

	p, ok := final.(picker)
	if !ok || p.chosen < 0 {
		return -1, ErrCancelled
	}
	return p.chosen, nil
}
