// Package relay fetches third-party pages through an ordered list of public
// CORS relays, falling through to the next relay when one fails.
package relay

import (
	"fmt"
	"net/url"
	"strings"

	"linkgrab/internal/httputil"
)

const (
	// PlaceholderEscaped is replaced by the query-escaped target URL.
	PlaceholderEscaped = "{url}"
	// PlaceholderRaw is replaced by the target URL verbatim.
	PlaceholderRaw = "{raw}"
)

// DefaultTemplates are the built-in relays in priority order.
var DefaultTemplates = []string{
	"https://api.codetabs.com/v1/proxy?quest={url}",
	"https://thingproxy.freeboard.io/fetch/{raw}",
	"https://api.allorigins.win/raw?url={url}",
}

// DefaultFailureMarkers are body substrings that mean the relay itself
// failed, even when it answered 200.
var DefaultFailureMarkers = []string{
	"Proxy Error",
	"Could not request",
}

// Template maps a target URL to a relay-wrapped URL.
type Template struct {
	pattern string
}

// ParseTemplate validates a relay template. It must contain exactly one of
// the {url} or {raw} placeholders and produce HTTPS URLs.
func ParseTemplate(pattern string) (Template, error) {
	pattern = strings.TrimSpace(pattern)
	escaped := strings.Count(pattern, PlaceholderEscaped)
	raw := strings.Count(pattern, PlaceholderRaw)
	if escaped+raw != 1 {
		return Template{}, fmt.Errorf("relay template %q must contain exactly one %s or %s placeholder",
			pattern, PlaceholderEscaped, PlaceholderRaw)
	}

	t := Template{pattern: pattern}
	if err := httputil.ValidateURL(t.Wrap("https://example.com/")); err != nil {
		return Template{}, fmt.Errorf("relay template %q: %w", pattern, err)
	}
	return t, nil
}

// Wrap returns the relay URL that fetches target.
func (t Template) Wrap(target string) string {
	if strings.Contains(t.pattern, PlaceholderRaw) {
		return strings.Replace(t.pattern, PlaceholderRaw, target, 1)
	}
	return strings.Replace(t.pattern, PlaceholderEscaped, url.QueryEscape(target), 1)
}

// Host returns the relay's host, used to label attempts in logs and errors.
func (t Template) Host() string {
	u, err := url.Parse(t.Wrap(""))
	if err != nil || u.Host == "" {
		return t.pattern
	}
	return u.Host
}

func (t Template) String() string {
	return t.pattern
}

// Set is an immutable, priority-ordered list of relay templates.
type Set struct {
	templates []Template
}

// NewSet parses patterns into a Set, keeping their order.
func NewSet(patterns ...string) (Set, error) {
	if len(patterns) == 0 {
		return Set{}, fmt.Errorf("relay set cannot be empty")
	}
	templates := make([]Template, 0, len(patterns))
	for _, p := range patterns {
		t, err := ParseTemplate(p)
		if err != nil {
			return Set{}, err
		}
		templates = append(templates, t)
	}
	return Set{templates: templates}, nil
}

// DefaultSet returns the built-in relay set.
func DefaultSet() Set {
	s, err := NewSet(DefaultTemplates...)
	if err != nil {
		panic(err)
	}
	return s
}

// Templates returns a copy of the templates in priority order.
func (s Set) Templates() []Template {
	out := make([]Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Len returns the number of relays.
func (s Set) Len() int {
	return len(s.templates)
}
