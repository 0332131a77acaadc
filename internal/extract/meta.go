package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageMeta holds the Open Graph / Twitter card values of a page.
type pageMeta map[string]string

// parseMeta collects <meta property|name content> pairs from html.
// Uses DOM parsing rather than regexes so attribute order and quoting
// do not matter. The first occurrence of a key wins.
func parseMeta(html string) pageMeta {
	meta := pageMeta{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("property", "")
		if key == "" {
			key = s.AttrOr("name", "")
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return
		}
		content, exists := s.Attr("content")
		if !exists {
			return
		}
		if _, seen := meta[key]; !seen {
			meta[key] = strings.TrimSpace(content)
		}
	})

	return meta
}

// first returns the first usable value among keys.
func (m pageMeta) first(keys ...string) string {
	for _, k := range keys {
		if v := m[k]; v != "" && v != nullMarker {
			return v
		}
	}
	return ""
}
