package extract

import (
	"regexp"
	"strings"
)

// nullMarker is the literal some pages emit for an absent URL field.
const nullMarker = "null"

// jsonField compiles a pattern matching `"name":"value"` in raw markup.
func jsonField(name string) *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(name) + `"\s*:\s*"([^"]*)"`)
}

// fieldValue returns the first usable value captured by re in body.
// Every occurrence of the field is scanned, not just the first: empty
// values and the null marker count as absent and the scan moves on, so a
// later occurrence of the same field wins over the next pattern.
func fieldValue(body string, re *regexp.Regexp) (string, bool) {
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		v := strings.TrimSpace(m[1])
		if v != "" && v != nullMarker {
			return v, true
		}
	}
	return "", false
}

// firstField tries each pattern in priority order and returns the first
// usable value along with the index of the pattern that produced it.
func firstField(body string, patterns ...*regexp.Regexp) (string, int) {
	for i, re := range patterns {
		if v, ok := fieldValue(body, re); ok {
			return v, i
		}
	}
	return "", -1
}

var slashEscapes = strings.NewReplacer(
	`\u002F`, "/",
	`\u002f`, "/",
	`\u0026`, "&",
	`\/`, "/",
)

// unescapeURL undoes the JSON escapes commonly found in embedded URLs.
func unescapeURL(s string) string {
	return slashEscapes.Replace(s)
}
