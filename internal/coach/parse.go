package coach

import (
	"regexp"
	"strings"
)

// Leading enumeration marker: "1. " or "- ".
var markerRe = regexp.MustCompile(`^(\d+\.|-)(\s+|$)`)

// ParseSuggestions splits completion text into discrete suggestions:
// lines become suggestions, markers stripped. Tolerates missing markers,
// mixed "N." and "-" markers, and blank-line separated paragraphs.
func ParseSuggestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(markerRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
