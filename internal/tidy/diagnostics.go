package tidy

import (
	"regexp"
	"strings"
)

// reDiagnostic matches tidy's per-location report lines, e.g.
// "line 3 column 1 - Warning: missing <!DOCTYPE> declaration".
var reDiagnostic = regexp.MustCompile(`^line \d+ column \d+ - \w+:`)

// Diagnostics splits tidy's stderr into warning messages. Location reports
// are always kept; the remaining lines (summary and advice) are kept only
// when quiet is false.
func Diagnostics(stderr string, quiet bool) []string {
	var out []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quiet && !reDiagnostic.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// summarize returns the first diagnostic line of stderr, or its first line.
func summarize(stderr string) string {
	lines := Diagnostics(stderr, false)
	for _, l := range lines {
		if reDiagnostic.MatchString(l) {
			return l
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return "no diagnostics"
}
