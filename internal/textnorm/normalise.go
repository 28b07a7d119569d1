// Package textnorm cleans up text produced by document decoders.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	blankLineRun = regexp.MustCompile(`\n{3,}`)
	spaceRun     = regexp.MustCompile(` {2,}`)
)

// Normalise converts decoder output into canonical CV text.
//
// Line endings become LF, runs of three or more newlines collapse to a
// single blank line, runs of spaces collapse to one space, and the result
// is trimmed. The output never contains '\r', "\n\n\n" or "  ", and
// Normalise(Normalise(s)) == Normalise(s).
func Normalise(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	// Lone CRs (classic Mac line endings, stray PDF artefacts) count as newlines.
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
