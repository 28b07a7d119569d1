// Package basicinfo recovers a candidate's name, email and phone number
// from normalised CV text.
//
// Every function here is pure: no I/O, no shared mutable state.
package basicinfo

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// nameLineWindow is how many non-empty lines are considered for the name.
const nameLineWindow = 5

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Indonesian numbers: optional +62, 62 or 0 prefix, then 2-3, 3-4 and
	// 3-4 digit groups separated by an optional space or hyphen.
	phonePattern = regexp.MustCompile(`(\+62|62|0)?[\s-]?\d{2,3}[\s-]?\d{3,4}[\s-]?\d{3,4}`)

	nameWordPattern = regexp.MustCompile(`^[\p{L}.]+$`)

	// Header words, matched whole so names like Cvetkovic or McVey survive.
	headerPattern = regexp.MustCompile(`(?i)\b(CV|CURRICULUM|RESUME)\b`)
)

// Extract runs all heuristics over text.
func Extract(text string) domain.BasicInfo {
	return domain.BasicInfo{
		Name:  Name(text),
		Email: Email(text),
		Phone: Phone(text),
	}
}

// Email returns the first email address in text, or "".
func Email(text string) string {
	return emailPattern.FindString(text)
}

// Phone returns the first Indonesian phone number in text, or "".
func Phone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// Name returns the candidate name, or "".
//
// Only the first five non-empty lines are considered. The first line that
// is not a header or contact line and consists of two to four words made of
// letters and periods wins.
func Name(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > nameLineWindow {
			break
		}
		if skipNameLine(line) {
			continue
		}
		if looksLikeName(line) {
			return line
		}
	}
	return ""
}

// skipNameLine reports lines that can never hold the name.
func skipNameLine(line string) bool {
	if strings.Contains(line, "@") {
		return true
	}
	if headerPattern.MatchString(line) {
		return true
	}
	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsDigit(first) {
		return true
	}
	return utf8.RuneCountInString(line) < 3
}

func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !nameWordPattern.MatchString(w) {
			return false
		}
	}
	return true
}
