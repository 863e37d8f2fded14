package epub

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	bulletPrefix = regexp.MustCompile(`(?m)^[ \t]*[-*•][ \t]+`)
	numberPrefix = regexp.MustCompile(`(?m)^[ \t]*(\d+)\.[ \t]+`)
)

// Clean turns extracted book text into light Markdown: line endings are
// normalised, leading blank lines dropped, whitespace collapsed per line and
// blank runs reduced to one. All-uppercase lines longer than
// headingMinLength runes become level-2 headings; bullets become "- " and
// numbered items "N. ".
func Clean(text string, headingMinLength int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		if IsHeading(line, headingMinLength) {
			line = "## " + line
		}
		out = append(out, line)
	}

	cleaned := strings.TrimRight(strings.Join(out, "\n"), "\n")
	cleaned = bulletPrefix.ReplaceAllString(cleaned, "- ")
	cleaned = numberPrefix.ReplaceAllString(cleaned, "$1. ")
	return cleaned
}

// IsHeading reports whether line is all uppercase and longer than minLength
// runes. Lines without any cased letter are never headings.
func IsHeading(line string, minLength int) bool {
	if utf8.RuneCountInString(line) <= minLength {
		return false
	}
	cased := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
