package chunker

import (
	"strings"
)

// Sections splits Markdown at ATX heading lines (1-6 '#' at the start of a
// line, then a space, a tab or the end of the line). Each section starts
// with its heading line; text before the first heading forms its own
// section. Whitespace-only sections are dropped.
// The rule is purely line based: fences and HTML blocks do not hide
// headings.
func Sections(markdown string) []string {
	var bounds []int
	for start := 0; start < len(markdown); {
		if start > 0 && isATXHeading([]byte(lineAt(markdown, start))) {
			bounds = append(bounds, start)
		}
		next := strings.IndexByte(markdown[start:], '\n')
		if next < 0 {
			break
		}
		start += next + 1
	}

	sections := make([]string, 0, len(bounds)+1)
	prev := 0
	for _, b := range bounds {
		sections = appendSection(sections, markdown[prev:b])
		prev = b
	}
	return appendSection(sections, markdown[prev:])
}

func appendSection(sections []string, s string) []string {
	if strings.TrimSpace(s) == "" {
		return sections
	}
	return append(sections, s)
}

// lineAt returns the line starting at start, without its newline.
func lineAt(s string, start int) string {
	line := s[start:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return line
}

// isATXHeading reports whether line opens with 1-6 '#' followed by a space,
// a tab or the end of the line.
func isATXHeading(line []byte) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	if level == len(line) {
		return true
	}
	switch line[level] {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
