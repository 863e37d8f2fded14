package pdf

import (
	"math"
	"sort"
	"strings"
)

// headingRatio is how much larger than body text a line must be to count as
// a heading.
const headingRatio = 1.15

// maxHeadingLevel caps heading depth; smaller heading sizes share it.
const maxHeadingLevel = 3

// Line is one visual line of a page with its dominant font size.
type Line struct {
	Text string
	Size float64
}

// Markdown renders extracted lines as Markdown. The most common font size
// (weighted by characters) is body text; lines set noticeably larger become
// headings, the largest size as #, the next as ## and the rest as ###.
// Pages are separated by a blank line.
func Markdown(pages [][]Line) string {
	body := bodySize(pages)
	levels := headingLevels(pages, body)

	var b strings.Builder
	for _, page := range pages {
		wrote := false
		for _, line := range page {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}
			if level, ok := levels[roundSize(line.Size)]; ok {
				if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n\n") {
					b.WriteString("\n")
				}
				b.WriteString(strings.Repeat("#", level))
				b.WriteString(" ")
				b.WriteString(text)
				b.WriteString("\n\n")
			} else {
				b.WriteString(text)
				b.WriteString("\n")
			}
			wrote = true
		}
		if wrote {
			b.WriteString("\n")
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return ""
	}
	return out + "\n"
}

func bodySize(pages [][]Line) float64 {
	weights := make(map[float64]int)
	for _, page := range pages {
		for _, line := range page {
			weights[roundSize(line.Size)] += len(strings.TrimSpace(line.Text))
		}
	}

	var body float64
	best := -1
	for size, w := range weights {
		if w > best || (w == best && size < body) {
			body, best = size, w
		}
	}
	return body
}

func headingLevels(pages [][]Line, body float64) map[float64]int {
	if body <= 0 {
		return nil
	}

	seen := make(map[float64]bool)
	var sizes []float64
	for _, page := range pages {
		for _, line := range page {
			size := roundSize(line.Size)
			if size >= body*headingRatio && !seen[size] && strings.TrimSpace(line.Text) != "" {
				seen[size] = true
				sizes = append(sizes, size)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	levels := make(map[float64]int, len(sizes))
	for i, size := range sizes {
		levels[size] = min(i+1, maxHeadingLevel)
	}
	return levels
}

// roundSize snaps sizes to half points so tiny rendering differences do not
// create separate levels.
func roundSize(size float64) float64 {
	return math.Round(size*2) / 2
}
