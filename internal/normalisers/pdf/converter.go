package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Ensure Converter implements the interface.
var _ driven.DocumentConverter = (*Converter)(nil)

// gapRatio is the horizontal gap, relative to font size, that separates two
// words on one line.
const gapRatio = 0.2

// Converter extracts Markdown from PDF files.
type Converter struct{}

// NewConverter creates a PDF converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert reads the PDF at path and renders its text as Markdown.
func (c *Converter) Convert(ctx context.Context, path string) (md string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse %s: %v: %w", path, r, domain.ErrConversion)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w: %w", path, domain.ErrConversion, err)
	}
	defer f.Close()

	pages := make([][]Line, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("read page %d of %s: %w: %w", i, path, domain.ErrConversion, err)
		}
		pages = append(pages, rowLines(rows))
	}
	logger.Debug("pdf: %s has %d pages", path, len(pages))

	md = Markdown(pages)
	if strings.TrimSpace(md) == "" {
		return "", fmt.Errorf("%s has no extractable text: %w", path, domain.ErrConversion)
	}
	return md, nil
}

func rowLines(rows pdf.Rows) []Line {
	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		texts := append([]pdf.Text(nil), row.Content...)
		sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

		var b strings.Builder
		var size float64
		var end float64
		for i, t := range texts {
			if i > 0 && needsSpace(b.String(), t, end) {
				b.WriteByte(' ')
			}
			b.WriteString(t.S)
			end = t.X + t.W
			size = max(size, t.FontSize)
		}
		lines = append(lines, Line{Text: b.String(), Size: size})
	}
	return lines
}

func needsSpace(sofar string, t pdf.Text, prevEnd float64) bool {
	if strings.HasSuffix(sofar, " ") || strings.HasPrefix(t.S, " ") {
		return false
	}
	return t.X-prevEnd > gapRatio*t.FontSize
}
