package normalisers

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name of path up to its first dot, so both
// "book.pdf" and "book.v2.pdf" become "book".
func Stem(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}
