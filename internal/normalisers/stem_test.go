package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem(t *testing.T) {
	tests := map[string]string{
		"book.pdf":          "book",
		"/a/b/book.v2.epub": "book",
		"noext":             "noext",
		".hidden":           ".hidden",
		"dir/notes.md":      "notes",
	}
	for in, want := range tests {
		assert.Equal(t, want, Stem(in), in)
	}
}
