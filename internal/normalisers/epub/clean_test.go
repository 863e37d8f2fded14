package epub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line endings and leading blanks",
			in:   "\r\n\n\nfirst\r\nsecond\rthird",
			want: "first\nsecond\nthird",
		},
		{
			name: "whitespace collapsed per line",
			in:   "  too    many\t\tspaces  \nok",
			want: "too many spaces\nok",
		},
		{
			name: "blank runs become one",
			in:   "a\n\n   \n\n\nb\n\n",
			want: "a\n\nb",
		},
		{
			name: "uppercase lines become headings",
			in:   "CHAPTER ONE\nIt was a dark night.",
			want: "## CHAPTER ONE\nIt was a dark night.",
		},
		{
			name: "acronyms past the threshold are promoted",
			in:   "NASA\nUSA",
			want: "## NASA\nUSA",
		},
		{
			name: "digits alone are not headings",
			in:   "12345",
			want: "12345",
		},
		{
			name: "bullets normalised",
			in:   "* one\n  -   two\n• three",
			want: "- one\n- two\n- three",
		},
		{
			name: "numbered items keep their number",
			in:   "   1.   first\n12.\tsecond",
			want: "1. first\n12. second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in, 3))
		})
	}
}

func TestClean_ThresholdIsConfigurable(t *testing.T) {
	assert.Equal(t, "NASA", Clean("NASA", 4))
	assert.Equal(t, "## NASA", Clean("NASA", 3))
	assert.Equal(t, "## OK", Clean("OK", 1))
}

func TestIsHeading(t *testing.T) {
	assert.True(t, IsHeading("PART II: THE RETURN", 3))
	assert.True(t, IsHeading("ÉTÉ À PARIS", 3))
	assert.False(t, IsHeading("Part II", 3))
	assert.False(t, IsHeading("ABC", 3))
	assert.False(t, IsHeading("1234 - 5678", 3))
	assert.False(t, IsHeading(strings.Repeat("é", 10), 3))
}
