package epub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Ignored title</title><style>p { color: red }</style></head>
<body>
<nav><ol><li>Contents</li></ol></nav>
<h1>CHAPTER ONE</h1>
<p>It was a <em>dark</em> night.</p>
<script>alert("x")</script>
<noscript>enable js</noscript>
<ul><li>first</li><li>second</li></ul>
<!-- comment -->
<p>Line<br/>break</p>
</body>
</html>`

	text, err := ExtractText(strings.NewReader(doc))
	require.NoError(t, err)

	assert.NotContains(t, text, "Ignored title")
	assert.NotContains(t, text, "color")
	assert.NotContains(t, text, "Contents")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "enable js")
	assert.NotContains(t, text, "comment")
	assert.Contains(t, text, "CHAPTER ONE\n")
	assert.Contains(t, text, "It was a dark night.\n")
	assert.Contains(t, text, "first\n")
	assert.Contains(t, text, "Line\nbreak")
}

func TestExtractText_ThenClean(t *testing.T) {
	text, err := ExtractText(strings.NewReader(`<body><h2>THE END</h2><p>  Fin   ally. </p></body>`))
	require.NoError(t, err)

	assert.Equal(t, "## THE END\nFin ally.", Clean(text, 3))
}
