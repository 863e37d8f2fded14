package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colours shared by interactive output.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourError   = lipgloss.Color("#F38BA8")
)

// chatStyles renders the REPL. Without colour every string is unchanged.
type chatStyles struct {
	colour   bool
	prompt   lipgloss.Style
	farewell lipgloss.Style
	err      lipgloss.Style
}

func newChatStyles(colour bool) chatStyles {
	return chatStyles{
		colour:   colour,
		prompt:   lipgloss.NewStyle().Foreground(colourPrimary).Bold(true),
		farewell: lipgloss.NewStyle().Foreground(colourMuted).Italic(true),
		err:      lipgloss.NewStyle().Foreground(colourError),
	}
}

// render styles text line by line so lines are not padded to one width.
func (s chatStyles) render(style lipgloss.Style, text string) string {
	if !s.colour {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// stylesFor colours output only when it goes to a terminal.
func stylesFor(w io.Writer) chatStyles {
	f, ok := w.(*os.File)
	return newChatStyles(ok && term.IsTerminal(int(f.Fd())))
}
