package debugstream

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// palette maps color names to terminal styles. Names follow the conventions
// of classic terminal color libraries: the eight base colors, their bright
// variants, and text attributes like bold and dim.
type palette map[string]lipgloss.Style

// newPalette builds the named style table on a renderer pinned to the ANSI
// profile, so the emitted escape sequences do not depend on the ambient
// terminal. Color enablement is decided by the stream, not the renderer.
func newPalette(out io.Writer) palette {
	r := lipgloss.NewRenderer(out, termenv.WithProfile(termenv.ANSI))

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	p := palette{
		"black":   fg("0"),
		"red":     fg("1"),
		"green":   fg("2"),
		"yellow":  fg("3"),
		"blue":    fg("4"),
		"magenta": fg("5"),
		"cyan":    fg("6"),
		"white":   fg("7"),

		// "grey" is bright black, matching common color libraries.
		"grey": fg("8"),
		"gray": fg("8"),

		"brightRed":     fg("9"),
		"brightGreen":   fg("10"),
		"brightYellow":  fg("11"),
		"brightBlue":    fg("12"),
		"brightMagenta": fg("13"),
		"brightCyan":    fg("14"),
		"brightWhite":   fg("15"),

		"bold":          r.NewStyle().Bold(true),
		"dim":           r.NewStyle().Faint(true),
		"italic":        r.NewStyle().Italic(true),
		"underline":     r.NewStyle().Underline(true),
		"inverse":       r.NewStyle().Reverse(true),
		"strikethrough": r.NewStyle().Strikethrough(true),
	}

	return p
}

// apply wraps message in each named style in order, left to right, so later
// names nest around earlier ones. An empty name list is a no-op. Unknown
// names leave the message unchanged.
func (p palette) apply(message string, names []string) string {
	for _, name := range names {
		style, ok := p[name]
		if !ok {
			continue
		}

		message = style.Render(message)
	}

	return message
}
