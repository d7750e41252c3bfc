package builtin

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/wgoodall01/monch/record"
)

var (
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	boolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	italicStyle = lipgloss.NewStyle().Italic(true)
)

// renderValue writes a human-readable inline rendering of v to w. When
// color is true, scalars are colorized and punctuation is dimmed the way
// an interactive terminal session would want; when false it produces the
// same structure in plain text.
func renderValue(w io.Writer, v record.Value, color bool) {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	switch v.Kind {
	case record.KindNull:
		fmt.Fprint(w, style(italicStyle, "(null)"))
	case record.KindBool:
		fmt.Fprint(w, style(boolStyle, fmt.Sprintf("%v", v.BoolVal)))
	case record.KindInt:
		fmt.Fprint(w, style(numberStyle, v.IntVal.String()))
	case record.KindFloat:
		fmt.Fprint(w, style(numberStyle, fmt.Sprintf("%.3f", v.FloatVal)))
	case record.KindBytes:
		fmt.Fprint(w, style(italicStyle, "(binary data)"))
	case record.KindText:
		fmt.Fprint(w, v.TextVal)
	case record.KindTag:
		fmt.Fprint(w, style(italicStyle, fmt.Sprintf("(tag %d) ", v.TagVal.Number)))
		renderValue(w, *v.TagVal.Inner, color)
	case record.KindArray:
		fmt.Fprint(w, "[")
		for i, item := range v.ArrayVal {
			if i != 0 {
				fmt.Fprint(w, ", ")
			}
			renderValue(w, item, color)
		}
		fmt.Fprint(w, "]")
	case record.KindMap:
		fmt.Fprint(w, style(dimStyle, "{"))
		for i, entry := range v.MapVal {
			if i != 0 {
				fmt.Fprint(w, style(dimStyle, ", "))
			}
			if entry.Key.Kind == record.KindText {
				fmt.Fprint(w, style(dimStyle, fmt.Sprintf("%s: ", entry.Key.TextVal)))
			} else {
				fmt.Fprint(w, ": ")
				renderValue(w, entry.Key, color)
			}
			renderValue(w, entry.Value, color)
		}
		fmt.Fprint(w, style(dimStyle, "}"))
	default:
		fmt.Fprint(w, "[cannot display]")
	}
}
