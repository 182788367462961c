package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the valence ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`              _                      `, "#34d399"},
		{` __   ____ _ | | ___ _ __   ___ ___  `, "#2dd4bf"},
		{` \ \ / / _' || |/ _ \ '_ \ / __/ _ \ `, "#22d3ee"},
		{`  \ V / (_| || |  __/ | | | (_|  __/ `, "#38bdf8"},
		{`   \_/ \__,_||_|\___|_| |_|\___\___| `, "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colors a short status word: green for ok, red otherwise.
func Status(w io.Writer, ok bool, text string) string {
	out := termenv.NewOutput(w)
	color := "#ef4444"
	if ok {
		color = "#22c55e"
	}
	return out.String(text).Foreground(out.Color(color)).Bold().String()
}
