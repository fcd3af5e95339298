package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the gambit banner to w with the given color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text, color string
	}{
		{"   __ _  __ _ _ __ ___ | |__ (_) |_ ", "#f0d9b5"},
		{"  / _` |/ _` | '_ ` _ \\| '_ \\| | __|", "#e2c08d"},
		{" | (_| | (_| | | | | | | |_) | | |_ ", "#d4a76a"},
		{"  \\__, |\\__,_|_| |_| |_|_.__/|_|\\__|", "#c68e4a"},
		{"  |___/                             ", "#b58863"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
