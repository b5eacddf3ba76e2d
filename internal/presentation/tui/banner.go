package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the kinetree banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _    _            _                  ", "#818cf8"},
		{"| | _(_)_ __   ___| |_ _ __ ___  ___  ", "#a78bfa"},
		{"| |/ / | '_ \\ / _ \\ __| '__/ _ \\/ _ \\ ", "#c084fc"},
		{"|   <| | | | |  __/ |_| | |  __/  __/ ", "#e879f9"},
		{"|_|\\_\\_|_| |_|\\___|\\__|_|  \\___|\\___| ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
