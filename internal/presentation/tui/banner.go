package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   ___                        ___                 _    `, "#38bdf8"},
	{`  / __|__ _ _ _ ___ ___ _ _  / __|_ _ __ _ _ __| |_  `, "#22d3ee"},
	{` | (__/ _' | '_/ -_) -_) '_|| (_ | '_/ _' | '_ \ ' \ `, "#2dd4bf"},
	{`  \___\__,_|_| \___\___|_|   \___|_| \__,_| .__/_||_|`, "#34d399"},
	{`                                          |_|        `, "#4ade80"},
}

// PrintBanner writes the ASCII banner to w using the colour profile of the terminal.
// Non-terminals get plain text.
func PrintBanner(w io.Writer) {
	p := termenv.Ascii
	if IsTerminal(w) {
		p = termenv.ColorProfile()
	}

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
