package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the flowguard banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Subtle gradient (Teal/Green)
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _                                       _ ", "#2dd4bf"},
		{"  / _| | _____      ____ _ _   _  __ _ _ __ __| |", "#34d399"},
		{" | |_| |/ _ \\ \\ /\\ / / _` | | | |/ _` | '__/ _` |", "#4ade80"},
		{" |  _| | (_) \\ V  V / (_| | |_| | (_| | | | (_| |", "#a3e635"},
		{" |_| |_|\\___/ \\_/\\_/ \\__, |\\__,_|\\__,_|_|  \\__,_|", "#facc15"},
		{"                     |___/                        ", "#facc15"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
