package tui

import (
	"fmt"
	"io"
	"strings"
)

// PrintBanner writes the puppet banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := ProfileFor(w)
	lines := []struct {
		text  string
		color string
	}{
		{"                                 _   ", "#fbbf24"},
		{"  _ __  _   _ _ __  _ __   ___| |_ ", "#fb923c"},
		{" | '_ \\| | | | '_ \\| '_ \\ / _ \\ __|", "#f87171"},
		{" | |_) | |_| | |_) | |_) |  __/ |_ ", "#f472b6"},
		{" | .__/ \\__,_| .__/| .__/ \\___|\\__|", "#c084fc"},
		{" |_|         |_|   |_|             ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
