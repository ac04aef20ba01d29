package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` __   __ _  _          _            `, "#5eead4"},
		{` \ \ / /(_)| |_  _ __ (_) _ __   ___`, "#2dd4bf"},
		{`  \ V / | || __|| '__|| || '_ \ / _ \`, "#14b8a6"},
		{`   \_/  |_| \__||_|   |_||_| |_|\___|`, "#0d9488"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println(termenv.String("   v" + version).Foreground(p.Color("#64748b")))
	fmt.Println()
}
