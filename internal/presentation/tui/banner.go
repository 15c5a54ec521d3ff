package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the chat REPL.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal-to-emerald gradient
	s1 := termenv.String("   ___                 _                     ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  / __\\___  _ __   ___(_) ___ _ __ __ _  ___ ").Foreground(p.Color("#34d399"))
	s3 := termenv.String(" / /  / _ \\| '_ \\ / __| |/ _ \\ '__/ _` |/ _ \\").Foreground(p.Color("#4ade80"))
	s4 := termenv.String("/ /__| (_) | | | | (__| |  __/ | | (_| |  __/").Foreground(p.Color("#a3e635"))
	s5 := termenv.String("\\____/\\___/|_| |_|\\___|_|\\___|_|  \\__, |\\___|").Foreground(p.Color("#facc15"))
	s6 := termenv.String("                                  |___/      ").Foreground(p.Color("#fb923c"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	if v := strings.TrimSpace(version); v != "" {
		fmt.Println(termenv.String("  v" + v).Foreground(p.Color("#9ca3af")).Faint())
	}
	fmt.Println()
}
