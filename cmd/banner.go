package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var palette = newPalette("#1DB954", "#7D56F4", "#626262")

// stylesheet is a small set of styles for the startup banner
type stylesheet struct {
	title lipgloss.Style
	link  lipgloss.Style
	help  lipgloss.Style
}

func newPalette(title, link, help string) *stylesheet {
	return &stylesheet{
		title: newStyle(title).Bold(true),
		link:  newStyle(link).Underline(true),
		help:  newStyle(help).Italic(true),
	}
}

func newStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

// banner renders the lines printed once the server is listening.
func banner(homeURL, store string) string {
	var b strings.Builder
	fmt.Fprintln(&b, palette.title.Render("glass"))
	fmt.Fprintf(&b, "  listening on %s\n", palette.link.Render(homeURL))
	fmt.Fprintf(&b, "  session store %s\n", store)
	fmt.Fprintln(&b, palette.help.Render("  press ctrl+c to stop"))
	return b.String()
}
