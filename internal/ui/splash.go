package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ShowSplash prints the startup banner before the options form.
func ShowSplash() {
	banner := lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render("EventStreams"),
		DimStyle.Render("a live filter for Wikimedia recent changes"),
	)
	box := BorderStyle.
		Padding(1, 4).
		Render(banner)
	fmt.Println(box)
	fmt.Println()
}
