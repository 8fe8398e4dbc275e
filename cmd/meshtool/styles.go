package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles degrade to plain text when stdout is not a terminal.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(20)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func printTitle(title string) {
	fmt.Println(titleStyle.Render(title))
}

func printField(label string, format string, args ...any) {
	fmt.Println(labelStyle.Render(label) + fmt.Sprintf(format, args...))
}

// status renders ok in green and anything else in red.
func status(ok bool, text string) string {
	if ok {
		return goodStyle.Render(text)
	}
	return badStyle.Render(text)
}
