package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTitle renders a title with an underline separator.
func RenderTitle(title string) string {
	return Header(title) + "\n" + Dim(strings.Repeat("─", len([]rune(title))))
}

// FormatKeyValue formats a key-value pair for aligned summary output.
func FormatKeyValue(key, value string) string {
	return Dim(key+": ") + value
}

// FormatCount formats a count with singular/plural form.
// Example: FormatCount(3, "model", "models") -> "3 models"
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// panel renders content in a rounded bordered box with a styled title.
func panel(title, content string, style lipgloss.Style) string {
	if !colorsEnabled {
		return title + "\n" + content
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderStyle.GetForeground()).
		Padding(0, 1)
	return box.Render(style.Render(title) + "\n\n" + content)
}

// RenderSuccessPanel renders a success panel with title and content.
func RenderSuccessPanel(title, content string) string {
	return panel(title, content, successStyle)
}

// RenderWarningPanel renders a warning panel with title and content.
func RenderWarningPanel(title, content string) string {
	return panel(title, content, warningStyle)
}

// RenderErrorPanel renders an error panel with title and content.
func RenderErrorPanel(title, content string) string {
	return panel(title, content, errorStyle)
}

// ShowSuccess prints a success panel.
func ShowSuccess(title, content string) {
	fmt.Println(RenderSuccessPanel(title, content))
}

// ShowWarning prints a warning panel.
func ShowWarning(title, content string) {
	fmt.Println(RenderWarningPanel(title, content))
}
