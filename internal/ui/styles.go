// Package ui provides styled terminal output helpers for the seqsquash CLI.
// Colors are disabled automatically when stdout is not a TTY, when NO_COLOR
// is set, or when TERM=dumb.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Lipgloss styles for consistent terminal output.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // Blue
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // Gray
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// colorsEnabled is resolved once at startup.
var colorsEnabled = detectColors()

// detectColors reports whether styled output should be used.
func detectColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// SetColorsEnabled overrides automatic color detection. Used in tests.
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// render applies a style only when colors are enabled.
func render(style lipgloss.Style, text string) string {
	if !colorsEnabled {
		return text
	}
	return style.Render(text)
}

// Themed text functions.

// Success renders a success message with a check mark.
func Success(text string) string { return render(successStyle, "✓ "+text) }

// Error renders an error message with a cross mark.
func Error(text string) string { return render(errorStyle, "✗ "+text) }

// Warning renders a warning message.
func Warning(text string) string { return render(warningStyle, "⚠ "+text) }

// Info renders an informational message.
func Info(text string) string { return render(infoStyle, "ℹ "+text) }

// Primary renders text in the primary accent color.
func Primary(text string) string { return render(primaryStyle, text) }

// Dim renders de-emphasized text.
func Dim(text string) string { return render(dimStyle, text) }

// Header renders a bold header.
func Header(text string) string { return render(headerStyle, text) }
