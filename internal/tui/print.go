// Package tui renders sweep progress and the final report for the terminal,
// with lipgloss styling when stdout is a terminal and plain text otherwise.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleFailed = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Styled reports whether stdout is a terminal that can take styled output.
func Styled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Callback implements the sweep UI for terminal use.
type Callback struct {
	styled bool
}

// NewCallback creates a terminal UI callback, auto-detecting styling.
func NewCallback() *Callback {
	return &Callback{styled: Styled()}
}

// AnnouncePhase prints a phase start line.
func (c *Callback) AnnouncePhase(name string) {
	line := "==> " + name
	if c.styled {
		line = styleHeader.Render(line)
	}
	fmt.Println(line)
}

// Warn prints an advisory warning to stderr.
func (c *Callback) Warn(title, message string) {
	line := fmt.Sprintf("warning: %s: %s", title, message)
	if c.styled {
		line = styleWarn.Render(line)
	}
	fmt.Fprintln(os.Stderr, line)
}
