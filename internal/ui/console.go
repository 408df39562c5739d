// Package ui provides styled console output helpers shared by all commands.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Console writes formatted status lines to a single writer.
type Console struct {
	Out io.Writer
}

// New creates a Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out}
}

// Info prints a plain informational line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

// Detail prints an indented, dimmed line (subprocess output, file lists).
func (c *Console) Detail(format string, args ...any) {
	fmt.Fprintln(c.Out, dimStyle.Render("  "+fmt.Sprintf(format, args...)))
}

// Success prints a green confirmation line.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.Out, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a yellow warning line. Warnings never abort the run.
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.Out, warnStyle.Render("warning: "+fmt.Sprintf(format, args...)))
}

// Error prints a red error line.
func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.Out, errorStyle.Render("error: "+fmt.Sprintf(format, args...)))
}
