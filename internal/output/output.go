// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes human-readable status lines. Styles are plain when the
// writer is not a terminal.
type Printer struct {
	w      io.Writer
	styles styles
}

type styles struct {
	success lipgloss.Style
	warning lipgloss.Style
	key     lipgloss.Style
	dim     lipgloss.Style
}

// NewPrinter returns a Printer writing to w, with colors when isTTY.
func NewPrinter(w io.Writer, isTTY bool) *Printer {
	s := styles{
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
		key:     lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	if !isTTY {
		s = styles{
			success: lipgloss.NewStyle(),
			warning: lipgloss.NewStyle(),
			key:     lipgloss.NewStyle(),
			dim:     lipgloss.NewStyle(),
		}
	}
	return &Printer{w: w, styles: s}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.success.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning line prefixed with "warning:".
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.warning.Render("warning:"), fmt.Sprintf(format, args...))
}

// KeyValue prints an aligned "key  value" row.
func (p *Printer) KeyValue(key string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", p.styles.key.Render(fmt.Sprintf("%-14s", key)), value)
}

// Dim prints a de-emphasized line.
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.dim.Render(fmt.Sprintf(format, args...)))
}
