// Package ui renders per-entity progress lines and interactive prompts
// for the command layer and the sync engine.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes styled status lines. Styling degrades to plain text when
// the environment advertises no color support, so piped output stays clean.
type Printer struct {
	out    io.Writer
	pass   lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	accent lipgloss.Style
}

// NewPrinter returns a Printer writing to out, with styles chosen from the
// environment's color profile.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{out: out}
	if termenv.EnvColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		p.pass, p.warn, p.fail, p.accent = plain, plain, plain, plain
		return p
	}
	p.pass = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	p.warn = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	p.fail = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	p.accent = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return p
}

// Infof prints a neutral progress line.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintln(p.out, p.accent.Render(fmt.Sprintf(format, args...)))
}

// Passf prints a success line.
func (p *Printer) Passf(format string, args ...any) {
	fmt.Fprintln(p.out, p.pass.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, p.warn.Render("! "+fmt.Sprintf(format, args...)))
}

// Failf prints a failure line.
func (p *Printer) Failf(format string, args ...any) {
	fmt.Fprintln(p.out, p.fail.Render("✗ "+fmt.Sprintf(format, args...)))
}

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// RenderPass styles a success marker for inline use in command output.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderWarn styles a warning marker.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderFail styles a failure marker.
func RenderFail(s string) string { return failStyle.Render(s) }

// RenderAccent styles an informational marker.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// PickOne presents options and returns the index the user selects, or -1
// for the explicit "keep all" escape. Requires an interactive terminal.
func PickOne(title string, options []string) (int, error) {
	opts := make([]huh.Option[int], 0, len(options)+1)
	for i, o := range options {
		opts = append(opts, huh.NewOption(o, i))
	}
	opts = append(opts, huh.NewOption("none of these (keep all, skip entity)", -1))

	choice := -1
	sel := huh.NewSelect[int]().Title(title).Options(opts...).Value(&choice)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return -1, err
	}
	return choice, nil
}
