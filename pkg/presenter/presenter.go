// Package presenter provides consistent CLI output for user-facing
// messages (success, error, warning, info) with color support and a
// quiet mode. Diagnostic logging stays on the logger; the presenter is
// only for output a person is meant to read.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// CorpusStats summarizes a corpus build for display.
type CorpusStats struct {
	Files      int
	Documents  int
	Skills     int
	SharpEdges int
	Handoffs   int
	Warnings   int
}

// ColorMode represents the color output modes.
type ColorMode int

const (
	// ColorAuto enables color only when writing to a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever disables colored output.
	ColorNever
)

// TerminalPresenter writes user-facing CLI output.
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	quiet       bool
}

var defaultPresenter = New()

// New creates a TerminalPresenter on stdout/stderr with auto-detected
// color support.
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with explicit settings.
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
	return &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
	}
}

func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return ColorNever
	}
	return ColorAuto
}

// SetQuiet suppresses success/info/stats output.
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// Error prints an error with optional context to the error stream. Errors
// are never suppressed by quiet mode.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}
	msg := err.Error()
	if context != "" {
		msg = context + ": " + msg
	}
	fmt.Fprintln(p.errorOutput, color.RedString("Error: %s", msg))
}

// Success prints a success message.
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.output, color.GreenString("✓ %s", message))
}

// Warning prints a warning message to the error stream.
func (p *TerminalPresenter) Warning(message string) {
	fmt.Fprintln(p.errorOutput, color.YellowString("⚠ %s", message))
}

// Info prints an informational message.
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.output, message)
}

// Section prints a section header.
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "\n%s\n%s\n", color.CyanString(title), strings.Repeat("-", len(title)))
}

// Stats prints a corpus build summary.
func (p *TerminalPresenter) Stats(stats CorpusStats) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "\n%s\n", color.CyanString("Corpus"))
	fmt.Fprintf(p.output, "  Files:       %d\n", stats.Files)
	fmt.Fprintf(p.output, "  Documents:   %d\n", stats.Documents)
	fmt.Fprintf(p.output, "  Skills:      %d\n", stats.Skills)
	fmt.Fprintf(p.output, "  Sharp edges: %d\n", stats.SharpEdges)
	fmt.Fprintf(p.output, "  Handoffs:    %d\n", stats.Handoffs)
	if stats.Warnings > 0 {
		fmt.Fprintf(p.output, "  Warnings:    %s\n", color.YellowString("%d", stats.Warnings))
	} else {
		fmt.Fprintf(p.output, "  Warnings:    0\n")
	}
}

// Package-level helpers writing through the default presenter.

// Error prints an error via the default presenter.
func Error(err error, context string) { defaultPresenter.Error(err, context) }

// Success prints a success message via the default presenter.
func Success(message string) { defaultPresenter.Success(message) }

// Warning prints a warning via the default presenter.
func Warning(message string) { defaultPresenter.Warning(message) }

// Info prints a message via the default presenter.
func Info(message string) { defaultPresenter.Info(message) }

// Section prints a section header via the default presenter.
func Section(title string) { defaultPresenter.Section(title) }

// Stats prints a corpus summary via the default presenter.
func Stats(stats CorpusStats) { defaultPresenter.Stats(stats) }

// SetQuiet toggles quiet mode on the default presenter.
func SetQuiet(quiet bool) { defaultPresenter.SetQuiet(quiet) }
