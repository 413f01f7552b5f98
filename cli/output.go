package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ColorPrinter provides colored output utilities
type ColorPrinter struct {
	out io.Writer
	err io.Writer

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	blue   *color.Color
	cyan   *color.Color
	bold   *color.Color
	dim    *color.Color
}

// NewColorPrinter creates a printer on stdout and stderr. Colors follow
// fatih/color's terminal and NO_COLOR detection.
func NewColorPrinter() *ColorPrinter {
	return NewColorPrinterTo(os.Stdout, os.Stderr)
}

// NewColorPrinterTo creates a printer writing to the given streams.
func NewColorPrinterTo(out, err io.Writer) *ColorPrinter {
	return &ColorPrinter{
		out:    out,
		err:    err,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		blue:   color.New(color.FgBlue),
		cyan:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
		dim:    color.New(color.Faint),
	}
}

// Success prints a green success message with checkmark
func (p *ColorPrinter) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.green.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Error prints a red error message with X mark
func (p *ColorPrinter) Error(format string, args ...interface{}) {
	fmt.Fprintf(p.err, "%s %s\n", p.red.Sprint("✗"), fmt.Sprintf(format, args...))
}

// Warning prints a yellow warning message
func (p *ColorPrinter) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.yellow.Sprint("!"), fmt.Sprintf(format, args...))
}

// Info prints a blue info message
func (p *ColorPrinter) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.blue.Sprint("→"), fmt.Sprintf(format, args...))
}

// Bold returns bold text
func (p *ColorPrinter) Bold(text string) string {
	return p.bold.Sprint(text)
}

// Cyan returns cyan text
func (p *ColorPrinter) Cyan(text string) string {
	return p.cyan.Sprint(text)
}

// Dim returns dimmed text
func (p *ColorPrinter) Dim(text string) string {
	return p.dim.Sprint(text)
}
