// Package console prints operator messages and asks questions.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/restgen/restgen/pkg/errors"
)

var (
	infoMark    = color.New(color.FgCyan).Sprint("→")
	warnMark    = color.New(color.FgYellow).Sprint("!")
	successMark = color.New(color.FgGreen).Sprint("✓")
	alertColor  = color.New(color.FgYellow, color.Bold)
)

// Console writes to out and prompts on the terminal.
type Console struct {
	out         io.Writer
	errOut      io.Writer
	interactive bool
	selector    func(prompt string, options []string) (string, error)
}

// New creates a console writing to stdout and stderr. When interactive is
// false, Choose fails instead of prompting.
func New(interactive bool) *Console {
	return NewWithWriters(os.Stdout, os.Stderr, interactive)
}

// NewWithWriters creates a console writing to out and errOut.
func NewWithWriters(out, errOut io.Writer, interactive bool) *Console {
	return &Console{
		out:         out,
		errOut:      errOut,
		interactive: interactive,
		selector:    ptermSelect,
	}
}

func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", infoMark, fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", warnMark, fmt.Sprintf(format, args...))
}

func (c *Console) Success(format string, args ...any) {
	fmt.Fprintf(c.out, "\n%s %s\n", successMark, fmt.Sprintf(format, args...))
}

// Alert prints message framed so it stands out from progress output.
func (c *Console) Alert(message string) {
	rule := strings.Repeat("*", utf8.RuneCountInString(message)+4)
	fmt.Fprintln(c.out)
	alertColor.Fprintln(c.out, rule)
	alertColor.Fprintf(c.out, "* %s *\n", message)
	alertColor.Fprintln(c.out, rule)
	fmt.Fprintln(c.out)
}

// Error prints err to the error stream.
func (c *Console) Error(err error) {
	var e *errors.Error
	if errors.As(err, &e) {
		fmt.Fprint(c.errOut, e.Print())
		return
	}
	fmt.Fprintf(c.errOut, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
}

// Choose asks the operator to select one of options.
func (c *Console) Choose(prompt string, options []string) (int, error) {
	if !c.interactive {
		return -1, errors.New("cannot prompt: interaction is disabled")
	}

	selected, err := c.selector(prompt, options)
	if err != nil {
		return -1, err
	}
	for i, opt := range options {
		if opt == selected {
			return i, nil
		}
	}
	return -1, errors.Newf("unknown choice %q", selected)
}

func ptermSelect(prompt string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(prompt).
		Show()
}
