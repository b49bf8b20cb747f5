package action

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrDeclined is returned when the user does not confirm a destructive run.
var ErrDeclined = errors.New("aborted")

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm answers yes without asking (--yes).
var AlwaysConfirm = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Prompt is the question asked before a destructive mode runs.
func Prompt(mode Mode) string {
	return fmt.Sprintf("Are you sure you want to %s these channels?", mode)
}

// Guard runs before any remote call. It returns nil when the run may
// proceed and ErrDeclined when the user said no. List mode never asks.
func Guard(mode Mode, c Confirmer) error {
	if !mode.Destructive() {
		return nil
	}
	ok, err := c.Confirm(Prompt(mode))
	if err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

// NewPromptConfirmer returns an interactive form when in is a terminal and
// a plain y/N line prompt otherwise.
func NewPromptConfirmer(in *os.File, out io.Writer) Confirmer {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return FormConfirmer{}
	}
	return NewLineConfirmer(in, out)
}

// FormConfirmer asks through a huh confirm field.
type FormConfirmer struct{}

// Confirm shows the form. Aborting it (ctrl-c, esc) counts as no.
func (FormConfirmer) Confirm(prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// LineConfirmer reads y/n answers line by line. An empty answer or end of
// input means no.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a LineConfirmer reading from in and prompting on out.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints prompt and waits for an answer, asking again on
// unrecognized input.
func (c *LineConfirmer) Confirm(prompt string) (bool, error) {
	for {
		fmt.Fprintf(c.out, "%s [y/N]: ", prompt)

		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		fmt.Fprintln(c.out, "Error: invalid input")
	}
}
