// Package prompt asks for missing command values on an interactive terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/routemap/pkg/errors"
)

// Prompter reads one line per question.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// New returns a Prompter reading answers from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

// Interactive reports whether f is a terminal a user can answer from.
func Interactive(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Ask prints question and returns the trimmed answer. An empty answer
// returns def; with no default the answer is required.
func (p *Prompter) Ask(field, question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	response, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.WrapIO("read", "stdin", err)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		response = def
	}
	if response == "" {
		return "", errors.NewValidationError(field, "", "a value is required")
	}
	return response, nil
}

// Details are the three values the extract command needs.
type Details struct {
	Router string
	Out    string
	Key    string
}

// Fill asks for every empty field of d in order: router, output base name,
// then key. Answers left empty take the value from defaults; the output
// name falls back to the router name. needKey is false when the document
// layout has no key.
func (p *Prompter) Fill(d *Details, defaults Details, needKey bool) error {
	var err error
	if d.Router == "" {
		if d.Router, err = p.Ask("router", "Enter the name of the router", defaults.Router); err != nil {
			return err
		}
	}
	if d.Out == "" {
		def := defaults.Out
		if def == "" {
			def = d.Router
		}
		if d.Out, err = p.Ask("out", "Enter the name for the output file (without extension)", def); err != nil {
			return err
		}
	}
	if needKey && d.Key == "" {
		if d.Key, err = p.Ask("key", "Enter the top-level key for the endpoint list", defaults.Key); err != nil {
			return err
		}
	}
	return nil
}
