package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input stream ends before a line is read.
var ErrNoInput = errors.New("no input")

// Prompter asks the user for single-line answers.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// NewPrompter reads from in and writes prompts to out. Secrets are read with
// echo disabled when in is a terminal.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	fd := int(in.Fd())
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd, tty: term.IsTerminal(fd)}
}

// NewReaderPrompter never treats its input as a terminal.
func NewReaderPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// Interactive reports whether the prompter is attached to a terminal.
func (p *Prompter) Interactive() bool { return p.tty }

// Line prints label and returns the trimmed line the user typed.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Secret prints label and reads a line without echoing it on a terminal.
// Surrounding whitespace is kept; passwords may contain it.
func (p *Prompter) Secret(label string) (string, error) {
	if !p.tty {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
