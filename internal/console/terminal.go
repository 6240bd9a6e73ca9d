package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Terminal is a line-oriented console over a reader and a writer.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a new Terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Ask prints prompt and returns the next input line without its line ending.
// io.EOF is returned only when no input is left at all.
func (t *Terminal) Ask(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks prompt until the answer is exactly "y" or "n".
func (t *Terminal) Confirm(prompt string) (bool, error) {
	for {
		answer, err := t.Ask(prompt)
		if err != nil {
			return false, err
		}
		switch answer {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(t.out, `Please answer "y" or "n".`)
	}
}

// Println writes a line to the console.
func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// Printf writes formatted output to the console.
func (t *Terminal) Printf(format string, a ...any) {
	fmt.Fprintf(t.out, format, a...)
}

// Writer returns the underlying output.
func (t *Terminal) Writer() io.Writer {
	return t.out
}
