// Package console is the line-oriented prompt/print surface shared by the
// menu and the entity managers.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Writer() io.Writer { return c.out }

// Ask prints prompt and reads one line, trimmed. A final line without a
// newline is returned normally; io.EOF is returned only when nothing was read.
func (c *Console) Ask(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Say prints a formatted line.
func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Println prints s verbatim followed by a newline.
func (c *Console) Println(s string) {
	fmt.Fprintln(c.out, s)
}
