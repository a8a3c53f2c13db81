// Package ui is the line-oriented console: it reads one command per line and
// prints messages between divider lines.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const divider = "____________________________________________________________"

// Console reads lines from in and writes messages to out.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{reader: bufio.NewReader(in), out: out}
}

// ReadLine returns the next input line without its line ending. Lines have
// no length limit. It returns io.EOF once input is exhausted; a final line
// without a newline is still returned first.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt shows message and reads the answer.
func (c *Console) Prompt(ctx context.Context, message string) (string, error) {
	c.Show(message)
	return c.ReadLine(ctx)
}

// Show prints message framed by dividers.
func (c *Console) Show(message string) {
	fmt.Fprintf(c.out, "%s\n%s\n%s\n", divider, strings.TrimRight(message, "\n"), divider)
}

// Writer returns a writer whose content is shown as one framed message per
// Write call.
func (c *Console) Writer() io.Writer {
	return framed{c}
}

func (c *Console) Welcome() {
	c.Show("Welcome to BudgetBuddy!\nType 'help' to see the list of commands.")
}

func (c *Console) Goodbye() {
	c.Show("Goodbye! Hope to see you again soon.")
}

type framed struct{ c *Console }

func (f framed) Write(p []byte) (int, error) {
	f.c.Show(string(p))
	return len(p), nil
}
