package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestReadLineUntilEOF(t *testing.T) {
	c := NewConsole(strings.NewReader("add expense a/5 x\nexit\n"), io.Discard)
	ctx := context.Background()

	for _, want := range []string{"add expense a/5 x", "exit"} {
		got, err := c.ReadLine(ctx)
		if err != nil || got != want {
			t.Fatalf("ReadLine() = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := c.ReadLine(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestPromptShowsMessage(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("a/10\n"), &out)

	answer, err := c.Prompt(context.Background(), "Edit fields")
	if err != nil || answer != "a/10" {
		t.Fatalf("Prompt() = %q, %v", answer, err)
	}
	want := divider + "\nEdit fields\n" + divider + "\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestWriterFramesEachMessage(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)

	fmt.Fprintln(c.Writer(), "first")
	fmt.Fprintln(c.Writer(), "second")
	if strings.Count(out.String(), divider) != 4 {
		t.Fatalf("expected two framed messages, got %q", out.String())
	}
}

func TestReadLineHonoursCancel(t *testing.T) {
	c := NewConsole(strings.NewReader("exit\n"), io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ReadLine(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReadLineLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	c := NewConsole(strings.NewReader("search expense "+long+"\r\nlist expenses"), io.Discard)
	ctx := context.Background()

	got, err := c.ReadLine(ctx)
	if err != nil || got != "search expense "+long {
		t.Fatalf("ReadLine() len = %d, %v", len(got), err)
	}
	// last line without a newline
	if got, err := c.ReadLine(ctx); err != nil || got != "list expenses" {
		t.Fatalf("ReadLine() = %q, %v", got, err)
	}
	if _, err := c.ReadLine(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

// flakyReader fails its first Read, then serves data.
type flakyReader struct {
	failed bool
	r      io.Reader
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if !f.failed {
		f.failed = true
		return 0, errors.New("device busy")
	}
	return f.r.Read(p)
}

func TestReadLineRecoversAfterError(t *testing.T) {
	c := NewConsole(&flakyReader{r: strings.NewReader("exit\n")}, io.Discard)
	ctx := context.Background()

	if _, err := c.ReadLine(ctx); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected a read error, got %v", err)
	}
	if got, err := c.ReadLine(ctx); err != nil || got != "exit" {
		t.Fatalf("ReadLine() after error = %q, %v", got, err)
	}
}
