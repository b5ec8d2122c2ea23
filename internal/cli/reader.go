package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because its context ended.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// LineReader reads lines from an input that may block, such as a terminal.
// A single goroutine owns the underlying reader and hands lines over a channel,
// so a cancelled read never loses the line that arrives after it.
type LineReader struct {
	src   *bufio.Reader
	lines chan line
	once  sync.Once
}

// NewLineReader wraps src. It panics on a nil reader.
func NewLineReader(src io.Reader) *LineReader {
	if src == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{
		src:   bufio.NewReader(src),
		lines: make(chan line),
	}
}

func (r *LineReader) pump() {
	for {
		text, err := r.src.ReadString('\n')
		if errors.Is(err, io.EOF) && text != "" {
			r.lines <- line{text: text}
			continue
		}
		r.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// ReadLine returns the next line with surrounding whitespace removed.
// Once input is exhausted every call returns io.EOF.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.once.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			close(r.lines)
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}
