package habr

import (
	"errors"
	"iter"
	"strings"
	"unicode"
)

// ErrExhausted is returned by the Reader when there are no more lines.
// It is different from reading an empty line, which is a valid line.
var ErrExhausted = errors.New("no more lines")

// Reader is a cursor over the lines of a document.
// The lines are never modified; the only state is the index of the current line,
// shared by all the block parsers that read from the same Reader.
type Reader struct {
	lines []string
	index int
}

// NewReader splits content in lines, stripping trailing whitespace from each one.
func NewReader(content string) *Reader {
	rawLines := strings.Split(content, "\n")

	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}

	return &Reader{lines: lines}
}

// AtEOF returns true if all lines were consumed
func (r *Reader) AtEOF() bool {
	return r.index >= len(r.lines)
}

// LineNumber is the 1-based number of the line at the cursor
func (r *Reader) LineNumber() int {
	return r.index + 1
}

// Peek returns the current line without advancing the cursor
func (r *Reader) Peek() (string, error) {
	if r.AtEOF() {
		return "", ErrExhausted
	}
	return r.lines[r.index], nil
}

// Next returns the current line and advances the cursor
func (r *Reader) Next() (string, error) {
	if r.AtEOF() {
		return "", ErrExhausted
	}
	line := r.lines[r.index]
	r.index++
	return line, nil
}

// Lines returns a sequence consuming lines until the Reader is exhausted.
// Breaking out of the loop leaves the cursor after the last line yielded,
// so the line which made the caller stop is consumed.
func (r *Reader) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := r.Next()
			if err != nil {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}
