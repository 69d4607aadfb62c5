// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit extends the functionalities of rsc.io/edit to
// implement buffered editing of byte slices.
// All the edits of a pass are queued against the original data and applied
// with a single allocation, so replacement text is never scanned again.
package sliceedit

import (
	"regexp"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	b := &Buffer{}
	b.buf = buf
	b.ed = *edit.NewBuffer(buf)
	return b
}

// Replace replaces the bytes in [start, end) of the original data with new.
// Queued edits must not overlap.
func (b *Buffer) Replace(start, end int, new string) {
	b.ed.Replace(start, end, new)
}

// ReplaceAllFunc queues a replacement for every non-overlapping match of re
// in the original data, scanning left to right. The function receives the
// submatches of each match (index 0 is the whole match) and returns the
// replacement text. The first error returned by fn stops the scan and is
// returned; edits queued so far stay in the buffer.
func (b *Buffer) ReplaceAllFunc(re *regexp.Regexp, fn func(groups []string) (string, error)) (int, error) {
	matches := re.FindAllSubmatchIndex(b.buf, -1)
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = string(b.buf[m[2*i]:m[2*i+1]])
			}
		}
		repl, err := fn(groups)
		if err != nil {
			return 0, err
		}
		b.ed.Replace(m[0], m[1], repl)
	}
	return len(matches), nil
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return string(b.ed.Bytes())
}
