/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package padded

import (
	"errors"
	"slices"
)

// ErrTooLarge is returned by Builder.Write when a chunk would take the builder
// past its size limit.
var ErrTooLarge = errors.New("padded: content exceeds builder size limit")

// Builder accumulates bytes and produces a String once, via Convert.
// The zero value is an empty builder with no size limit.
type Builder struct {
	buf   []byte
	limit int64
}

// NewBuilder returns an empty builder with no size limit.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewBuilderWithLimit returns an empty builder that refuses to grow past limit
// bytes. A limit of zero or less means no limit.
func NewBuilderWithLimit(limit int64) *Builder {
	return &Builder{limit: limit}
}

// Append adds p to the builder. It returns false, leaving the builder
// unchanged, if the content would exceed the size limit.
func (b *Builder) Append(p []byte) bool {
	if len(p) == 0 {
		return true
	}
	if b.limit > 0 && int64(len(b.buf))+int64(len(p)) > b.limit {
		return false
	}
	b.grow(len(p))
	b.buf = append(b.buf, p...)
	return true
}

// Write implements io.Writer so a Builder can receive a transfer's body
// directly. An empty chunk consumes nothing and is not an error.
func (b *Builder) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !b.Append(p) {
		return 0, ErrTooLarge
	}
	return len(p), nil
}

// Len returns the number of bytes accumulated so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset discards the accumulated content.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Convert hands the accumulated content over to a new String and leaves the
// builder empty. The builder keeps room for the padding as it grows, so
// Convert normally does not copy.
func (b *Builder) Convert() *String {
	n := len(b.buf)
	b.grow(0)
	data := b.buf[:n+Padding]
	clear(data[n:])
	b.buf = nil
	return &String{data: data, n: n}
}

// grow makes room for n more bytes plus the trailing padding.
func (b *Builder) grow(n int) {
	b.buf = slices.Grow(b.buf, n+Padding)
}
