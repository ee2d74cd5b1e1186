/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package padded provides byte buffers with zeroed trailing padding, so that
// SIMD parsers reading in fixed-width blocks never run past the allocation.
package padded

import (
	"fmt"
	"math"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"

	"bennypowers.dev/padfetch/fs"
)

// Padding is the number of zero bytes kept after the logical end of a String.
const Padding = 64

// String is an immutable byte sequence backed by an allocation that is
// Padding bytes longer than its content.
type String struct {
	data []byte
	n    int
}

// New copies b into a new padded String.
func New(b []byte) *String {
	data := make([]byte, len(b)+Padding)
	copy(data, b)
	return &String{data: data, n: len(b)}
}

// FromString copies s into a new padded String.
func FromString(s string) *String {
	data := make([]byte, len(s)+Padding)
	copy(data, s)
	return &String{data: data, n: len(s)}
}

// ReadFile reads the named file into a padded String.
func ReadFile(filesystem fs.FileSystem, name string) (*String, error) {
	info, err := filesystem.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	b := NewBuilder()
	if n, ok := preallocSize(info.Size()); ok {
		b.grow(n)
	}

	content, err := filesystem.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	b.Append(content)

	return b.Convert(), nil
}

// preallocSize converts a size reported by Stat into a grow hint. Sizes that
// do not fit in an int alongside the padding are skipped.
func preallocSize(size int64) (int, bool) {
	if size <= 0 || uint64(size) > uint64(math.MaxInt-Padding) {
		return 0, false
	}
	return int(size), true
}

// Len returns the logical length.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return s.n
}

// Bytes returns the content without padding. The capacity is clipped so that
// appending to the result never writes into the padding.
func (s *String) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.data[:s.n:s.n]
}

// Padded returns the whole backing storage: the content followed by Padding
// zero bytes. Callers must not modify it.
func (s *String) Padded() []byte {
	if s == nil {
		return nil
	}
	return s.data
}

func (s *String) String() string {
	return string(s.Bytes())
}

// Valid reports whether the content is well-formed JSON.
func (s *String) Valid() bool {
	return sonic.Valid(s.Bytes())
}

// Unmarshal decodes the content as JSON into v.
func (s *String) Unmarshal(v any) error {
	return sonic.Unmarshal(s.Bytes(), v)
}

// Get looks up the JSON node at path without decoding the whole document.
func (s *String) Get(path ...any) (ast.Node, error) {
	return sonic.Get(s.Bytes(), path...)
}
