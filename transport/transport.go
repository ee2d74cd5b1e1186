/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package transport performs single HTTP(S) transfers through short-lived
// handles, pushing the response body into a caller-supplied writer.
package transport

import (
	"context"
	"errors"
	"io"
	"time"
)

// DefaultMaxRedirects is the redirect cap used when Request.MaxRedirects is nil.
const DefaultMaxRedirects = 30

// Redirects returns a redirect cap for Request.MaxRedirects.
func Redirects(n int) *int {
	return &n
}

// ErrHandleClosed is returned when a handle is used after Close.
var ErrHandleClosed = errors.New("transport: handle is closed")

// Transport hands out handles. An Open error means no transfer can be made.
type Transport interface {
	Open() (Handle, error)
}

// Handle performs one transfer and must be closed exactly once afterwards.
type Handle interface {
	// Perform runs the transfer synchronously, writing the body to req.Write.
	// Any failure is returned as *Error.
	Perform(ctx context.Context, req *Request) error

	// Close releases the handle's connections.
	Close() error
}

// Request describes a single GET transfer.
type Request struct {
	// URL is the absolute http or https URL to fetch.
	URL string

	// FollowLocation follows redirects. When false a redirect response is
	// itself the result of the transfer.
	FollowLocation bool

	// MaxRedirects caps the number of redirects followed. Nil means
	// DefaultMaxRedirects, zero refuses the first redirect with
	// TooManyRedirects, and a negative value means no cap.
	MaxRedirects *int

	// Timeout bounds the whole transfer. Zero means no timeout.
	Timeout time.Duration

	// NoProgress disables Progress even when it is set.
	NoProgress bool

	// Progress is called after each chunk with the bytes written so far and
	// the expected total, which is -1 when the server sends no length.
	Progress func(written, total int64)

	// FailOnError turns HTTP status codes of 400 and above into
	// HTTPReturnedError. By default they are ordinary responses.
	FailOnError bool

	// UserAgent is sent as the User-Agent header when not empty.
	UserAgent string

	// Write receives the body in chunks. A write error, or a short write,
	// aborts the transfer with WriteError. Nil discards the body.
	Write io.Writer
}

// sink forwards body chunks to the request's writer, remembering the first
// write failure so it can be told apart from network errors.
type sink struct {
	w        io.Writer
	err      error
	written  int64
	total    int64
	progress func(written, total int64)
}

func (s *sink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.err = err
		return n, err
	}
	s.written += int64(n)
	if s.progress != nil {
		s.progress(s.written, s.total)
	}
	return n, nil
}

func newSink(req *Request, total int64) *sink {
	s := &sink{w: req.Write, total: total}
	if s.w == nil {
		s.w = io.Discard
	}
	if !req.NoProgress {
		s.progress = req.Progress
	}
	return s
}
