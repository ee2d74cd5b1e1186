/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load fetches URLs into padded buffers ready for SIMD JSON parsing.
package load

import (
	"context"
	"errors"
	"time"

	"bennypowers.dev/padfetch/internal/version"
	"bennypowers.dev/padfetch/padded"
	"bennypowers.dev/padfetch/transport"
)

const (
	// DefaultTimeout is the maximum time URL waits for a whole transfer.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRedirects is the number of redirects URL will follow.
	DefaultMaxRedirects = 10
)

// ErrInit is returned by URL when no transport handle could be obtained.
// The message is kept for compatibility with existing callers.
//
//nolint:staticcheck // capitalised message is part of the contract
var ErrInit = errors.New("Failed to initialize curl")

// Options configures a Loader.
type Options struct {
	// Timeout bounds each load. Zero means no timeout.
	Timeout time.Duration

	// MaxRedirects caps redirects followed by a load. Zero allows none and a
	// negative value means no cap.
	MaxRedirects int

	// UserAgent is sent with every request.
	UserAgent string

	// MaxSize limits the bytes a load will buffer. Zero means no limit.
	// Exceeding it aborts the transfer with transport.WriteError.
	MaxSize int64

	// FailOnError makes HTTP error statuses fail the load.
	FailOnError bool

	// Progress, when set, is called as body chunks arrive during a load.
	Progress func(written, total int64)
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{
		Timeout:      DefaultTimeout,
		MaxRedirects: DefaultMaxRedirects,
		UserAgent:    "padfetch/" + version.Get(),
	}
}

// Loader runs size probes and loads over a Transport.
type Loader struct {
	transport transport.Transport
	opts      Options
}

// New creates a Loader that obtains a fresh handle from t for every call.
func New(t transport.Transport, opts Options) *Loader {
	return &Loader{transport: t, opts: opts}
}

// ActualPayloadSize performs a full GET of url and returns the number of body
// bytes received, without keeping them. It returns 0 if no handle could be
// obtained or the transfer failed, so an empty body and a failure look the
// same. No timeout is applied beyond ctx.
func (l *Loader) ActualPayloadSize(ctx context.Context, url string) uint64 {
	h, err := l.transport.Open()
	if err != nil {
		return 0
	}
	defer func() { _ = h.Close() }()

	var total byteCounter
	err = h.Perform(ctx, &transport.Request{
		URL:            url,
		FollowLocation: true,
		UserAgent:      l.opts.UserAgent,
		Write:          &total,
	})
	if err != nil {
		return 0
	}
	return uint64(total)
}

// URL fetches url into a padded String. It returns ErrInit if no handle could
// be obtained, or the transport's *transport.Error if the transfer failed; in
// both cases any partially received content is dropped.
func (l *Loader) URL(ctx context.Context, url string) (*padded.String, error) {
	builder := padded.NewBuilderWithLimit(l.opts.MaxSize)

	h, err := l.transport.Open()
	if err != nil {
		return nil, ErrInit
	}
	defer func() { _ = h.Close() }()

	err = h.Perform(ctx, &transport.Request{
		URL:            url,
		FollowLocation: true,
		NoProgress:     l.opts.Progress == nil,
		Progress:       l.opts.Progress,
		MaxRedirects:   transport.Redirects(l.opts.MaxRedirects),
		Timeout:        l.opts.Timeout,
		FailOnError:    l.opts.FailOnError,
		UserAgent:      l.opts.UserAgent,
		Write:          builder,
	})
	if err != nil {
		return nil, err
	}

	return builder.Convert(), nil
}

// byteCounter tallies body bytes without storing them.
type byteCounter uint64

func (c *byteCounter) Write(p []byte) (int, error) {
	*c += byteCounter(len(p))
	return len(p), nil
}

var defaultLoader = New(transport.NewHTTP(), DefaultOptions())

// ActualPayloadSize calls Loader.ActualPayloadSize on a default loader.
func ActualPayloadSize(ctx context.Context, url string) uint64 {
	return defaultLoader.ActualPayloadSize(ctx, url)
}

// URL calls Loader.URL on a default loader with DefaultOptions.
func URL(ctx context.Context, url string) (*padded.String, error) {
	return defaultLoader.URL(ctx, url)
}
