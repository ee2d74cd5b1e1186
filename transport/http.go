/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

var (
	errNoTransport       = errors.New("transport: no base http.Transport available")
	errTooManyRedirects  = errors.New("transport: too many redirects")
	errHTTPReturnedError = errors.New("transport: server returned an error status")
)

// HTTP is a Transport backed by net/http. Every handle gets its own clone of
// the base http.Transport, so connections are never shared between transfers.
type HTTP struct {
	base *http.Transport
}

// NewHTTP returns an HTTP transport cloned from http.DefaultTransport.
func NewHTTP() *HTTP {
	base, _ := http.DefaultTransport.(*http.Transport)
	return &HTTP{base: base}
}

// NewHTTPWithTransport returns an HTTP transport whose handles clone base.
func NewHTTPWithTransport(base *http.Transport) *HTTP {
	return &HTTP{base: base}
}

// Open returns a fresh handle. It fails when there is no base transport to
// clone, which happens if http.DefaultTransport has been replaced.
func (h *HTTP) Open() (Handle, error) {
	if h == nil || h.base == nil {
		return nil, errNoTransport
	}
	return &httpHandle{rt: h.base.Clone()}, nil
}

type httpHandle struct {
	rt     *http.Transport
	closed bool
}

func (h *httpHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.rt.CloseIdleConnections()
	return nil
}

func (h *httpHandle) Perform(ctx context.Context, req *Request) error {
	if h.closed {
		return &Error{Code: FailedInit, Err: ErrHandleClosed}
	}

	if code, err := checkURL(req.URL); err != nil {
		return &Error{Code: code, Err: err}
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return &Error{Code: URLMalformat, Err: err}
	}
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}

	client := &http.Client{
		Transport:     h.rt,
		CheckRedirect: redirectPolicy(req),
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return &Error{Code: classify(err, nil), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if req.FailOnError && resp.StatusCode >= http.StatusBadRequest {
		return &Error{Code: HTTPReturnedError, Err: errHTTPReturnedError}
	}

	s := newSink(req, resp.ContentLength)
	if _, err := io.Copy(s, resp.Body); err != nil {
		return &Error{Code: classify(err, s), Err: err}
	}

	return nil
}

func redirectPolicy(req *Request) func(*http.Request, []*http.Request) error {
	limit := DefaultMaxRedirects
	if req.MaxRedirects != nil {
		limit = *req.MaxRedirects
	}
	return func(_ *http.Request, via []*http.Request) error {
		if !req.FollowLocation {
			return http.ErrUseLastResponse
		}
		if limit >= 0 && len(via) > limit {
			return errTooManyRedirects
		}
		return nil
	}
}

func checkURL(raw string) (Code, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URLMalformat, err
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return URLMalformat, errors.New("transport: missing URL scheme")
	default:
		return UnsupportedProtocol, errors.New("transport: unsupported protocol " + u.Scheme)
	}
	if u.Host == "" {
		return URLMalformat, errors.New("transport: missing host in URL")
	}
	return OK, nil
}

// classify maps a Go error from net/http onto a Code. s is the body sink, or
// nil if the failure happened before the body was read.
func classify(err error, s *sink) Code {
	if s != nil && s.err != nil && errors.Is(err, s.err) {
		return WriteError
	}

	switch {
	case errors.Is(err, errTooManyRedirects):
		return TooManyRedirects
	case errors.Is(err, context.DeadlineExceeded):
		return OperationTimedout
	case errors.Is(err, context.Canceled):
		return AbortedByCallback
	case errors.Is(err, io.ErrUnexpectedEOF):
		return PartialFile
	case errors.Is(err, io.EOF):
		return GotNothing
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CouldntResolveHost
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return OperationTimedout
	}

	var certErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	var authorityErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &recordErr) ||
		errors.As(err, &authorityErr) || errors.As(err, &hostnameErr) {
		return SSLConnectError
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return CouldntConnect
	}

	return RecvError
}
