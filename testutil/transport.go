/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package testutil

import (
	"context"
	"io"

	"bennypowers.dev/padfetch/transport"
)

// FakeTransport is a transport.Transport that never touches the network.
// Each Perform pushes Chunks into the request's writer, then returns Err.
// The counters record how the handle lifecycle was driven.
type FakeTransport struct {
	OpenErr error
	Chunks  [][]byte
	Err     error

	Opens    int
	Performs int
	Closes   int
	Requests []transport.Request
}

func (f *FakeTransport) Open() (transport.Handle, error) {
	f.Opens++
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return &fakeHandle{f: f}, nil
}

type fakeHandle struct {
	f *FakeTransport
}

func (h *fakeHandle) Perform(_ context.Context, req *transport.Request) error {
	h.f.Performs++
	h.f.Requests = append(h.f.Requests, *req)

	w := req.Write
	if w == nil {
		w = io.Discard
	}
	for _, chunk := range h.f.Chunks {
		n, err := w.Write(chunk)
		if err == nil && n != len(chunk) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return &transport.Error{Code: transport.WriteError, Err: err}
		}
	}
	return h.f.Err
}

func (h *fakeHandle) Close() error {
	h.f.Closes++
	return nil
}
