/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transport

import "fmt"

// Code is the outcome of a transfer. The descriptions match the ones libcurl
// reports, so messages stay recognisable to anyone used to curl.
type Code int

const (
	OK Code = iota
	UnsupportedProtocol
	FailedInit
	URLMalformat
	CouldntResolveHost
	CouldntConnect
	HTTPReturnedError
	WriteError
	OperationTimedout
	SSLConnectError
	TooManyRedirects
	GotNothing
	PartialFile
	RecvError
	AbortedByCallback
)

var descriptions = map[Code]string{
	OK:                  "No error",
	UnsupportedProtocol: "Unsupported protocol",
	FailedInit:          "Failed initialization",
	URLMalformat:        "URL using bad/illegal format or missing URL",
	CouldntResolveHost:  "Couldn't resolve host name",
	CouldntConnect:      "Couldn't connect to server",
	HTTPReturnedError:   "HTTP response code said error",
	WriteError:          "Failed writing received data to disk/application",
	OperationTimedout:   "Timeout was reached",
	SSLConnectError:     "SSL connect error",
	TooManyRedirects:    "Number of redirects hit maximum amount",
	GotNothing:          "Server returned nothing (no headers, no data)",
	PartialFile:         "Transferred a partial file",
	RecvError:           "Failure when receiving data from the peer",
	AbortedByCallback:   "Operation was aborted by an application callback",
}

// String returns the human-readable description of c.
func (c Code) String() string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return fmt.Sprintf("Unknown error (%d)", int(c))
}

// Error reports a failed transfer. Its message is exactly the description of
// Code; the underlying Go error is kept for errors.Is and errors.As.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return e.Code.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
