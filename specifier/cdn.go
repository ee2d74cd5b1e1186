/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"strings"
)

// CDN names a package CDN that serves npm (and sometimes jsr) files over HTTP.
type CDN string

const (
	CDNUnpkg    CDN = "unpkg"
	CDNEsmSh    CDN = "esm.sh"
	CDNJsdelivr CDN = "jsdelivr"
)

var validCDNs = []CDN{CDNUnpkg, CDNEsmSh, CDNJsdelivr}

// ValidCDNs returns the supported CDN names.
func ValidCDNs() []CDN {
	return append([]CDN(nil), validCDNs...)
}

// ParseCDN validates a CDN name.
func ParseCDN(s string) (CDN, error) {
	for _, c := range validCDNs {
		if string(c) == s {
			return c, nil
		}
	}
	names := make([]string, len(validCDNs))
	for i, c := range validCDNs {
		names[i] = string(c)
	}
	return "", fmt.Errorf("unknown CDN %q (valid: %s)", s, strings.Join(names, ", "))
}

// CDNURL returns the URL serving a package specifier's file on cdn. The zero
// CDN means unpkg. Returns ("", false) for URLs, local paths, specifiers
// without a file component, and jsr packages on CDNs that do not serve them.
func CDNURL(spec string, cdn CDN) (string, bool) {
	s := Parse(spec)
	if s.Package == "" || s.File == "" {
		return "", false
	}

	switch cdn {
	case "", CDNUnpkg:
		if s.Kind == KindNPM {
			return "https://unpkg.com/" + s.Package + "/" + s.File, true
		}
	case CDNEsmSh:
		switch s.Kind {
		case KindNPM:
			return "https://esm.sh/" + s.Package + "/" + s.File, true
		case KindJSR:
			return "https://esm.sh/jsr/" + s.Package + "/" + s.File, true
		}
	case CDNJsdelivr:
		if s.Kind == KindNPM {
			return "https://cdn.jsdelivr.net/npm/" + s.Package + "/" + s.File, true
		}
	}
	return "", false
}
