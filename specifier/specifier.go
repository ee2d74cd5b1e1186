/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier turns command-line sources into something padfetch can
// load: an http(s) URL, an npm: or jsr: package file, or a local path.
package specifier

import (
	"regexp"
	"strings"
)

// Kind indicates the type of specifier.
type Kind int

const (
	// KindLocal is a local file path.
	KindLocal Kind = iota
	// KindURL is an http or https URL.
	KindURL
	// KindNPM is an npm package specifier.
	KindNPM
	// KindJSR is a jsr package specifier.
	KindJSR
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindNPM:
		return "npm"
	case KindJSR:
		return "jsr"
	default:
		return "local"
	}
}

// Specifier represents a parsed source specifier.
type Specifier struct {
	Kind Kind

	// Package is the package name, e.g. "@scope/pkg" or "pkg@1.2.3".
	// Empty for URLs and local paths.
	Package string

	// File is the file path within the package, or the path itself for
	// local specifiers.
	File string

	Raw string
}

var (
	// npmPattern matches npm:@scope/pkg/path, npm:pkg/path, or bare npm:pkg
	npmPattern = regexp.MustCompile(`^npm:(@[^/]+/[^/]+|[^/]+)(/.*)?$`)

	// jsrPattern matches jsr:@scope/pkg/path; jsr packages are always scoped
	jsrPattern = regexp.MustCompile(`^jsr:(@[^/]+/[^/]+)(/.*)?$`)
)

// Parse parses a specifier string. Anything that is not a URL or a
// well-formed package specifier is a local path.
func Parse(spec string) *Specifier {
	if IsURL(spec) {
		return &Specifier{Kind: KindURL, Raw: spec}
	}

	if m := npmPattern.FindStringSubmatch(spec); m != nil {
		return &Specifier{
			Kind:    KindNPM,
			Package: m[1],
			File:    strings.TrimPrefix(m[2], "/"),
			Raw:     spec,
		}
	}

	if m := jsrPattern.FindStringSubmatch(spec); m != nil {
		return &Specifier{
			Kind:    KindJSR,
			Package: m[1],
			File:    strings.TrimPrefix(m[2], "/"),
			Raw:     spec,
		}
	}

	return &Specifier{Kind: KindLocal, File: spec, Raw: spec}
}

// IsURL reports whether spec starts with an http or https scheme.
func IsURL(spec string) bool {
	lower := strings.ToLower(spec)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsPackageSpecifier returns true if the string is a valid npm or jsr specifier.
func IsPackageSpecifier(spec string) bool {
	k := Parse(spec).Kind
	return k == KindNPM || k == KindJSR
}
