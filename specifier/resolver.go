/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"errors"
	"fmt"
)

// Location is where a specifier's bytes live. Exactly one of Path and URL
// is set.
type Location struct {
	// Specifier is the original specifier, e.g. "npm:@rhds/tokens/tokens.json".
	Specifier string

	// Path is a filesystem path to read.
	Path string

	// URL is a remote address to fetch.
	URL string

	Kind Kind
}

// Remote reports whether the location must be fetched over the network.
func (l *Location) Remote() bool {
	return l.URL != ""
}

// Resolver resolves specifiers to locations.
type Resolver interface {
	// Resolve resolves a specifier to a Location.
	// Returns an error if resolution fails.
	Resolve(spec string) (*Location, error)

	// CanResolve returns true if this resolver can handle the given specifier.
	CanResolve(spec string) bool
}

// ChainResolver tries multiple resolvers in order.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver creates a resolver that tries each resolver in order.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

// Resolve returns the first successful resolution among the resolvers that
// can handle spec, so an installed package wins over a CDN fallback.
func (c *ChainResolver) Resolve(spec string) (*Location, error) {
	var errs []error
	for _, r := range c.resolvers {
		if !r.CanResolve(spec) {
			continue
		}
		loc, err := r.Resolve(spec)
		if err == nil {
			return loc, nil
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, fmt.Errorf("no resolver found for specifier: %s", spec)
}

// CanResolve returns true if any resolver can handle the specifier.
func (c *ChainResolver) CanResolve(spec string) bool {
	for _, r := range c.resolvers {
		if r.CanResolve(spec) {
			return true
		}
	}
	return false
}

// URLResolver passes http and https URLs through unchanged.
type URLResolver struct{}

func (URLResolver) Resolve(spec string) (*Location, error) {
	if !IsURL(spec) {
		return nil, fmt.Errorf("not a URL: %s", spec)
	}
	return &Location{Specifier: spec, URL: spec, Kind: KindURL}, nil
}

func (URLResolver) CanResolve(spec string) bool {
	return IsURL(spec)
}

// LocalResolver handles local filesystem paths.
type LocalResolver struct{}

func (LocalResolver) Resolve(spec string) (*Location, error) {
	return &Location{Specifier: spec, Path: spec, Kind: KindLocal}, nil
}

func (LocalResolver) CanResolve(spec string) bool {
	return Parse(spec).Kind == KindLocal
}

// CDNResolver maps package specifiers to CDN URLs.
type CDNResolver struct {
	CDN CDN
}

func (r CDNResolver) Resolve(spec string) (*Location, error) {
	url, ok := CDNURL(spec, r.CDN)
	if !ok {
		return nil, fmt.Errorf("%s: not available from %s", spec, r.name())
	}
	return &Location{Specifier: spec, URL: url, Kind: Parse(spec).Kind}, nil
}

func (r CDNResolver) CanResolve(spec string) bool {
	return IsPackageSpecifier(spec)
}

func (r CDNResolver) name() string {
	if r.CDN == "" {
		return string(CDNUnpkg)
	}
	return string(r.CDN)
}
