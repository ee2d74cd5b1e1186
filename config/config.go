/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config loads padfetch's optional project configuration.
package config

import (
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/padfetch/load"
)

// Settings are the transfer options that can be set globally or per URL.
// Unset fields leave the inherited value alone.
type Settings struct {
	// Timeout is a Go duration string, e.g. "15s". "0" disables the timeout.
	Timeout string `yaml:"timeout" json:"timeout"`

	MaxRedirects *int   `yaml:"maxRedirects" json:"maxRedirects"`
	UserAgent    string `yaml:"userAgent" json:"userAgent"`

	// MaxSize is the largest body, in bytes, a load will buffer. An explicit
	// 0 removes an inherited limit.
	MaxSize     *int64 `yaml:"maxSize" json:"maxSize"`
	FailOnError *bool  `yaml:"failOnError" json:"failOnError"`
}

// Config represents the padfetch configuration file.
type Config struct {
	Settings `yaml:",inline"`

	// URLs holds per-URL overrides. The first matching entry wins.
	URLs []URLSpec `yaml:"urls" json:"urls"`
}

// URLSpec overrides Settings for URLs matching a doublestar pattern.
// It can be written as a bare pattern string or as an object.
type URLSpec struct {
	// Match is a doublestar glob matched against the whole URL,
	// e.g. "https://api.example.com/**".
	Match string `yaml:"match" json:"match"`

	Settings `yaml:",inline"`
}

// UnmarshalYAML handles both string and object forms for URLSpec.
func (u *URLSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		u.Match = node.Value
		return nil
	}

	type rawURLSpec URLSpec
	return node.Decode((*rawURLSpec)(u))
}

// UnmarshalJSON handles both string and object forms for URLSpec.
func (u *URLSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := sonic.Unmarshal(data, &s); err == nil {
		u.Match = s
		return nil
	}

	type rawURLSpec URLSpec
	return sonic.Unmarshal(data, (*rawURLSpec)(u))
}

// Default returns an empty config, which yields load.DefaultOptions.
func Default() *Config {
	return &Config{}
}

// OptionsForURL returns load options for url: defaults, then the global
// settings, then the first URL override whose pattern matches.
func (c *Config) OptionsForURL(url string) (load.Options, error) {
	opts := load.DefaultOptions()

	if err := c.Settings.apply(&opts); err != nil {
		return opts, err
	}

	for _, spec := range c.URLs {
		matched, err := doublestar.Match(spec.Match, url)
		if err != nil {
			return opts, fmt.Errorf("invalid url pattern %q: %w", spec.Match, err)
		}
		if matched {
			if err := spec.Settings.apply(&opts); err != nil {
				return opts, fmt.Errorf("url override %q: %w", spec.Match, err)
			}
			break
		}
	}

	return opts, nil
}

func (s *Settings) apply(opts *load.Options) error {
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
		}
		opts.Timeout = d
	}
	if s.MaxRedirects != nil {
		opts.MaxRedirects = *s.MaxRedirects
	}
	if s.UserAgent != "" {
		opts.UserAgent = s.UserAgent
	}
	if s.MaxSize != nil {
		opts.MaxSize = *s.MaxSize
	}
	if s.FailOnError != nil {
		opts.FailOnError = *s.FailOnError
	}
	return nil
}
