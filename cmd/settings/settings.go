/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package settings merges the config file with flags and environment
// variables into load.Options for the CLI commands.
package settings

import (
	"fmt"

	"github.com/spf13/viper"

	"bennypowers.dev/padfetch/config"
	"bennypowers.dev/padfetch/fs"
	"bennypowers.dev/padfetch/load"
	"bennypowers.dev/padfetch/specifier"
)

// Viper keys shared by the root command's persistent flags and PADFETCH_*
// environment variables.
const (
	KeyTimeout      = "timeout"
	KeyMaxRedirects = "max-redirects"
	KeyUserAgent    = "user-agent"
	KeyMaxSize      = "max-size"
	KeyFail         = "fail"
	KeyCDN          = "cdn"
)

// Options resolves the load options for url. The config file in rootDir is
// applied first; flags and environment variables that were explicitly set
// take precedence.
func Options(filesystem fs.FileSystem, rootDir, url string) (load.Options, error) {
	cfg, err := config.Load(filesystem, rootDir)
	if err != nil {
		return load.Options{}, fmt.Errorf("loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	opts, err := cfg.OptionsForURL(url)
	if err != nil {
		return opts, err
	}

	return Override(viper.GetViper(), opts), nil
}

// Override applies the keys explicitly set in v on top of opts.
func Override(v *viper.Viper, opts load.Options) load.Options {
	if v.IsSet(KeyTimeout) {
		opts.Timeout = v.GetDuration(KeyTimeout)
	}
	if v.IsSet(KeyMaxRedirects) {
		opts.MaxRedirects = v.GetInt(KeyMaxRedirects)
	}
	if v.IsSet(KeyUserAgent) {
		opts.UserAgent = v.GetString(KeyUserAgent)
	}
	if v.IsSet(KeyMaxSize) {
		opts.MaxSize = v.GetInt64(KeyMaxSize)
	}
	if v.IsSet(KeyFail) {
		opts.FailOnError = v.GetBool(KeyFail)
	}
	return opts
}

// CDN returns the CDN named by the cdn flag or PADFETCH_CDN, defaulting to
// unpkg.
func CDN(v *viper.Viper) (specifier.CDN, error) {
	name := v.GetString(KeyCDN)
	if name == "" {
		return specifier.CDNUnpkg, nil
	}
	return specifier.ParseCDN(name)
}
