/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides the load command for padfetch.
package load

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/padfetch/cmd/settings"
	"bennypowers.dev/padfetch/fs"
	"bennypowers.dev/padfetch/internal/logger"
	loadlib "bennypowers.dev/padfetch/load"
	"bennypowers.dev/padfetch/padded"
	"bennypowers.dev/padfetch/specifier"
	"bennypowers.dev/padfetch/transport"
)

// Cmd is the load cobra command.
var Cmd = &cobra.Command{
	Use:   "load <source>",
	Short: "Load a URL into a padded buffer",
	Long: `Load the body of a URL into a padded buffer and write it out.

The source is an http(s) URL, an npm: or jsr: package specifier, or a local
path. Package files are read from node_modules when installed and fetched
from the CDN named by --cdn otherwise.

HTTP error responses are loaded like any other unless --fail is given.

Examples:
  # Print a JSON document
  padfetch load https://httpbin.org/json

  # Check that it parses, and pull one field out of it
  padfetch load --validate --get slideshow.title https://httpbin.org/json

  # Save to a file
  padfetch load -o data/slides.json https://httpbin.org/json

  # Load a file from an npm package
  padfetch load --cdn jsdelivr npm:@rhds/tokens/json/rhds.tokens.json

  # Read a local file into a padded buffer instead
  padfetch load --file slides.json --validate`,
	Args: cobra.RangeArgs(0, 1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().Bool("validate", false, "Fail unless the body is valid JSON")
	Cmd.Flags().String("get", "", "Print only the JSON value at this dot-separated path")
	Cmd.Flags().Bool(settings.KeyFail, false, "Fail on HTTP error statuses (400 and above)")
	Cmd.Flags().Bool("progress", false, "Log transfer progress (shown with --verbose)")
	Cmd.Flags().String("file", "", "Load a local file instead of a URL")

	_ = viper.BindPFlag(settings.KeyFail, Cmd.Flags().Lookup(settings.KeyFail))
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	validate, _ := cmd.Flags().GetBool("validate")
	getPath, _ := cmd.Flags().GetString("get")
	progress, _ := cmd.Flags().GetBool("progress")
	file, _ := cmd.Flags().GetString("file")

	filesystem := fs.NewOSFileSystem()

	var (
		buf    *padded.String
		source string
		err    error
	)

	switch {
	case file != "" && len(args) > 0:
		return fmt.Errorf("give either a URL or --file, not both")
	case file != "":
		source = file
		buf, err = padded.ReadFile(filesystem, file)
		if err != nil {
			return err
		}
	case len(args) == 1:
		source = args[0]
		buf, err = resolveAndLoad(cmd, filesystem, source, progress)
		if err != nil {
			return fmt.Errorf("loading %s: %w", source, err)
		}
	default:
		return fmt.Errorf("a URL or --file is required")
	}

	logger.Info("Loaded %d bytes from %s", buf.Len(), source)

	if validate && !buf.Valid() {
		return fmt.Errorf("%s: body is not valid JSON", source)
	}

	content := buf.Bytes()
	if getPath != "" {
		node, err := buf.Get(splitPath(getPath)...)
		if err != nil {
			return fmt.Errorf("%s: no value at %q: %w", source, getPath, err)
		}
		raw, err := node.Raw()
		if err != nil {
			return fmt.Errorf("%s: reading value at %q: %w", source, getPath, err)
		}
		content = []byte(raw + "\n")
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := filesystem.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", output, err)
		}
	}
	if err := filesystem.WriteFile(output, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

func resolveAndLoad(cmd *cobra.Command, filesystem fs.FileSystem, source string, progress bool) (*padded.String, error) {
	cdn, err := settings.CDN(viper.GetViper())
	if err != nil {
		return nil, err
	}
	resolver, err := specifier.NewDefaultResolver(filesystem, ".", cdn)
	if err != nil {
		return nil, err
	}
	loc, err := resolver.Resolve(source)
	if err != nil {
		return nil, err
	}

	if !loc.Remote() {
		logger.Debug("%s: reading %s", source, loc.Path)
		return padded.ReadFile(filesystem, loc.Path)
	}
	if loc.URL != source {
		logger.Debug("%s: fetching %s", source, loc.URL)
	}
	return fetch(cmd, filesystem, loc.URL, progress)
}

func fetch(cmd *cobra.Command, filesystem fs.FileSystem, url string, progress bool) (*padded.String, error) {
	opts, err := settings.Options(filesystem, ".", url)
	if err != nil {
		return nil, err
	}
	if progress {
		opts.Progress = func(written, total int64) {
			if total >= 0 {
				logger.Debug("%s: %d/%d bytes", url, written, total)
			} else {
				logger.Debug("%s: %d bytes", url, written)
			}
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Debug("GET %s (timeout %s, max redirects %d)", url, opts.Timeout, opts.MaxRedirects)
	return loadlib.New(transport.NewHTTP(), opts).URL(ctx, url)
}

// splitPath turns "a.b.0.c" into sonic path segments, treating all-digit
// segments as array indexes.
func splitPath(p string) []any {
	parts := strings.Split(p, ".")
	path := make([]any, 0, len(parts))
	for _, part := range parts {
		if i, err := strconv.Atoi(part); err == nil && i >= 0 {
			path = append(path, i)
			continue
		}
		path = append(path, part)
	}
	return path
}
