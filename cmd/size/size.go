/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package size provides the size command for padfetch.
package size

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/padfetch/cmd/settings"
	"bennypowers.dev/padfetch/fs"
	"bennypowers.dev/padfetch/internal/logger"
	"bennypowers.dev/padfetch/load"
	"bennypowers.dev/padfetch/specifier"
	"bennypowers.dev/padfetch/transport"
)

// Cmd is the size cobra command.
var Cmd = &cobra.Command{
	Use:   "size <source>",
	Short: "Print the number of body bytes a GET of the URL returns",
	Long: `Download the URL, counting body bytes without storing them, and print
the total. The count reflects what was actually received, not the
Content-Length header. npm: and jsr: specifiers are fetched from the CDN
named by --cdn.

A failed request prints 0, the same as an empty body. Only the context of
the command bounds the transfer; --timeout does not apply.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// Result is the JSON form of the size command's output.
type Result struct {
	URL   string `json:"url"`
	Bytes uint64 `json:"bytes"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cdn, err := settings.CDN(viper.GetViper())
	if err != nil {
		return err
	}
	loc, err := specifier.NewRemoteResolver(cdn).Resolve(args[0])
	if err != nil {
		return err
	}
	url := loc.URL

	opts, err := settings.Options(fs.NewOSFileSystem(), ".", url)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	n := load.New(transport.NewHTTP(), opts).ActualPayloadSize(ctx, url)
	if n == 0 {
		logger.Debug("%s: 0 bytes; the body is empty or the request failed", url)
	}

	return write(cmd, format, Result{URL: url, Bytes: n})
}

func write(cmd *cobra.Command, format string, r Result) error {
	switch format {
	case "json":
		out, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), r.Bytes)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
