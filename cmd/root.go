/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for padfetch.
package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	loadcmd "bennypowers.dev/padfetch/cmd/load"
	"bennypowers.dev/padfetch/cmd/settings"
	"bennypowers.dev/padfetch/cmd/size"
	"bennypowers.dev/padfetch/cmd/version"
	"bennypowers.dev/padfetch/internal/logger"
	"bennypowers.dev/padfetch/load"
	"bennypowers.dev/padfetch/specifier"
)

var rootCmd = &cobra.Command{
	Use:   "padfetch",
	Short: "Fetch URLs into padded buffers",
	Long: `padfetch fetches the body of an HTTP(S) URL into a buffer with zeroed
trailing padding, ready for SIMD JSON parsing. Sources may also be npm: or
jsr: package specifiers, served from node_modules or a CDN.

Settings are read from .config/padfetch.{yaml,yml,json}, then from
PADFETCH_* environment variables (a .env file is loaded if present), then
from flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Interrupts cancel the in-flight transfer.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Duration(settings.KeyTimeout, load.DefaultTimeout, "Overall timeout for load")
	pf.Int(settings.KeyMaxRedirects, load.DefaultMaxRedirects, "Maximum redirects followed by load (0 = none, -1 = no limit)")
	pf.String(settings.KeyUserAgent, "", "User-Agent header (default padfetch/<version>)")
	pf.Int64(settings.KeyMaxSize, 0, "Largest body load will buffer, in bytes (0 = no limit)")
	pf.String(settings.KeyCDN, string(specifier.CDNUnpkg), "CDN serving npm: and jsr: specifiers (unpkg, esm.sh, jsdelivr)")
	pf.BoolP("verbose", "v", false, "Print debug output")
	pf.BoolP("quiet", "q", false, "Suppress all log output")

	_ = viper.BindPFlags(pf)
	viper.SetEnvPrefix("PADFETCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(size.Cmd)
	rootCmd.AddCommand(loadcmd.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not load .env: %v", err)
	}

	if viper.GetBool("quiet") {
		logger.SetOutput(io.Discard)
	}
	logger.SetVerbose(viper.GetBool("verbose"))
	return nil
}
