/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/padfetch/load"
	"bennypowers.dev/padfetch/testutil"
)

func TestConfig_OptionsForURL(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/simple", "/project")
	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)

	t.Run("global settings apply to any url", func(t *testing.T) {
		opts, err := cfg.OptionsForURL("https://other.example.com/data.json")
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, opts.Timeout)
		assert.Equal(t, 5, opts.MaxRedirects)
		assert.Equal(t, "fixture-agent/1.0", opts.UserAgent)
		assert.False(t, opts.FailOnError)
		assert.Zero(t, opts.MaxSize)
	})

	t.Run("matching override wins", func(t *testing.T) {
		opts, err := cfg.OptionsForURL("https://api.example.com/v1/items?page=2")
		require.NoError(t, err)

		assert.Equal(t, 2*time.Second, opts.Timeout)
		assert.Equal(t, 0, opts.MaxRedirects, "an explicit zero is kept")
		assert.True(t, opts.FailOnError)
		assert.Equal(t, "fixture-agent/1.0", opts.UserAgent, "unset fields inherit")
	})

	t.Run("max size override", func(t *testing.T) {
		opts, err := cfg.OptionsForURL("https://big.example.com/dump.json")
		require.NoError(t, err)

		assert.Equal(t, int64(1048576), opts.MaxSize)
		assert.Equal(t, 30*time.Second, opts.Timeout)
	})

	t.Run("single star does not cross path segments", func(t *testing.T) {
		opts, err := cfg.OptionsForURL("https://plain.example.com/a/b")
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, opts.Timeout)
	})
}

func TestConfig_OptionsForURL_UnlimitedMaxSizeOverride(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte(`
maxSize: 1000
urls:
  - match: "https://dumps.example.com/**"
    maxSize: 0
`), &cfg)
	require.NoError(t, err)

	opts, err := cfg.OptionsForURL("https://dumps.example.com/all.json")
	require.NoError(t, err)
	assert.Zero(t, opts.MaxSize, "an explicit zero lifts the global limit")

	opts, err = cfg.OptionsForURL("https://other.example.com/a.json")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), opts.MaxSize)
}

func TestConfig_OptionsForURL_Defaults(t *testing.T) {
	opts, err := Default().OptionsForURL("https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, load.DefaultOptions(), opts)
}

func TestConfig_OptionsForURL_ZeroTimeout(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/jsonc", "/project")
	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)

	opts, err := cfg.OptionsForURL("https://slow.example.com/export")
	require.NoError(t, err)
	assert.Zero(t, opts.Timeout)

	opts, err = cfg.OptionsForURL("https://bare.example.com/x")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, opts.Timeout, "a bare pattern overrides nothing")
}

func TestConfig_OptionsForURL_BadTimeout(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/bad-timeout", "/project")
	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)

	_, err = cfg.OptionsForURL("https://example.com/")
	assert.ErrorContains(t, err, `invalid timeout "soon"`)
}

func TestURLSpec_Unmarshal(t *testing.T) {
	t.Run("yaml object", func(t *testing.T) {
		var spec URLSpec
		require.NoError(t, yaml.Unmarshal([]byte("match: https://a/**\nuserAgent: x\n"), &spec))
		assert.Equal(t, "https://a/**", spec.Match)
		assert.Equal(t, "x", spec.UserAgent)
	})

	t.Run("json string", func(t *testing.T) {
		var spec URLSpec
		require.NoError(t, sonic.Unmarshal([]byte(`"https://b/*"`), &spec))
		assert.Equal(t, "https://b/*", spec.Match)
	})

	t.Run("json object", func(t *testing.T) {
		var spec URLSpec
		require.NoError(t, sonic.Unmarshal([]byte(`{"match":"https://c/**","maxRedirects":3}`), &spec))
		assert.Equal(t, "https://c/**", spec.Match)
		require.NotNil(t, spec.MaxRedirects)
		assert.Equal(t, 3, *spec.MaxRedirects)
	})
}
