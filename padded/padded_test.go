/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package padded

import (
	iofs "io/fs"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/padfetch/fs"
	"bennypowers.dev/padfetch/internal/mapfs"
	"bennypowers.dev/padfetch/testutil"
)

func TestNew_CopiesInput(t *testing.T) {
	in := []byte("abc")
	s := New(in)
	in[0] = 'z'

	assert.Equal(t, "abc", s.String())
	assert.Len(t, s.Padded(), 3+Padding)
}

func TestFromString(t *testing.T) {
	s := FromString(`{"a":1}`)

	assert.Equal(t, 7, s.Len())
	assert.Equal(t, make([]byte, Padding), s.Padded()[7:])
}

func TestString_BytesCannotReachPadding(t *testing.T) {
	s := FromString("abc")

	b := s.Bytes()
	assert.Equal(t, 3, cap(b))

	_ = append(b, 'x')
	assert.Equal(t, byte(0), s.Padded()[3], "appending to Bytes must not write into the padding")
}

func TestString_Nil(t *testing.T) {
	var s *String

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Bytes())
	assert.Nil(t, s.Padded())
}

func TestString_JSON(t *testing.T) {
	s := New(testutil.LoadFixtureFile(t, "fixtures/httpbin/json.json"))

	assert.True(t, s.Valid())
	assert.False(t, FromString(`{"slideshow":`).Valid())

	var doc struct {
		Slideshow struct {
			Title  string `json:"title"`
			Slides []struct {
				Title string `json:"title"`
			} `json:"slides"`
		} `json:"slideshow"`
	}
	require.NoError(t, s.Unmarshal(&doc))
	assert.Equal(t, "Sample Slide Show", doc.Slideshow.Title)
	assert.Len(t, doc.Slideshow.Slides, 2)

	node, err := s.Get("slideshow", "slides", 1, "title")
	require.NoError(t, err)
	title, err := node.String()
	require.NoError(t, err)
	assert.Equal(t, "Overview", title)
}

func TestReadFile(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/httpbin", "/data")
	want := testutil.LoadFixtureFile(t, "fixtures/httpbin/json.json")

	s, err := ReadFile(mfs, "/data/json.json")
	require.NoError(t, err)

	assert.Equal(t, want, s.Bytes())
	assert.Len(t, s.Padded(), len(want)+Padding)
	assert.True(t, s.Valid())
}

func TestReadFile_Missing(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/httpbin", "/data")

	_, err := ReadFile(mfs, "/data/nope.json")
	assert.Error(t, err)
}

func TestPreallocSize(t *testing.T) {
	tests := []struct {
		size int64
		want int
		ok   bool
	}{
		{0, 0, false},
		{-1, 0, false},
		{1024, 1024, true},
		{math.MaxInt64, 0, false},
	}
	for _, tt := range tests {
		n, ok := preallocSize(tt.size)
		assert.Equal(t, tt.ok, ok, "size %d", tt.size)
		assert.Equal(t, tt.want, n, "size %d", tt.size)
	}
}

// lyingStatFS reports an impossible size for every file.
type lyingStatFS struct {
	fs.FileSystem
}

func (l lyingStatFS) Stat(name string) (iofs.FileInfo, error) {
	info, err := l.FileSystem.Stat(name)
	if err != nil {
		return nil, err
	}
	return hugeInfo{info}, nil
}

type hugeInfo struct {
	iofs.FileInfo
}

func (hugeInfo) Size() int64 { return math.MaxInt64 }

func TestReadFile_OversizedStat(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/data/small.json", `{"ok":true}`, 0644)

	s, err := ReadFile(lyingStatFS{mfs}, "/data/small.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, s.String())
	assert.True(t, s.Valid())
}
