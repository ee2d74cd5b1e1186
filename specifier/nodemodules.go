/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/padfetch/fs"
)

// NodeModulesResolver resolves npm: and jsr: specifiers to files installed
// under node_modules, walking up from rootDir.
//
// jsr packages installed through the npm compatibility layer live under the
// @jsr scope: jsr:@scope/pkg becomes node_modules/@jsr/scope__pkg.
type NodeModulesResolver struct {
	fs      fs.FileSystem
	rootDir string
}

// NewNodeModulesResolver creates a node_modules resolver. rootDir must be
// absolute so the walk works on in-memory filesystems too.
func NewNodeModulesResolver(filesystem fs.FileSystem, rootDir string) (*NodeModulesResolver, error) {
	if !filepath.IsAbs(rootDir) {
		return nil, fmt.Errorf("rootDir must be an absolute path, got: %s", rootDir)
	}
	return &NodeModulesResolver{fs: filesystem, rootDir: rootDir}, nil
}

func (r *NodeModulesResolver) Resolve(spec string) (*Location, error) {
	s := Parse(spec)

	var rel string
	switch s.Kind {
	case KindNPM:
		rel = filepath.Join(stripVersion(s.Package), s.File)
	case KindJSR:
		rel = filepath.Join("@jsr", jsrToNPMCompatPackage(stripVersion(s.Package)), s.File)
	default:
		return nil, fmt.Errorf("not a package specifier: %s", spec)
	}

	for dir := r.rootDir; ; {
		base := filepath.Join(dir, "node_modules")
		p := filepath.Clean(filepath.Join(base, rel))
		if !isInsideDir(p, base) {
			return nil, fmt.Errorf("path traversal detected in specifier: %s", spec)
		}
		if r.fs.Exists(p) {
			return &Location{Specifier: spec, Path: p, Kind: s.Kind}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, fmt.Errorf("package not found: %s (looked in node_modules starting from %s)", s.Package, r.rootDir)
}

func (r *NodeModulesResolver) CanResolve(spec string) bool {
	s := Parse(spec)
	return (s.Kind == KindNPM || s.Kind == KindJSR) && s.File != ""
}

// NewDefaultResolver resolves URLs as-is, package specifiers from
// node_modules with a fallback to cdn, and anything else as a local path.
func NewDefaultResolver(filesystem fs.FileSystem, rootDir string, cdn CDN) (Resolver, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
	}
	nm, err := NewNodeModulesResolver(filesystem, abs)
	if err != nil {
		return nil, err
	}
	return NewChainResolver(
		URLResolver{},
		nm,
		CDNResolver{CDN: cdn},
		LocalResolver{},
	), nil
}

// NewRemoteResolver resolves only to URLs: package specifiers always go
// through cdn.
func NewRemoteResolver(cdn CDN) Resolver {
	return NewChainResolver(URLResolver{}, CDNResolver{CDN: cdn})
}

// stripVersion drops a trailing @version from a package name, since
// node_modules directories are not versioned.
func stripVersion(pkg string) string {
	at := strings.LastIndex(pkg, "@")
	if at <= 0 {
		return pkg
	}
	return pkg[:at]
}

// jsrToNPMCompatPackage converts @scope/pkg to scope__pkg.
func jsrToNPMCompatPackage(pkg string) string {
	if scoped, ok := strings.CutPrefix(pkg, "@"); ok {
		return strings.Replace(scoped, "/", "__", 1)
	}
	return pkg
}

func isInsideDir(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
