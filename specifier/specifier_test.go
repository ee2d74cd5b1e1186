/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		kind Kind
		pkg  string
		file string
	}{
		{"https://httpbin.org/json", KindURL, "", ""},
		{"HTTP://example.com/", KindURL, "", ""},
		{"npm:@rhds/tokens/json/rhds.tokens.json", KindNPM, "@rhds/tokens", "json/rhds.tokens.json"},
		{"npm:some-pkg/data.json", KindNPM, "some-pkg", "data.json"},
		{"npm:some-pkg", KindNPM, "some-pkg", ""},
		{"jsr:@std/data/mod.json", KindJSR, "@std/data", "mod.json"},
		{"jsr:unscoped/mod.json", KindLocal, "", "jsr:unscoped/mod.json"},
		{"./local.json", KindLocal, "", "./local.json"},
		{"ftp://example.com/x", KindLocal, "", "ftp://example.com/x"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			s := Parse(tt.spec)
			if s.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", s.Kind, tt.kind)
			}
			if s.Package != tt.pkg {
				t.Errorf("Package = %q, want %q", s.Package, tt.pkg)
			}
			if s.File != tt.file {
				t.Errorf("File = %q, want %q", s.File, tt.file)
			}
			if s.Raw != tt.spec {
				t.Errorf("Raw = %q, want %q", s.Raw, tt.spec)
			}
		})
	}
}

func TestIsPackageSpecifier(t *testing.T) {
	if !IsPackageSpecifier("npm:pkg/file.json") {
		t.Error("expected npm specifier")
	}
	if IsPackageSpecifier("https://unpkg.com/pkg/file.json") {
		t.Error("URLs are not package specifiers")
	}
}

func TestCDNURL(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		cdn     CDN
		wantURL string
		wantOK  bool
	}{
		{"zero value is unpkg", "npm:@scope/pkg/a.json", "", "https://unpkg.com/@scope/pkg/a.json", true},
		{"unpkg versioned", "npm:@scope/pkg@1.2.3/a.json", CDNUnpkg, "https://unpkg.com/@scope/pkg@1.2.3/a.json", true},
		{"unpkg jsr", "jsr:@scope/pkg/a.json", CDNUnpkg, "", false},
		{"esm.sh npm", "npm:pkg/a/b.json", CDNEsmSh, "https://esm.sh/pkg/a/b.json", true},
		{"esm.sh jsr", "jsr:@std/data/mod.json", CDNEsmSh, "https://esm.sh/jsr/@std/data/mod.json", true},
		{"jsdelivr npm", "npm:pkg/a.json", CDNJsdelivr, "https://cdn.jsdelivr.net/npm/pkg/a.json", true},
		{"no file", "npm:pkg", CDNUnpkg, "", false},
		{"local", "./a.json", CDNUnpkg, "", false},
		{"url", "https://example.com/a.json", CDNUnpkg, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotOK := CDNURL(tt.spec, tt.cdn)
			if gotOK != tt.wantOK || gotURL != tt.wantURL {
				t.Errorf("CDNURL(%q, %q) = (%q, %v), want (%q, %v)",
					tt.spec, tt.cdn, gotURL, gotOK, tt.wantURL, tt.wantOK)
			}
		})
	}
}

func TestParseCDN(t *testing.T) {
	for _, c := range ValidCDNs() {
		got, err := ParseCDN(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCDN(%q) = (%q, %v)", c, got, err)
		}
	}
	if _, err := ParseCDN("cloudflare"); err == nil {
		t.Error("expected error for unknown CDN")
	}
}
