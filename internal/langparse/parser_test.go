// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package langparse

import "testing"

func TestTypeForURL(t *testing.T) {
	cases := map[string]string{
		"index.html":       "html",
		"index.htm":        "html",
		"app.js":           "js",
		"app.mjs":          "js",
		"app.ts":           "typescript",
		"styles.css":       "css",
		"package.json":     "json",
		"weird.xyz":        "js",
		"index.html#js-0":  "js",
		"index.html#css-1": "css",
		"index.html#section": "html",
		"app.js?v=1":       "js",
	}
	for url, want := range cases {
		if got := TypeForURL(url); got != want {
			t.Errorf("TypeForURL(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestRegistry_RegisterAndParse(t *testing.T) {
	r := NewRegistry()
	r.Register("json", JSONParser{})

	doc, err := r.Parse("json", "a.json", []byte(`{"a":1}`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.URL() != "a.json" {
		t.Errorf("doc.URL() = %q", doc.URL())
	}
}

func TestRegistry_ParseUnregisteredType(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Parse("html", "a.html", nil, nil); err == nil {
		t.Fatal("Parse() with no registered parser should error")
	}
}

func TestRegistry_ForReturnsError(t *testing.T) {
	r := NewRegistry()
	if _, err := r.For("css"); err == nil {
		t.Fatal("For() with no registered parser should error")
	}
}
