// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import "testing"

func TestPackageURLResolver_RelativeJoin(t *testing.T) {
	r := PackageURLResolver{}
	got, err := r.Resolve("components/app.html", "util.js")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "components/util.js" {
		t.Errorf("Resolve() = %q, want %q", got, "components/util.js")
	}
}

func TestPackageURLResolver_ParentDirTraversal(t *testing.T) {
	r := PackageURLResolver{}
	got, err := r.Resolve("components/app/app.html", "../shared/util.js")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "components/shared/util.js" {
		t.Errorf("Resolve() = %q, want %q", got, "components/shared/util.js")
	}
}

func TestPackageURLResolver_AbsoluteURLUntouched(t *testing.T) {
	r := PackageURLResolver{}
	got, err := r.Resolve("index.html", "https://cdn.example.com/lib.js")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "https://cdn.example.com/lib.js" {
		t.Errorf("Resolve() = %q, want the URL untouched", got)
	}
}

func TestPackageURLResolver_RootRelativeUntouched(t *testing.T) {
	r := PackageURLResolver{}
	got, err := r.Resolve("components/app.html", "/shared/util.js")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "/shared/util.js" {
		t.Errorf("Resolve() = %q, want %q", got, "/shared/util.js")
	}
}

func TestPackageURLResolver_EmptyRefErrors(t *testing.T) {
	r := PackageURLResolver{}
	if _, err := r.Resolve("index.html", ""); err == nil {
		t.Error("Resolve() with an empty ref should error")
	}
}

func TestIdentityResolver_PassesThroughUnchanged(t *testing.T) {
	r := IdentityResolver{}
	got, err := r.Resolve("index.html", "../b.html")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "../b.html" {
		t.Errorf("Resolve() = %q, want ref unchanged", got)
	}
}

func TestInlineURL(t *testing.T) {
	got := InlineURL("index.html", "script", 2)
	if got != "index.html#script-2" {
		t.Errorf("InlineURL() = %q, want %q", got, "index.html#script-2")
	}
}
