// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package langscan

import (
	"testing"

	"github.com/kraklabs/fea/internal/langparse"
)

func TestRegistry_ScanRunsRegisteredScanners(t *testing.T) {
	r := NewRegistry()
	r.Register("html", HTMLScanner{})

	doc := parseHTML(t, `<script src="app.js"></script>`)
	features, _, err := r.Scan("html", doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("features = %v, want 1", features)
	}
}

func TestRegistry_ScanUnregisteredTypeReturnsEmpty(t *testing.T) {
	r := NewRegistry()
	doc, err := langparse.JSONParser{}.Parse("a.json", []byte(`{}`), nil)
	if err != nil {
		t.Fatalf("JSONParser.Parse() error = %v", err)
	}
	features, warnings, err := r.Scan("json", doc)
	if err != nil {
		t.Fatalf("Scan() error = %v, want nil for an unregistered type", err)
	}
	if features != nil || warnings != nil {
		t.Fatalf("Scan() = %v, %v, want nil, nil", features, warnings)
	}
}

func TestRegistry_ForReturnsCopyInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("html", HTMLScanner{})
	scanners := r.For("html")
	if len(scanners) != 1 {
		t.Fatalf("For() = %v, want 1 scanner", scanners)
	}
}
