// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package langparse

import (
	"encoding/json"
	"testing"

	tsh "github.com/kraklabs/fea/internal/testing"
)

func TestJSONParser_ValidObject(t *testing.T) {
	doc, err := JSONParser{}.Parse("package.json", []byte(`{"name": "app", "version": "1.0.0"}`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	jd := doc.(*JSONDocument)
	m, ok := jd.Value.(map[string]any)
	if !ok || m["name"] != "app" {
		t.Fatalf("Value = %+v, want a map with name=app", jd.Value)
	}
}

func TestJSONParser_EmptyContents(t *testing.T) {
	doc, err := JSONParser{}.Parse("empty.json", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	jd := doc.(*JSONDocument)
	if jd.Value != nil {
		t.Fatalf("Value = %v, want nil for empty contents", jd.Value)
	}
}

func TestJSONParser_InvalidJSON(t *testing.T) {
	if _, err := (JSONParser{}).Parse("bad.json", []byte(`{not valid`), nil); err == nil {
		t.Fatal("Parse() should error on invalid JSON")
	}
}

func TestJSONParser_GoldenPackageJSON(t *testing.T) {
	doc, err := JSONParser{}.Parse("package.json", []byte(`{"name": "foo", "version": "1.0.0", "main": "index.js"}`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	jd := doc.(*JSONDocument)
	got, err := json.Marshal(jd.Value)
	if err != nil {
		t.Fatalf("re-marshal Value: %v", err)
	}
	tsh.AssertGolden(t, "json_parser_package", got)
}
