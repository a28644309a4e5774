// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package langscan

import (
	"testing"

	"github.com/kraklabs/fea/internal/langparse"
	"github.com/kraklabs/fea/internal/model"
)

func parseHTML(t *testing.T, contents string) model.ParsedDocument {
	t.Helper()
	doc, err := langparse.HTMLParser{}.Parse("index.html", []byte(contents), nil)
	if err != nil {
		t.Fatalf("HTMLParser.Parse() error = %v", err)
	}
	return doc
}

func TestHTMLScanner_LinkImport(t *testing.T) {
	doc := parseHTML(t, `<link rel="import" href="a.html">`)
	features, warnings, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(features) != 1 {
		t.Fatalf("features = %v, want 1", features)
	}
	imp, ok := features[0].(*model.ScannedImport)
	if !ok || imp.URL != "a.html" || imp.ImportKind != model.ImportKindHTMLImport || imp.Lazy {
		t.Fatalf("features[0] = %+v", features[0])
	}
}

func TestHTMLScanner_LazyImport(t *testing.T) {
	doc := parseHTML(t, `<link rel="lazy-import" href="a.html">`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	imp := features[0].(*model.ScannedImport)
	if !imp.Lazy {
		t.Error("lazy-import should set Lazy = true")
	}
}

func TestHTMLScanner_MissingHrefWarns(t *testing.T) {
	doc := parseHTML(t, `<link rel="import">`)
	features, warnings, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(features) != 0 {
		t.Fatalf("features = %v, want none", features)
	}
	if len(warnings) != 1 || warnings[0].Code != "missing-href" {
		t.Fatalf("warnings = %v, want one missing-href warning", warnings)
	}
}

func TestHTMLScanner_Stylesheet(t *testing.T) {
	doc := parseHTML(t, `<link rel="stylesheet" href="a.css">`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	imp := features[0].(*model.ScannedImport)
	if imp.ImportKind != model.ImportKindHTMLStyle {
		t.Errorf("ImportKind = %v, want ImportKindHTMLStyle", imp.ImportKind)
	}
}

func TestHTMLScanner_ScriptSrc(t *testing.T) {
	doc := parseHTML(t, `<script src="app.js"></script>`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	imp := features[0].(*model.ScannedImport)
	if imp.URL != "app.js" || imp.ImportKind != model.ImportKindHTMLScript {
		t.Errorf("features[0] = %+v", features[0])
	}
}

func TestHTMLScanner_InlineScript(t *testing.T) {
	doc := parseHTML(t, `<script>var x = 1;</script>`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	inline, ok := features[0].(*model.ScannedInlineDocument)
	if !ok || inline.Type != "js" || inline.Contents != "var x = 1;" {
		t.Fatalf("features[0] = %+v", features[0])
	}
}

func TestHTMLScanner_InlineScript_NonJSTypeSkipped(t *testing.T) {
	doc := parseHTML(t, `<script type="text/html">ignored</script>`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(features) != 0 {
		t.Fatalf("features = %v, want none for a non-JS script type", features)
	}
}

func TestHTMLScanner_InlineStyle(t *testing.T) {
	doc := parseHTML(t, `<style>body { color: red; }</style>`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	inline, ok := features[0].(*model.ScannedInlineDocument)
	if !ok || inline.Type != "css" {
		t.Fatalf("features[0] = %+v", features[0])
	}
}

func TestHTMLScanner_DomModuleAttachesClassNameToNextElement(t *testing.T) {
	doc := parseHTML(t, `<dom-module id="my-app"><my-el></my-el></dom-module>`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	el, ok := features[0].(*model.ScannedElement)
	if !ok || el.TagName != "my-el" || el.ClassName != "my-app" {
		t.Fatalf("features[0] = %+v", features[0])
	}
}

func TestHTMLScanner_PlainTagsIgnored(t *testing.T) {
	doc := parseHTML(t, `<div><p>hello</p></div>`)
	features, _, err := HTMLScanner{}.Scan(doc)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(features) != 0 {
		t.Fatalf("features = %v, want none (no custom elements or imports)", features)
	}
}

func TestHTMLScanner_WrongDocumentTypeErrors(t *testing.T) {
	jsonDoc, err := langparse.JSONParser{}.Parse("a.json", []byte(`{}`), nil)
	if err != nil {
		t.Fatalf("JSONParser.Parse() error = %v", err)
	}
	if _, _, err := (HTMLScanner{}).Scan(jsonDoc); err == nil {
		t.Fatal("Scan() with a non-HTML document should error")
	}
}
