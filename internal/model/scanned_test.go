// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func TestScannedDocument_ImportsAndInlineDocuments(t *testing.T) {
	imp := &ScannedImport{ImportKind: ImportKindJSImport, URL: "./util.js"}
	inline := &ScannedInlineDocument{Type: "js", Contents: "console.log(1)"}
	fn := &ScannedFunction{Name: "main"}

	sd := &ScannedDocument{Features: []ScannedFeature{imp, inline, fn}}

	imports := sd.Imports()
	if len(imports) != 1 || imports[0] != imp {
		t.Fatalf("Imports() = %v, want [imp]", imports)
	}

	inlines := sd.InlineDocuments()
	if len(inlines) != 1 || inlines[0] != inline {
		t.Fatalf("InlineDocuments() = %v, want [inline]", inlines)
	}
}

func TestScannedDocument_NoImportsOrInlines(t *testing.T) {
	sd := &ScannedDocument{Features: []ScannedFeature{&ScannedFunction{Name: "main"}}}
	if len(sd.Imports()) != 0 {
		t.Errorf("Imports() = %v, want none", sd.Imports())
	}
	if len(sd.InlineDocuments()) != 0 {
		t.Errorf("InlineDocuments() = %v, want none", sd.InlineDocuments())
	}
}

func TestNonEmpty(t *testing.T) {
	got := nonEmpty("a", "", "b", "")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("nonEmpty() = %v, want [a b]", got)
	}
}

func TestScannedFeature_KindsAndIdentifiers(t *testing.T) {
	el := &ScannedElement{TagName: "my-app", ClassName: "MyApp"}
	if kinds := el.Kinds(); len(kinds) != 1 || kinds[0] != "element" {
		t.Errorf("Element.Kinds() = %v", kinds)
	}
	ids := el.Identifiers()
	if len(ids) != 2 || ids[0] != "my-app" || ids[1] != "MyApp" {
		t.Errorf("Element.Identifiers() = %v, want [my-app MyApp]", ids)
	}

	poly := &ScannedPolymerElement{ScannedElement: ScannedElement{TagName: "my-el"}}
	kinds := poly.Kinds()
	if len(kinds) != 2 || kinds[0] != "element" || kinds[1] != "polymer-element" {
		t.Errorf("PolymerElement.Kinds() = %v", kinds)
	}
}
