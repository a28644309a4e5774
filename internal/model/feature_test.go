// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func TestImport_Kinds(t *testing.T) {
	imp := NewImport(sr("a.js"), ImportKindHTMLScript, "b.js", false)
	kinds := imp.Kinds()
	if len(kinds) != 2 || kinds[0] != "import" || kinds[1] != "html-script" {
		t.Errorf("Import.Kinds() = %v", kinds)
	}
	if imp.Identifiers() != nil {
		t.Errorf("Import.Identifiers() = %v, want nil", imp.Identifiers())
	}
}

func TestInlineDocument_Kinds(t *testing.T) {
	inline := NewInlineDocument(sr("a.html"), "css", nil)
	kinds := inline.Kinds()
	if len(kinds) != 2 || kinds[0] != "inline-document" || kinds[1] != "css" {
		t.Errorf("InlineDocument.Kinds() = %v", kinds)
	}
}

func TestElement_Identifiers(t *testing.T) {
	el := NewElement(sr("a.html"), "my-app", "MyApp", []string{"foo"})
	ids := el.Identifiers()
	if len(ids) != 2 || ids[0] != "my-app" || ids[1] != "MyApp" {
		t.Errorf("Element.Identifiers() = %v, want [my-app MyApp]", ids)
	}
}

func TestElement_Identifiers_ClassNameOnly(t *testing.T) {
	el := NewElement(sr("a.html"), "", "MyApp", nil)
	ids := el.Identifiers()
	if len(ids) != 1 || ids[0] != "MyApp" {
		t.Errorf("Element.Identifiers() = %v, want [MyApp]", ids)
	}
}

func TestPolymerElement_Kinds(t *testing.T) {
	behavior := NewBehavior(sr("a.js"), "MyBehavior")
	poly := NewPolymerElement(sr("a.html"), "my-el", "MyEl", []*Behavior{behavior}, []string{"MyMixin"})
	kinds := poly.Kinds()
	if len(kinds) != 2 || kinds[0] != "element" || kinds[1] != "polymer-element" {
		t.Errorf("PolymerElement.Kinds() = %v", kinds)
	}
	if len(poly.Behaviors) != 1 || poly.Behaviors[0] != behavior {
		t.Errorf("PolymerElement.Behaviors = %v", poly.Behaviors)
	}
}

func TestReference_TargetStartsNil(t *testing.T) {
	ref := NewReference(sr("a.js"), "helper")
	if ref.Target != nil {
		t.Errorf("new Reference.Target = %v, want nil", ref.Target)
	}
	ref.Target = NewFunction(sr("a.js"), "helper")
	if ref.Target == nil {
		t.Error("Reference.Target should be settable after construction")
	}
}

func TestFeatureBase_Warnings(t *testing.T) {
	fn := NewFunction(sr("a.js"), "main")
	if fn.Warnings() != nil {
		t.Errorf("Function.Warnings() = %v, want nil", fn.Warnings())
	}
}
