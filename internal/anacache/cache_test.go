// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package anacache

import (
	"testing"

	"github.com/kraklabs/fea/internal/model"
)

func TestFuture_ResolveThenWait(t *testing.T) {
	f := NewFuture()
	go f.Resolve("result", nil)
	result, err := f.Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result != "result" {
		t.Fatalf("Wait() = %v, want %q", result, "result")
	}
}

func TestFuture_ResolveWithError(t *testing.T) {
	f := NewFuture()
	boom := assertError("boom")
	go f.Resolve(nil, boom)
	_, err := f.Wait()
	if err != boom {
		t.Fatalf("Wait() error = %v, want %v", err, boom)
	}
}

func TestWaitGeneric_TypeAssertsResult(t *testing.T) {
	f := NewFuture()
	go f.Resolve(42, nil)
	got, err := Wait[int](f)
	if err != nil || got != 42 {
		t.Fatalf("Wait[int]() = %v, %v, want 42, nil", got, err)
	}
}

func TestWaitGeneric_NilResultReturnsZeroValue(t *testing.T) {
	f := NewFuture()
	go f.Resolve(nil, nil)
	got, err := Wait[*model.Document](f)
	if err != nil || got != nil {
		t.Fatalf("Wait[*model.Document]() = %v, %v, want nil, nil", got, err)
	}
}

func TestCache_GetOrCreateScanned_SecondCallerSharesFuture(t *testing.T) {
	c := New()
	f1, existed1 := c.GetOrCreateScanned("a.js", NewFuture)
	if existed1 {
		t.Fatal("first GetOrCreateScanned should report existed=false")
	}
	f2, existed2 := c.GetOrCreateScanned("a.js", NewFuture)
	if !existed2 {
		t.Fatal("second GetOrCreateScanned for the same URL should report existed=true")
	}
	if f1 != f2 {
		t.Fatal("second GetOrCreateScanned should return the same Future instance")
	}
}

func TestCache_PutAndGetAnalyzedDocument(t *testing.T) {
	c := New()
	if _, ok := c.GetAnalyzedDocument("a.js"); ok {
		t.Fatal("GetAnalyzedDocument on an empty cache should report ok=false")
	}
	doc := model.New("a.js", nil, "", false)
	c.PutAnalyzedDocument("a.js", doc)
	got, ok := c.GetAnalyzedDocument("a.js")
	if !ok || got != doc {
		t.Fatalf("GetAnalyzedDocument() = %v, %v, want doc, true", got, ok)
	}
}

func TestCache_GetOrCreateDocument_SecondCallerSharesInstance(t *testing.T) {
	c := New()
	calls := 0
	newDoc := func() *model.Document {
		calls++
		return model.New("a.js", nil, "", false)
	}

	d1, existed1 := c.GetOrCreateDocument("a.js", newDoc)
	if existed1 {
		t.Fatal("first GetOrCreateDocument should report existed=false")
	}
	d2, existed2 := c.GetOrCreateDocument("a.js", newDoc)
	if !existed2 {
		t.Fatal("second GetOrCreateDocument for the same URL should report existed=true")
	}
	if d1 != d2 {
		t.Fatal("second GetOrCreateDocument should return the same Document instance")
	}
	if calls != 1 {
		t.Fatalf("newDoc() called %d times, want 1", calls)
	}
	if got, ok := c.GetAnalyzedDocument("a.js"); !ok || got != d1 {
		t.Fatalf("GetAnalyzedDocument() = %v, %v, want d1, true", got, ok)
	}
}

func TestCache_Fork_PreservesDocumentsCreatedViaGetOrCreateDocument(t *testing.T) {
	c := New()
	c.GetOrCreateDocument("lib.js", func() *model.Document { return model.New("lib.js", nil, "", false) })
	c.GetOrCreateDocument("other.js", func() *model.Document { return model.New("other.js", nil, "", false) })

	next := c.Fork([]string{"lib.js"})

	if _, ok := next.GetAnalyzedDocument("lib.js"); ok {
		t.Error("Fork should invalidate the changed URL itself")
	}
	if _, ok := next.GetAnalyzedDocument("other.js"); !ok {
		t.Error("Fork should keep unrelated documents published via GetOrCreateDocument")
	}
}

func TestCache_PutScannedDocument_BuildsImporterIndex(t *testing.T) {
	c := New()
	sd := &model.ScannedDocument{
		Features: []model.ScannedFeature{
			&model.ScannedImport{ImportKind: model.ImportKindHTMLScript, URL: "lib.js"},
		},
	}
	c.PutScannedDocument("a.js", sd)

	importers := c.ImportersOf("lib.js")
	if len(importers) != 1 || importers[0] != "a.js" {
		t.Fatalf("ImportersOf(lib.js) = %v, want [a.js]", importers)
	}
	if len(c.ImportersOf("unrelated.js")) != 0 {
		t.Fatal("ImportersOf() on an unimported URL should be empty")
	}
}

func TestCache_Fork_InvalidatesChangedURLAndItsImporters(t *testing.T) {
	c := New()
	libSD := &model.ScannedDocument{}
	mainSD := &model.ScannedDocument{
		Features: []model.ScannedFeature{
			&model.ScannedImport{ImportKind: model.ImportKindHTMLScript, URL: "lib.js"},
		},
	}
	c.PutScannedDocument("lib.js", libSD)
	c.PutScannedDocument("a.js", mainSD)
	c.PutAnalyzedDocument("lib.js", model.New("lib.js", nil, "", false))
	c.PutAnalyzedDocument("a.js", model.New("a.js", nil, "", false))
	c.PutAnalyzedDocument("other.js", model.New("other.js", nil, "", false))

	next := c.Fork([]string{"lib.js"})

	if _, ok := next.GetAnalyzedDocument("lib.js"); ok {
		t.Error("Fork should invalidate the changed URL itself")
	}
	if _, ok := next.GetAnalyzedDocument("a.js"); ok {
		t.Error("Fork should invalidate a.js, which imports the changed lib.js")
	}
	if _, ok := next.GetAnalyzedDocument("other.js"); !ok {
		t.Error("Fork should keep unrelated analyzed documents")
	}
}

func TestCache_Fork_DoesNotMutateParent(t *testing.T) {
	c := New()
	c.PutAnalyzedDocument("a.js", model.New("a.js", nil, "", false))
	_ = c.Fork([]string{"a.js"})

	if _, ok := c.GetAnalyzedDocument("a.js"); !ok {
		t.Error("Fork should not mutate the parent generation")
	}
}

func TestCache_Clear_ReturnsEmptyGeneration(t *testing.T) {
	c := New()
	c.PutAnalyzedDocument("a.js", model.New("a.js", nil, "", false))
	cleared := c.Clear()
	if _, ok := cleared.GetAnalyzedDocument("a.js"); ok {
		t.Error("Clear() should return an empty generation")
	}
}

type assertError string

func (e assertError) Error() string { return string(e) }
