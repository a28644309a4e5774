// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	root := t.TempDir()
	p, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(p.EntryURLs) != 1 || p.EntryURLs[0] != "index.html" {
		t.Errorf("Load() on missing file = %+v, want default", p)
	}
}

func TestInitThenLoad(t *testing.T) {
	root := t.TempDir()
	path, err := Init(root, []string{"app/index.html"}, nil)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if path != filepath.Join(root, DirName, FileName) {
		t.Errorf("Init() path = %q", path)
	}

	p, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(p.EntryURLs) != 1 || p.EntryURLs[0] != "app/index.html" {
		t.Errorf("Load() after Init() = %+v", p)
	}
}

func TestInit_Idempotent(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root, []string{"a.html"}, nil); err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	if _, err := Init(root, []string{"b.html"}, nil); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	p, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.EntryURLs[0] != "a.html" {
		t.Errorf("Init() should not overwrite an existing config, got %+v", p)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	root := t.TempDir()
	p := &Project{
		EntryURLs:     []string{"index.html", "admin/index.html"},
		Exclude:       []string{"vendor/**", "dist/**"},
		LazyEdgesPath: "lazy-edges.json",
		CacheDir:      ".fea/cache",
	}
	if err := Save(root, p, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.EntryURLs) != 2 || got.Exclude[0] != "vendor/**" || got.LazyEdgesPath != "lazy-edges.json" || got.CacheDir != ".fea/cache" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
