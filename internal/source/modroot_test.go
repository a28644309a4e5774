// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindModuleRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "web", "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	dir, modulePath, err := FindModuleRoot(nested)
	if err != nil {
		t.Fatalf("FindModuleRoot() error = %v", err)
	}
	wantDir, _ := filepath.Abs(root)
	if dir != wantDir {
		t.Errorf("dir = %q, want %q", dir, wantDir)
	}
	if modulePath != "example.com/app" {
		t.Errorf("modulePath = %q, want %q", modulePath, "example.com/app")
	}
}

func TestFindModuleRoot_NotFound(t *testing.T) {
	dir := t.TempDir()
	gotDir, gotModule, err := FindModuleRoot(dir)
	if err != nil {
		t.Fatalf("FindModuleRoot() error = %v", err)
	}
	if gotDir != "" || gotModule != "" {
		t.Errorf("expected empty result for a tree with no go.mod, got dir=%q module=%q", gotDir, gotModule)
	}
}
