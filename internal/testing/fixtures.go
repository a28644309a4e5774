// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kraklabs/fea/internal/source"
)

// FixtureLoader builds a source.Loader serving files directly from
// memory, keyed by the URL a test's fixtures use to reference each other
// (normally relative paths like "index.html" or "components/app.js").
// Loading a URL not present in files returns an error, exactly like a
// real Loader asked for a file that does not exist.
func FixtureLoader(files map[string][]byte) *source.OverlayLoader {
	loader := source.NewOverlayLoader(nil)
	for url, contents := range files {
		loader.Set(url, contents)
	}
	return loader
}

// WriteFixtureDir materializes files as real files under a temp directory
// that t.TempDir() cleans up automatically, and returns the directory
// root. Use this for tests that need to exercise source.FSLoader itself
// rather than an in-memory overlay.
func WriteFixtureDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for relPath, contents := range files {
		fullPath := filepath.Join(root, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("create dir for fixture %s: %v", relPath, err)
		}
		if err := os.WriteFile(fullPath, contents, 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", relPath, err)
		}
	}
	return root
}
