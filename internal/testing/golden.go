// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertGolden compares got against the contents of a golden file under
// testdata/<name>.golden, failing the test on mismatch. Set
// UPDATE_GOLDEN=1 when running `go test` to rewrite the golden file with
// got instead of comparing, for when a parser's output intentionally
// changes.
func AssertGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	path := filepath.Join("testdata", name+".golden")

	if os.Getenv("UPDATE_GOLDEN") != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, got, 0o644))
		return
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with UPDATE_GOLDEN=1 to create it", path)
	}
	require.NoError(t, err)
	require.Equal(t, string(want), string(got), "golden file %s mismatch", path)
}
