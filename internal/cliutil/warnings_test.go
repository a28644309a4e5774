// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package cliutil

import (
	"testing"

	"github.com/fatih/color"
	"github.com/kraklabs/fea/internal/warning"
)

func TestPrintWarning_NoPanic(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	w := warning.New("unresolved-import", "cannot resolve ./missing.js",
		warning.SourceRange{
			URL:   "index.html",
			Start: warning.Position{Line: 3, Column: 5, Offset: 40},
			End:   warning.Position{Line: 3, Column: 20, Offset: 55},
		},
		warning.WarningSeverity,
	)
	PrintWarning(w)
}

func TestPrintWarningWithSource_NoPanic(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	w := warning.New("unresolved-import", "cannot resolve ./missing.js",
		warning.SourceRange{
			URL:   "index.html",
			Start: warning.Position{Line: 2, Column: 1, Offset: 10},
			End:   warning.Position{Line: 2, Column: 6, Offset: 15},
		},
		warning.Error,
	)
	source := []byte("line one\nimport missing\nline three")
	PrintWarningWithSource(w, source)
}

func TestPrintWarningWithSource_OutOfRange(t *testing.T) {
	w := warning.New("x", "msg",
		warning.SourceRange{
			URL:   "index.html",
			Start: warning.Position{Line: 99, Column: 1, Offset: 0},
			End:   warning.Position{Line: 99, Column: 2, Offset: 1},
		},
		warning.Info,
	)
	PrintWarningWithSource(w, []byte("only one line"))
}
