// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package cliutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/kraklabs/fea/internal/warning"
)

// PrintWarning renders a single warning the way a compiler diagnostic
// does: "url:line:col: severity: message", colored by severity. It is a
// thin default so `fea analyze` has something to show without pulling in
// a full diagnostic-rendering dependency of its own.
func PrintWarning(w *warning.Warning) {
	sr := w.SourceRange
	location := fmt.Sprintf("%s:%d:%d:", sr.URL, sr.Start.Line, sr.Start.Column)
	switch w.Severity {
	case warning.Error:
		_, _ = Red.Printf("%s error: %s\n", location, w.Message)
	case warning.WarningSeverity:
		_, _ = Yellow.Printf("%s warning: %s\n", location, w.Message)
	default:
		_, _ = Cyan.Printf("%s info: %s\n", location, w.Message)
	}
}

// PrintWarningWithSource renders a warning the same way PrintWarning does,
// followed by the offending source line with a caret underline beneath the
// span SourceRange covers, when source is non-empty and the range's line
// is within it.
func PrintWarningWithSource(w *warning.Warning, source []byte) {
	PrintWarning(w)
	sr := w.SourceRange
	lines := strings.Split(string(source), "\n")
	lineIdx := sr.Start.Line - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return
	}
	line := lines[lineIdx]
	fmt.Fprintln(os.Stdout, "  "+line)

	width := sr.End.Column - sr.Start.Column
	if sr.End.Line != sr.Start.Line || width < 1 {
		width = 1
	}
	underline := strings.Repeat(" ", max(0, sr.Start.Column-1)) + strings.Repeat("^", width)
	_, _ = Red.Printf("  %s\n", underline)
}
