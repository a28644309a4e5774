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

// Package warning defines the location and severity model shared by every
// parser, scanner, and resolution step in the analysis engine.
//
// A Warning is pure data: it never panics or exits a process. Parsers and
// scanners attach warnings to the documents they produce instead of
// returning Go errors for recoverable, source-level problems (a malformed
// import, an unresolved reference); a Go error is reserved for conditions
// that make analysis of a document impossible altogether (the source could
// not be loaded, the file could not be parsed at all).
package warning

import "fmt"

// Severity classifies how serious a Warning is.
type Severity int

const (
	// Info marks an observation that does not affect correctness.
	Info Severity = iota
	// WarningSeverity marks a likely mistake that does not block analysis.
	WarningSeverity
	// Error marks a problem serious enough that dependent features
	// could not be resolved.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case WarningSeverity:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Position is a single point in a source document: both the 0-based byte
// offset and its translated 1-based line/column, so callers can render a
// warning without re-deriving one form from the other.
type Position struct {
	Line   int
	Column int
	Offset int
}

// SourceRange locates a span of text within a specific document URL.
// End is exclusive of the final character, matching ParsedDocument.SourceRangeFor.
type SourceRange struct {
	URL   string
	Start Position
	End   Position
}

// Contains reports whether p falls within the half-open range [Start, End).
func (r SourceRange) Contains(p Position) bool {
	if p.Offset < r.Start.Offset || p.Offset >= r.End.Offset {
		return false
	}
	return true
}

// Warning describes a single diagnostic attached to a document or feature.
type Warning struct {
	Code        string
	Message     string
	SourceRange SourceRange
	Severity    Severity
}

// New constructs a Warning at the given severity.
func New(code, message string, sr SourceRange, severity Severity) *Warning {
	return &Warning{Code: code, Message: message, SourceRange: sr, Severity: severity}
}

// Error lets Warning satisfy the error interface so it can be wrapped and
// compared with errors.Is/As when a caller genuinely needs to treat one as
// a Go error.
func (w *Warning) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", w.SourceRange.URL, w.SourceRange.Start.Line, w.SourceRange.Start.Column, w.Severity, w.Message)
}
