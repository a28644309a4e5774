// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package warning

import "testing"

func TestSeverity_String(t *testing.T) {
	cases := map[Severity]string{
		Info:             "info",
		WarningSeverity:  "warning",
		Error:            "error",
		Severity(99):     "unknown",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestSourceRange_Contains(t *testing.T) {
	sr := SourceRange{
		URL:   "a.js",
		Start: Position{Offset: 10},
		End:   Position{Offset: 20},
	}
	if !sr.Contains(Position{Offset: 10}) {
		t.Error("Contains(start offset) = false, want true (half-open, inclusive start)")
	}
	if sr.Contains(Position{Offset: 20}) {
		t.Error("Contains(end offset) = true, want false (half-open, exclusive end)")
	}
	if !sr.Contains(Position{Offset: 15}) {
		t.Error("Contains(mid offset) = false, want true")
	}
	if sr.Contains(Position{Offset: 9}) {
		t.Error("Contains(before start) = true, want false")
	}
}

func TestNew(t *testing.T) {
	sr := SourceRange{URL: "a.js"}
	w := New("unresolved-import", "could not resolve ./x.js", sr, Error)
	if w.Code != "unresolved-import" || w.Message != "could not resolve ./x.js" || w.Severity != Error {
		t.Fatalf("New() = %+v", w)
	}
}

func TestWarning_Error(t *testing.T) {
	w := &Warning{
		Code:    "unresolved-import",
		Message: "could not resolve ./x.js",
		SourceRange: SourceRange{
			URL:   "a.js",
			Start: Position{Line: 3, Column: 5},
		},
		Severity: Error,
	}
	want := "a.js:3:5: error: could not resolve ./x.js"
	if got := w.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWarning_SatisfiesErrorInterface(t *testing.T) {
	var err error = &Warning{Message: "x", SourceRange: SourceRange{URL: "a.js"}}
	if err.Error() == "" {
		t.Fatal("Warning should satisfy the error interface with a non-empty message")
	}
}
