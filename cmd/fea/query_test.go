// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"testing"

	"github.com/kraklabs/fea/internal/graphstore"
)

func TestParseWhere(t *testing.T) {
	got, err := parseWhere([]string{"kind=function", "lazy=true"})
	if err != nil {
		t.Fatalf("parseWhere() error = %v", err)
	}
	if got["kind"] != "function" || got["lazy"] != "true" {
		t.Errorf("parseWhere() = %+v", got)
	}
}

func TestParseWhere_Invalid(t *testing.T) {
	if _, err := parseWhere([]string{"no-equals-sign"}); err == nil {
		t.Error("parseWhere() should error on a clause without '='")
	}
}

func TestParseWhere_Empty(t *testing.T) {
	got, err := parseWhere(nil)
	if err != nil {
		t.Fatalf("parseWhere() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("parseWhere(nil) = %+v, want empty", got)
	}
}

func TestRowColumns_UnionAcrossRows(t *testing.T) {
	rows := []graphstore.Row{
		{"a": 1, "b": 2},
		{"a": 1, "c": 3},
	}
	cols := rowColumns(rows)
	if len(cols) != 3 || cols[0] != "a" || cols[1] != "b" || cols[2] != "c" {
		t.Errorf("rowColumns() = %v, want sorted [a b c]", cols)
	}
}
