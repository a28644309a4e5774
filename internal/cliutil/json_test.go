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

package cliutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONTo(&buf, testPayload{Name: "index.html", Count: 3}); err != nil {
		t.Fatalf("JSONTo() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"name\"") {
		t.Errorf("JSONTo() should pretty-print with 2-space indent, got %s", buf.String())
	}

	var decoded testPayload
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Name != "index.html" || decoded.Count != 3 {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
}

func TestJSONCompactTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONCompactTo(&buf, testPayload{Name: "a", Count: 1}); err != nil {
		t.Fatalf("JSONCompactTo() error = %v", err)
	}
	if strings.Contains(buf.String(), "  ") {
		t.Errorf("JSONCompactTo() should not indent, got %s", buf.String())
	}
}

func TestJSONErrorTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONErrorTo(&buf, fmt.Errorf("cannot load entry document")); err != nil {
		t.Fatalf("JSONErrorTo() error = %v", err)
	}
	var decoded ErrorJSON
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Error != "cannot load entry document" {
		t.Errorf("Error = %q, want %q", decoded.Error, "cannot load entry document")
	}
}
