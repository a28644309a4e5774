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

package langparse

import (
	"strings"

	"github.com/kraklabs/fea/internal/model"
)

// CSSImport is an `@import` rule found while tokenizing a stylesheet.
type CSSImport struct {
	URL         string
	StartOffset int
	EndOffset   int
}

// CSSDocument is a parsed stylesheet: just its @import rules, since the
// engine only needs CSS for its dependency edges, not for style resolution.
type CSSDocument struct {
	model.Base
	Imports []CSSImport
}

// CSSParser tokenizes just enough CSS to find @import rules, skipping
// comments and string literals so an `@import` mentioned inside a comment
// or a content: "..." value is never mistaken for a real edge.
type CSSParser struct{}

func (CSSParser) Parse(url string, contents []byte, inline *model.InlineInfo) (model.ParsedDocument, error) {
	doc := &CSSDocument{Base: newBaseFor(url, "css", contents, inline)}
	s := string(contents)
	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
				continue
			}
			i += 2 + end + 2
		case s[i] == '"' || s[i] == '\'':
			quote := s[i]
			j := i + 1
			for j < len(s) && s[j] != quote {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			i = j + 1
		case strings.HasPrefix(s[i:], "@import"):
			start := i
			end := strings.IndexByte(s[i:], ';')
			var stmt string
			if end < 0 {
				stmt = s[i:]
				i = len(s)
			} else {
				stmt = s[i : i+end]
				i += end + 1
			}
			if u := extractCSSImportURL(stmt); u != "" {
				doc.Imports = append(doc.Imports, CSSImport{
					URL:         u,
					StartOffset: start,
					EndOffset:   start + len(stmt),
				})
			}
		default:
			i++
		}
	}
	return doc, nil
}

func extractCSSImportURL(stmt string) string {
	stmt = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(stmt), "@import"))
	if strings.HasPrefix(stmt, "url(") {
		stmt = strings.TrimPrefix(stmt, "url(")
		if i := strings.IndexByte(stmt, ')'); i >= 0 {
			stmt = stmt[:i]
		}
	}
	stmt = strings.Trim(stmt, `"' `)
	return stmt
}
