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

// Package model holds the document/feature graph: the immutable parser
// output (ParsedDocument), the language-neutral records a scanner emits
// (ScannedFeature/ScannedDocument), and the resolved graph a caller queries
// (Feature/Document).
package model

import (
	"strings"

	"github.com/kraklabs/fea/internal/warning"
)

// ParsedDocument is the immutable result of parsing one file's contents.
// It never references other documents: that comes later, at the scanning
// and resolution stages. Every language-specific parser returns a type
// that embeds Base and satisfies this interface.
type ParsedDocument interface {
	URL() string
	Type() string
	Contents() []byte
	// SourceRangeFor translates a pair of byte offsets in Contents into a
	// SourceRange anchored to this document's URL.
	SourceRangeFor(startOffset, endOffset int) warning.SourceRange
	// Position translates a byte offset into a line/column pair.
	Position(offset int) warning.Position
}

// InlineInfo is the parent context passed to a parser when the contents
// being parsed are an inline sub-document (a <script>/<style> body)
// rather than a document loaded on its own. Parent is the host document
// already parsed, and StartOffsetInParent is the byte offset within
// Parent's contents at which the inline contents begin. A parser that
// receives one must fold it into the Base it builds so the resulting
// document reports positions in the host's coordinate space, per
// spec.md §3's locationOffset field and §4.2's parser contract.
type InlineInfo struct {
	Parent              ParsedDocument
	StartOffsetInParent int
}

// Base implements the offset↔line/column bookkeeping shared by every
// concrete ParsedDocument. Embed it and only the AST-specific accessors
// need to be written per language.
type Base struct {
	url         string
	typ         string
	contents    []byte
	lineOffsets []int // byte offset of the start of each line
	inline      *InlineInfo
}

// NewBase builds the shared bookkeeping for a top-level parsed document of
// the given type tag ("html", "js", "css", "json").
func NewBase(url, typ string, contents []byte) Base {
	return newBase(url, typ, contents, nil)
}

// NewInlineBase builds the shared bookkeeping for an inline sub-document
// (a <script>/<style> body), whose Position/SourceRangeFor/URL report
// host-relative coordinates via inline.Parent instead of this document's
// own 0-based offsets and synthetic URL.
func NewInlineBase(url, typ string, contents []byte, inline InlineInfo) Base {
	return newBase(url, typ, contents, &inline)
}

func newBase(url, typ string, contents []byte, inline *InlineInfo) Base {
	offsets := []int{0}
	for i, b := range contents {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return Base{url: url, typ: typ, contents: contents, lineOffsets: offsets, inline: inline}
}

// URL reports the host document's URL for an inline sub-document (so a
// reported source range points a reader at a file they can actually open)
// and this document's own URL otherwise.
func (b Base) URL() string {
	if b.inline != nil {
		return b.inline.Parent.URL()
	}
	return b.url
}

func (b Base) Type() string     { return b.typ }
func (b Base) Contents() []byte { return b.contents }

// Position translates a 0-based byte offset local to this document's own
// Contents into a 1-based line/column. For an inline sub-document, the
// offset is additionally translated into the host document's coordinate
// space via LocationOffset.
func (b Base) Position(offset int) warning.Position {
	if b.inline != nil {
		return LocationOffset(b.inline.Parent, b.inline.StartOffsetInParent, offset)
	}
	// binary search would be cleaner, but these documents are small and
	// this is only ever called a handful of times per warning.
	line := 0
	for i, lineStart := range b.lineOffsets {
		if lineStart > offset {
			break
		}
		line = i
	}
	col := offset - b.lineOffsets[line]
	return warning.Position{Line: line + 1, Column: col + 1, Offset: offset}
}

// SourceRangeFor builds a SourceRange from a pair of byte offsets local to
// this document's own Contents, anchored to URL() (the host's URL for an
// inline sub-document).
func (b Base) SourceRangeFor(startOffset, endOffset int) warning.SourceRange {
	return warning.SourceRange{
		URL:   b.URL(),
		Start: b.Position(startOffset),
		End:   b.Position(endOffset),
	}
}

// LocationOffset composes this document's URL-relative offsets with a
// parent document's offset, used when an inline document (a <script> body)
// needs to report positions relative to the outer HTML file.
//
// Given the byte offset at which this document's contents begin within the
// parent, every position this document reports is shifted by that amount
// when attributed to the parent's URL.
func LocationOffset(parent ParsedDocument, childStartInParent int, childOffset int) warning.Position {
	return parent.Position(childStartInParent + childOffset)
}

// IsInlinePath reports whether a URL was synthesized for an inline
// sub-document (e.g. "index.html#js-0") rather than loaded
// from the source layer directly.
func IsInlinePath(url string) bool {
	return strings.Contains(url, "#")
}
