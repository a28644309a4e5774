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

// Package langparse maps a file-type tag to a Parser able to turn raw
// bytes into a model.ParsedDocument. Individual grammars (HTML tokenizer,
// CSS tokenizer, Tree-sitter JS) are registered by the caller that wires
// up an engine; the registry itself only knows the contract.
package langparse

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/kraklabs/fea/internal/model"
)

// Parser turns raw file contents into a ParsedDocument. Implementations
// must not inspect other documents or the filesystem; everything a parser
// needs is the URL (for error messages and position reporting), the bytes
// themselves, and, when parsing an inline sub-document, inline — which
// implementations must fold into the Base they build (via NewInlineBase)
// so the resulting document's positions land in the host file's own
// coordinate space rather than a local 0-based one.
type Parser interface {
	Parse(url string, contents []byte, inline *model.InlineInfo) (model.ParsedDocument, error)
}

// Registry maps a file-type tag ("html", "js", "css", "json", ...) to the
// Parser responsible for it.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register installs a Parser for the given type tag, replacing any
// previous registration.
func (r *Registry) Register(typ string, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[typ] = p
}

// For returns the Parser registered for typ.
func (r *Registry) For(typ string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[typ]
	if !ok {
		return nil, fmt.Errorf("no parser registered for type %q", typ)
	}
	return p, nil
}

// Parse looks up the Parser for typ and runs it. inline is nil for a
// top-level document and non-nil when parsing an inline sub-document
// extracted from a host document already parsed.
func (r *Registry) Parse(typ, url string, contents []byte, inline *model.InlineInfo) (model.ParsedDocument, error) {
	p, err := r.For(typ)
	if err != nil {
		return nil, err
	}
	return p.Parse(url, contents, inline)
}

// TypeForURL infers the file-type tag from a URL's extension. An inline
// sub-document's synthetic URL (source.InlineURL: "<parent>#kind-N") is
// recognized by its fragment instead: the fragment names the scanner's
// own ScannedInlineDocument.Type directly, which is the ground truth for
// what language the inline contents are in, whereas the parent's
// extension (e.g. the ".html" in "index.html#js-0") describes the host
// document, not the inline one. Query strings are stripped before the
// extension fallback.
func TypeForURL(url string) string {
	clean := url
	if i := strings.IndexByte(clean, '#'); i >= 0 {
		if kind, ok := inlineKindFromFragment(clean[i+1:]); ok {
			return kind
		}
		clean = clean[:i]
	}
	if i := strings.IndexByte(clean, '?'); i >= 0 {
		clean = clean[:i]
	}
	switch {
	case strings.HasSuffix(clean, ".html"), strings.HasSuffix(clean, ".htm"):
		return "html"
	case strings.HasSuffix(clean, ".js"), strings.HasSuffix(clean, ".mjs"):
		return "js"
	case strings.HasSuffix(clean, ".ts"):
		return "typescript"
	case strings.HasSuffix(clean, ".css"):
		return "css"
	case strings.HasSuffix(clean, ".json"):
		return "json"
	default:
		return "js"
	}
}

// newBaseFor builds a model.Base for a parser's document, folding inline
// in when parsing an inline sub-document rather than a top-level file.
func newBaseFor(url, typ string, contents []byte, inline *model.InlineInfo) model.Base {
	if inline != nil {
		return model.NewInlineBase(url, typ, contents, *inline)
	}
	return model.NewBase(url, typ, contents)
}

// inlineKindFromFragment recovers the type tag from a "kind-N" fragment
// produced by source.InlineURL, reporting ok=false for anything that
// doesn't match that shape (an ordinary URL fragment like "#intro-text"
// falls through to extension-based detection on the part before the '#').
func inlineKindFromFragment(fragment string) (string, bool) {
	i := strings.LastIndexByte(fragment, '-')
	if i < 0 {
		return "", false
	}
	kind, suffix := fragment[:i], fragment[i+1:]
	if suffix == "" {
		return "", false
	}
	if _, err := strconv.Atoi(suffix); err != nil {
		return "", false
	}
	if kind == "" {
		return "", false
	}
	return kind, true
}
