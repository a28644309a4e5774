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

package model

import (
	"fmt"
	"sync"

	"github.com/kraklabs/fea/internal/warning"
)

// ResolutionState tracks where a Document sits in the
// Unresolved → Resolving → Resolved state machine. A document enters
// Resolving the moment its analysis begins (before any of its dependency
// edges are walked) so that a cycle back to it is detected rather than
// triggering infinite recursion.
type ResolutionState int

const (
	Unresolved ResolutionState = iota
	Resolving
	Resolved
)

func (s ResolutionState) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// QueryOptions controls how a Document's query methods traverse the
// dependency graph.
type QueryOptions struct {
	// Imported, when true, includes features from imported documents
	// (transitively), not just this document's own features.
	Imported bool
	// LazyImports, when true and Imported is also true, follows
	// rel="lazy-import" edges as well as eager ones.
	LazyImports bool
	// ExternalPackages, when true, does not stop traversal at a package
	// boundary: a document whose PackageName is non-empty (it lives under
	// a dependency directory like node_modules/ or bower_components/, not
	// the project root) is still walked. When false (the default), such
	// documents are excluded, matching the "project root only" default.
	ExternalPackages bool
}

// Document is the resolved, queryable view of one analyzed file (or inline
// sub-document). It owns lazily-built indexes over its own features so
// repeated queries after the first are cheap.
type Document struct {
	url         string
	parsed      ParsedDocument
	features    []Feature
	warnings    []*warning.Warning
	imports     []*Import
	inline      []*Document // resolved inline sub-documents, always traversed
	packageName string
	isInline    bool

	state   ResolutionState
	stateMu sync.Mutex

	indexMu          sync.Mutex
	byKind           map[string][]Feature
	byKindAndID      map[string]map[string][]Feature
	indexesBuilt     bool
	indexedDocuments map[*Document]bool // cycle guard during index construction
}

// New constructs a Document in the Unresolved state. The analysis context
// transitions it to Resolving before walking dependencies and to Resolved
// once every reachable document has a final feature list.
func New(url string, parsed ParsedDocument, packageName string, isInline bool) *Document {
	return &Document{
		url:         url,
		parsed:      parsed,
		packageName: packageName,
		isInline:    isInline,
	}
}

func (d *Document) URL() string            { return d.url }
func (d *Document) Parsed() ParsedDocument { return d.parsed }
func (d *Document) PackageName() string    { return d.packageName }
func (d *Document) IsInline() bool         { return d.isInline }

// State returns the current resolution state.
func (d *Document) State() ResolutionState {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	return d.state
}

// BeginResolving transitions Unresolved → Resolving. It reports false (and
// leaves the state unchanged) if the document is already Resolving or
// Resolved, which is how the engine detects it has looped back to a
// document already on the current resolution stack.
func (d *Document) BeginResolving() bool {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	if d.state != Unresolved {
		return false
	}
	d.state = Resolving
	return true
}

// FinishResolving sets the final feature list and warnings and transitions
// Resolving → Resolved. Inline sub-documents are derived from features
// (every InlineDocument feature with a non-nil Document) rather than
// passed separately: unlike imports, they are not an edge a caller opts
// into with QueryOptions.Imported — they are spliced into this document's
// own transitive feature set unconditionally, matching
// ScannedDocument.GetNestedFeatures' flattening semantics one level up at
// the resolved-graph layer.
func (d *Document) FinishResolving(features []Feature, warnings []*warning.Warning, imports []*Import) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	d.features = features
	d.warnings = warnings
	d.imports = imports
	d.inline = d.inline[:0]
	for _, f := range features {
		if inl, ok := f.(*InlineDocument); ok && inl.Document != nil {
			d.inline = append(d.inline, inl.Document)
		}
	}
	d.state = Resolved
}

// Imports returns this document's own resolved import edges (not transitive).
func (d *Document) Imports() []*Import { return d.imports }

// OwnFeatures returns only the features scanned directly from this
// document, in discovery order.
func (d *Document) OwnFeatures() []Feature { return d.features }

// OwnWarnings returns only the warnings raised while analyzing this
// document.
func (d *Document) OwnWarnings() []*warning.Warning { return d.warnings }

func (d *Document) ensureIndexes() {
	d.indexMu.Lock()
	defer d.indexMu.Unlock()
	if d.indexesBuilt {
		return
	}
	d.byKind = make(map[string][]Feature)
	d.byKindAndID = make(map[string]map[string][]Feature)
	for _, f := range d.features {
		for _, k := range f.Kinds() {
			d.byKind[k] = append(d.byKind[k], f)
			if d.byKindAndID[k] == nil {
				d.byKindAndID[k] = make(map[string][]Feature)
			}
			for _, id := range f.Identifiers() {
				d.byKindAndID[k][id] = append(d.byKindAndID[k][id], f)
			}
		}
	}
	d.indexesBuilt = true
}

// walk calls visit for this document, for every inline sub-document it
// contains (always — an inline <script>/<style> is part of this document,
// not an import a caller opts into), and, if opts.Imported is set, every
// document transitively reachable through its import edges, honoring
// opts.LazyImports and opts.ExternalPackages. It never visits the same
// document twice even across import cycles.
func (d *Document) walk(opts QueryOptions, seen map[*Document]bool, visit func(*Document)) {
	if seen[d] {
		return
	}
	seen[d] = true
	visit(d)
	for _, inline := range d.inline {
		if inline == nil {
			continue
		}
		inline.ensureIndexes()
		inline.walk(opts, seen, visit)
	}
	if !opts.Imported {
		return
	}
	for _, imp := range d.imports {
		if imp.Lazy && !opts.LazyImports {
			continue
		}
		target := imp.ResolvedDocument
		if target == nil {
			continue
		}
		if !opts.ExternalPackages && target.packageName != "" {
			continue
		}
		target.ensureIndexes()
		target.walk(opts, seen, visit)
	}
}

// GetFeatures returns every feature reachable per opts, in a stable
// document-then-discovery order with duplicates across shared imports
// collapsed.
func (d *Document) GetFeatures(opts QueryOptions) []Feature {
	d.ensureIndexes()
	var out []Feature
	d.walk(opts, make(map[*Document]bool), func(doc *Document) {
		out = append(out, doc.features...)
	})
	return out
}

// GetByKind returns every feature of the given kind reachable per opts.
func (d *Document) GetByKind(kind string, opts QueryOptions) []Feature {
	d.ensureIndexes()
	var out []Feature
	d.walk(opts, make(map[*Document]bool), func(doc *Document) {
		out = append(out, doc.byKind[kind]...)
	})
	return out
}

// GetByID returns every feature of the given kind with the given
// identifier, reachable per opts.
func (d *Document) GetByID(kind, id string, opts QueryOptions) []Feature {
	d.ensureIndexes()
	var out []Feature
	d.walk(opts, make(map[*Document]bool), func(doc *Document) {
		byID := doc.byKindAndID[kind]
		if byID == nil {
			return
		}
		out = append(out, byID[id]...)
	})
	return out
}

// GetOnlyAtID returns the single feature of the given kind/identifier
// reachable per opts. It is an error for zero or more than one match to
// exist; callers that expect the feature may not be present should use
// GetByID and check len() instead.
func (d *Document) GetOnlyAtID(kind, id string, opts QueryOptions) (Feature, error) {
	matches := d.GetByID(kind, id, opts)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no %s feature with identifier %q reachable from %s", kind, id, d.url)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%d %s features with identifier %q reachable from %s, expected exactly one", len(matches), kind, id, d.url)
	}
}

// GetWarnings returns every warning reachable per opts, own warnings first.
func (d *Document) GetWarnings(opts QueryOptions) []*warning.Warning {
	var out []*warning.Warning
	d.walk(opts, make(map[*Document]bool), func(doc *Document) {
		out = append(out, doc.warnings...)
	})
	return out
}
