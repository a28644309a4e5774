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

import "github.com/kraklabs/fea/internal/warning"

// ScannedFeature is the language-neutral record a scanner emits while
// walking a ParsedDocument. It carries no resolved references to other
// documents yet — that happens when the analysis context turns a
// ScannedDocument into a Document.
type ScannedFeature interface {
	Kinds() []string
	Identifiers() []string
	SourceRange() warning.SourceRange
}

// scannedBase is embedded by every concrete ScannedFeature.
type scannedBase struct {
	SR warning.SourceRange
}

func (b scannedBase) SourceRange() warning.SourceRange { return b.SR }

// ImportKind distinguishes why an import edge exists so the resolver can
// decide whether it participates in the default transitive traversal.
type ImportKind string

const (
	// ImportKindHTMLImport is a `<link rel="import">`/`rel="lazy-import"`.
	ImportKindHTMLImport ImportKind = "html-import"
	// ImportKindHTMLScript is a `<script src="...">`.
	ImportKindHTMLScript ImportKind = "html-script"
	// ImportKindHTMLStyle is a `<link rel="stylesheet">`.
	ImportKindHTMLStyle ImportKind = "html-style"
	// ImportKindJSImport is an ES module `import`/`export ... from`.
	ImportKindJSImport ImportKind = "js-import"
)

// ScannedImport is an edge to another document, discovered but not yet
// loaded or resolved. Lazy imports (rel="lazy-import") are real edges for
// graph-completeness purposes but are excluded from the default transitive
// query unless QueryOptions.LazyImports is set.
type ScannedImport struct {
	scannedBase
	ImportKind ImportKind
	URL        string // as written in source, not yet canonicalized
	Lazy       bool
}

func (s *ScannedImport) Kinds() []string       { return []string{"import", string(s.ImportKind)} }
func (s *ScannedImport) Identifiers() []string { return nil }

// ScannedInlineDocument marks a sub-document embedded in a parent (a
// <script> or <style> body). The analysis context synthesizes a URL for it
// and analyzes it as if it were its own file, attributing any warnings back
// to the parent's coordinate space via the stored offset.
type ScannedInlineDocument struct {
	scannedBase
	Type                string // "js" or "css"
	Contents            string
	AttachedCommentText string
	LocationOffset      int // byte offset of Contents' start within the parent
}

func (s *ScannedInlineDocument) Kinds() []string       { return []string{"inline-document", s.Type} }
func (s *ScannedInlineDocument) Identifiers() []string { return nil }

// ScannedElement is a custom element discovered in markup or script (a
// hyphenated tag in HTML, or a customElements.define call).
type ScannedElement struct {
	scannedBase
	TagName    string
	ClassName  string
	Attributes []string
}

func (s *ScannedElement) Kinds() []string       { return []string{"element"} }
func (s *ScannedElement) Identifiers() []string { return nonEmpty(s.TagName, s.ClassName) }

// ScannedPolymerElement extends ScannedElement with the Polymer-specific
// behaviors/mixins vocabulary.
type ScannedPolymerElement struct {
	ScannedElement
	Behaviors []string
	Mixins    []string
}

func (s *ScannedPolymerElement) Kinds() []string {
	return []string{"element", "polymer-element"}
}

// ScannedBehavior is a `MyNamespace.MyBehavior = {...}` declaration.
type ScannedBehavior struct {
	scannedBase
	Name string
}

func (s *ScannedBehavior) Kinds() []string       { return []string{"behavior"} }
func (s *ScannedBehavior) Identifiers() []string { return nonEmpty(s.Name) }

// ScannedNamespace is a top-level `var Foo = Foo || {}`-style namespace
// object, used to group behaviors/elements/functions under a common prefix.
type ScannedNamespace struct {
	scannedBase
	Name string
}

func (s *ScannedNamespace) Kinds() []string       { return []string{"namespace"} }
func (s *ScannedNamespace) Identifiers() []string { return nonEmpty(s.Name) }

// ScannedFunction is a named function declaration.
type ScannedFunction struct {
	scannedBase
	Name string
}

func (s *ScannedFunction) Kinds() []string       { return []string{"function"} }
func (s *ScannedFunction) Identifiers() []string { return nonEmpty(s.Name) }

// ScannedReference is a bare identifier use that may point at a feature
// defined elsewhere in the graph; it is left unresolved until the document
// graph resolution pass runs.
type ScannedReference struct {
	scannedBase
	Identifier string
}

func (s *ScannedReference) Kinds() []string       { return []string{"reference"} }
func (s *ScannedReference) Identifiers() []string { return nonEmpty(s.Identifier) }

func nonEmpty(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// ScannedDocument is the output of running a document's scanners: its
// parsed form, the features found directly in it (not transitively), and
// any warnings raised while scanning. It is immutable once produced.
type ScannedDocument struct {
	Document ParsedDocument
	Features []ScannedFeature
	Warnings []*warning.Warning
	// IsInline is true for synthesized sub-documents (inline scripts/styles).
	IsInline bool
}

// Imports returns the ScannedImport features in discovery order.
func (d *ScannedDocument) Imports() []*ScannedImport {
	var out []*ScannedImport
	for _, f := range d.Features {
		if imp, ok := f.(*ScannedImport); ok {
			out = append(out, imp)
		}
	}
	return out
}

// InlineDocuments returns the ScannedInlineDocument features in discovery order.
func (d *ScannedDocument) InlineDocuments() []*ScannedInlineDocument {
	var out []*ScannedInlineDocument
	for _, f := range d.Features {
		if inline, ok := f.(*ScannedInlineDocument); ok {
			out = append(out, inline)
		}
	}
	return out
}
