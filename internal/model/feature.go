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

// Feature is a resolved ScannedFeature: its Kinds/Identifiers are fixed,
// and any reference it holds to another document has been looked up
// against the document graph (or left nil/unresolved if the target could
// not be found).
type Feature interface {
	Kinds() []string
	Identifiers() []string
	SourceRange() warning.SourceRange
	Warnings() []*warning.Warning
}

type featureBase struct {
	sr  warning.SourceRange
	wrn []*warning.Warning
}

func (b featureBase) SourceRange() warning.SourceRange { return b.sr }
func (b featureBase) Warnings() []*warning.Warning      { return b.wrn }

// Import is a resolved edge to another Document. ResolvedDocument is nil
// when the target could not be loaded or parsed; a warning describing the
// failure is attached instead.
type Import struct {
	featureBase
	ImportKind       ImportKind
	URL              string
	Lazy             bool
	ResolvedDocument *Document
}

// NewImport builds a resolved Import feature. ResolvedDocument may be set
// afterward once the target has been looked up.
func NewImport(sr warning.SourceRange, kind ImportKind, url string, lazy bool) *Import {
	return &Import{featureBase: featureBase{sr: sr}, ImportKind: kind, URL: url, Lazy: lazy}
}

func (f *Import) Kinds() []string       { return []string{"import", string(f.ImportKind)} }
func (f *Import) Identifiers() []string { return nil }

// InlineDocument is a resolved inline <script>/<style> body: a Document in
// its own right, addressable at a synthesized URL.
type InlineDocument struct {
	featureBase
	Type     string
	Document *Document
}

// NewInlineDocument builds a resolved InlineDocument feature.
func NewInlineDocument(sr warning.SourceRange, typ string, doc *Document) *InlineDocument {
	return &InlineDocument{featureBase: featureBase{sr: sr}, Type: typ, Document: doc}
}

func (f *InlineDocument) Kinds() []string       { return []string{"inline-document", f.Type} }
func (f *InlineDocument) Identifiers() []string { return nil }

// Element is a resolved custom element definition.
type Element struct {
	featureBase
	TagName    string
	ClassName  string
	Attributes []string
}

// NewElement builds a resolved Element feature.
func NewElement(sr warning.SourceRange, tagName, className string, attrs []string) *Element {
	return &Element{featureBase: featureBase{sr: sr}, TagName: tagName, ClassName: className, Attributes: attrs}
}

func (f *Element) Kinds() []string       { return []string{"element"} }
func (f *Element) Identifiers() []string { return nonEmpty(f.TagName, f.ClassName) }

// PolymerElement extends Element with resolved behaviors/mixins. Behaviors
// holds only the entries that were matched to a Behavior feature; names
// that could not be matched are not recorded here.
type PolymerElement struct {
	Element
	Behaviors []*Behavior
	Mixins    []string
}

// NewPolymerElement builds a resolved PolymerElement feature.
func NewPolymerElement(sr warning.SourceRange, tagName, className string, behaviors []*Behavior, mixins []string) *PolymerElement {
	return &PolymerElement{
		Element:   *NewElement(sr, tagName, className, nil),
		Behaviors: behaviors,
		Mixins:    mixins,
	}
}

func (f *PolymerElement) Kinds() []string { return []string{"element", "polymer-element"} }

// Behavior is a resolved `Namespace.Behavior = {...}` declaration.
type Behavior struct {
	featureBase
	Name string
}

// NewBehavior builds a resolved Behavior feature.
func NewBehavior(sr warning.SourceRange, name string) *Behavior {
	return &Behavior{featureBase: featureBase{sr: sr}, Name: name}
}

func (f *Behavior) Kinds() []string       { return []string{"behavior"} }
func (f *Behavior) Identifiers() []string { return nonEmpty(f.Name) }

// Namespace is a resolved namespace object.
type Namespace struct {
	featureBase
	Name string
}

// NewNamespace builds a resolved Namespace feature.
func NewNamespace(sr warning.SourceRange, name string) *Namespace {
	return &Namespace{featureBase: featureBase{sr: sr}, Name: name}
}

func (f *Namespace) Kinds() []string       { return []string{"namespace"} }
func (f *Namespace) Identifiers() []string { return nonEmpty(f.Name) }

// Function is a resolved named function declaration.
type Function struct {
	featureBase
	Name string
}

// NewFunction builds a resolved Function feature.
func NewFunction(sr warning.SourceRange, name string) *Function {
	return &Function{featureBase: featureBase{sr: sr}, Name: name}
}

func (f *Function) Kinds() []string       { return []string{"function"} }
func (f *Function) Identifiers() []string { return nonEmpty(f.Name) }

// Reference is a resolved identifier use. Target is nil when the resolver
// found no feature defining that identifier; that is not itself a
// warning; many identifiers refer to globals the analyzer never scans.
type Reference struct {
	featureBase
	Identifier string
	Target     Feature
}

// NewReference builds a resolved Reference feature. Target may be set
// afterward once the identifier has been looked up.
func NewReference(sr warning.SourceRange, identifier string) *Reference {
	return &Reference{featureBase: featureBase{sr: sr}, Identifier: identifier}
}

func (f *Reference) Kinds() []string       { return []string{"reference"} }
func (f *Reference) Identifiers() []string { return nonEmpty(f.Identifier) }
