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

package langscan

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/fea/internal/langparse"
	"github.com/kraklabs/fea/internal/model"
	"github.com/kraklabs/fea/internal/warning"
)

// JSScanner walks a Tree-sitter JS/TS AST looking for the Polymer-era
// feature vocabulary (customElements.define/Polymer() element
// registration, Namespace.Behavior assignment, namespace objects, plain
// functions) plus ES module imports and bare identifier references.
type JSScanner struct{}

func (JSScanner) Scan(pd model.ParsedDocument) ([]model.ScannedFeature, []*warning.Warning, error) {
	doc, ok := pd.(*langparse.JSDocument)
	if !ok {
		return nil, nil, fmt.Errorf("js scanner given non-JS document %s", pd.URL())
	}
	if doc.Root == nil {
		return nil, nil, nil
	}

	s := &jsScanState{doc: doc}
	s.walk(doc.Root)
	return s.features, s.warnings, nil
}

type jsScanState struct {
	doc      *langparse.JSDocument
	features []model.ScannedFeature
	warnings []*warning.Warning
}

func (s *jsScanState) walk(n *sitter.Node) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "import_statement":
		s.scanImportStatement(n)
	case "function_declaration":
		s.scanFunctionDeclaration(n)
	case "call_expression":
		s.scanCallExpression(n)
	case "assignment_expression":
		s.scanAssignmentExpression(n)
	case "variable_declarator":
		s.scanVariableDeclarator(n)
	case "identifier":
		s.maybeScanReference(n)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		s.walk(n.Child(i))
	}
}

func (s *jsScanState) scanImportStatement(n *sitter.Node) {
	srcNode := n.ChildByFieldName("source")
	if srcNode == nil {
		return
	}
	url := strings.Trim(s.doc.NodeText(srcNode), `"'`)
	if url == "" {
		return
	}
	imp := &model.ScannedImport{ImportKind: model.ImportKindJSImport, URL: url}
	imp.SR = s.doc.NodeRange(n)
	s.features = append(s.features, imp)
}

func (s *jsScanState) scanFunctionDeclaration(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	fn := &model.ScannedFunction{Name: s.doc.NodeText(nameNode)}
	fn.SR = s.doc.NodeRange(n)
	s.features = append(s.features, fn)
}

// scanCallExpression recognizes `customElements.define('tag-name', Class)`
// and the legacy `Polymer({is: 'tag-name', ...})` registration calls.
func (s *jsScanState) scanCallExpression(n *sitter.Node) {
	fnNode := n.ChildByFieldName("function")
	argsNode := n.ChildByFieldName("arguments")
	if fnNode == nil || argsNode == nil {
		return
	}
	text := s.doc.NodeText(fnNode)

	switch text {
	case "customElements.define", "window.customElements.define":
		s.scanCustomElementsDefine(n, argsNode)
	case "Polymer":
		s.scanPolymerCall(n, argsNode)
	}
}

func (s *jsScanState) scanCustomElementsDefine(n, argsNode *sitter.Node) {
	if argsNode.NamedChildCount() < 1 {
		return
	}
	tagArg := argsNode.NamedChild(0)
	if tagArg.Type() != "string" {
		return
	}
	tag := strings.Trim(s.doc.NodeText(tagArg), `"'`)
	if tag == "" {
		return
	}
	el := &model.ScannedElement{TagName: tag}
	if argsNode.NamedChildCount() > 1 {
		el.ClassName = s.doc.NodeText(argsNode.NamedChild(1))
	}
	el.SR = s.doc.NodeRange(n)
	s.features = append(s.features, el)
}

func (s *jsScanState) scanPolymerCall(n, argsNode *sitter.Node) {
	if argsNode.NamedChildCount() < 1 {
		return
	}
	obj := argsNode.NamedChild(0)
	if obj.Type() != "object" {
		return
	}
	el := &model.ScannedPolymerElement{}
	el.SR = s.doc.NodeRange(n)
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		switch strings.Trim(s.doc.NodeText(key), `"'`) {
		case "is":
			el.TagName = strings.Trim(s.doc.NodeText(value), `"'`)
		case "behaviors":
			el.Behaviors = s.collectArrayIdentifiers(value)
		}
	}
	if el.TagName == "" {
		s.warnings = append(s.warnings, warning.New("polymer-missing-is",
			"Polymer() call is missing an \"is\" property", el.SR, warning.WarningSeverity))
		return
	}
	s.features = append(s.features, el)
}

func (s *jsScanState) collectArrayIdentifiers(n *sitter.Node) []string {
	if n.Type() != "array" {
		return nil
	}
	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, s.doc.NodeText(n.NamedChild(i)))
	}
	return out
}

// scanAssignmentExpression recognizes `MyNamespace.MyBehavior = {...}`
// behavior declarations, identified by the object literal on the right and
// a dotted, capitalized property name on the left.
func (s *jsScanState) scanAssignmentExpression(n *sitter.Node) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "member_expression" || right.Type() != "object" {
		return
	}
	prop := left.ChildByFieldName("property")
	if prop == nil {
		return
	}
	if propName := s.doc.NodeText(prop); propName == "" || propName[0] < 'A' || propName[0] > 'Z' {
		return
	}
	name := s.doc.NodeText(left)
	behavior := &model.ScannedBehavior{Name: name}
	behavior.SR = s.doc.NodeRange(n)
	s.features = append(s.features, behavior)
}

// scanVariableDeclarator recognizes `var Foo = Foo || {}` namespace
// initialization and `var Foo = {}` plain namespace objects.
func (s *jsScanState) scanVariableDeclarator(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil || nameNode.Type() != "identifier" {
		return
	}
	name := s.doc.NodeText(nameNode)
	isNamespace := false
	switch valueNode.Type() {
	case "object":
		isNamespace = true
	case "binary_expression":
		if right := valueNode.ChildByFieldName("right"); right != nil && right.Type() == "object" {
			isNamespace = true
		}
	}
	if !isNamespace || len(name) == 0 || name[0] < 'A' || name[0] > 'Z' {
		return
	}
	ns := &model.ScannedNamespace{Name: name}
	ns.SR = s.doc.NodeRange(n)
	s.features = append(s.features, ns)
}

// maybeScanReference records a bare capitalized identifier use outside of
// a declaration position as a reference candidate, letting the resolver
// later decide whether it points at a known feature.
func (s *jsScanState) maybeScanReference(n *sitter.Node) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	switch parent.Type() {
	case "function_declaration", "variable_declarator", "import_statement",
		"member_expression", "formal_parameters":
		return
	}
	name := s.doc.NodeText(n)
	if len(name) == 0 || name[0] < 'A' || name[0] > 'Z' {
		return
	}
	ref := &model.ScannedReference{Identifier: name}
	ref.SR = s.doc.NodeRange(n)
	s.features = append(s.features, ref)
}
