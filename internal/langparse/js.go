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
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/kraklabs/fea/internal/model"
	"github.com/kraklabs/fea/internal/warning"
)

// JSDocument is a parsed JavaScript or TypeScript file: the Tree-sitter
// tree plus the bookkeeping every ParsedDocument needs. The tree is kept
// open for the lifetime of the document so scanners can walk it lazily;
// Close releases it. The analysis cache does not call Close when it drops
// a document.
type JSDocument struct {
	model.Base
	Tree *sitter.Tree
	Root *sitter.Node
}

// Close releases the underlying Tree-sitter tree. Safe to call more than
// once.
func (d *JSDocument) Close() {
	if d.Tree != nil {
		d.Tree.Close()
		d.Tree = nil
	}
}

// NodeRange translates a Tree-sitter node's span into a SourceRange
// anchored to this document, reusing Base's offset bookkeeping.
func (d *JSDocument) NodeRange(n *sitter.Node) warning.SourceRange {
	return d.SourceRangeFor(int(n.StartByte()), int(n.EndByte()))
}

// NodeText returns the source text covered by a Tree-sitter node.
func (d *JSDocument) NodeText(n *sitter.Node) string {
	return string(d.Contents()[n.StartByte():n.EndByte()])
}

// JSParser parses JavaScript and TypeScript using Tree-sitter, matching
// the node-walking contract (ChildByFieldName, StartPoint/EndPoint,
// HasError) the rest of the engine's scanners are written against.
type JSParser struct {
	typescript bool
	logger     *slog.Logger
}

// NewJSParser builds a Parser for plain JavaScript.
func NewJSParser(logger *slog.Logger) *JSParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSParser{logger: logger}
}

// NewTypeScriptParser builds a Parser for TypeScript, using the TS grammar
// instead of the plain JS one.
func NewTypeScriptParser(logger *slog.Logger) *JSParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSParser{typescript: true, logger: logger}
}

func (p *JSParser) Parse(url string, contents []byte, inline *model.InlineInfo) (model.ParsedDocument, error) {
	parser := sitter.NewParser()
	if p.typescript {
		parser.SetLanguage(typescript.GetLanguage())
	} else {
		parser.SetLanguage(javascript.GetLanguage())
	}

	tree, err := parser.ParseCtx(context.Background(), nil, contents)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse of %s: %w", url, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		if n := countTreeErrors(root); n > 0 {
			p.logger.Warn("langparse.js.syntax_errors", "url", url, "error_count", n)
		}
	}

	typ := "js"
	if p.typescript {
		typ = "typescript"
	}
	return &JSDocument{
		Base: newBaseFor(url, typ, contents, inline),
		Tree: tree,
		Root: root,
	}, nil
}

func countTreeErrors(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.IsError() {
		count++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		count += countTreeErrors(n.Child(i))
	}
	return count
}
