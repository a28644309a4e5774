// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package graphstore

import (
	"strings"

	"github.com/kraklabs/fea/internal/model"
)

// Relation names for the exported graph.
const (
	RelationDocument      = "fea_document"
	RelationFeature       = "fea_feature"
	RelationImportEdge    = "fea_import_edge"
	RelationReferenceEdge = "fea_reference_edge"
)

// ExportGraph flattens doc and every document transitively reachable
// through its import edges into relation rows in s. Calling it more than
// once for documents already exported is safe but will duplicate rows;
// callers analyzing a project in one pass should export exactly once per
// root document.
func ExportGraph(s *Store, doc *model.Document) {
	seen := make(map[*model.Document]bool)
	exportDocument(s, doc, seen)
}

func exportDocument(s *Store, doc *model.Document, seen map[*model.Document]bool) {
	if doc == nil || seen[doc] {
		return
	}
	seen[doc] = true

	s.Insert(RelationDocument, Row{
		"url":          doc.URL(),
		"package_name": doc.PackageName(),
		"is_inline":    doc.IsInline(),
		"state":        doc.State().String(),
	})

	for i, f := range doc.OwnFeatures() {
		kinds := f.Kinds()
		primaryKind := ""
		if len(kinds) > 0 {
			primaryKind = kinds[0]
		}
		ids := f.Identifiers()
		sr := f.SourceRange()

		s.Insert(RelationFeature, Row{
			"document_url": doc.URL(),
			"index":        i,
			"kind":         primaryKind,
			"kinds":        strings.Join(kinds, ","),
			"identifier":   strings.Join(ids, ","),
			"start_line":   sr.Start.Line,
			"start_column": sr.Start.Column,
			"end_line":     sr.End.Line,
		})

		switch feat := f.(type) {
		case *model.Import:
			targetURL := feat.URL
			if feat.ResolvedDocument != nil {
				targetURL = feat.ResolvedDocument.URL()
			}
			s.Insert(RelationImportEdge, Row{
				"from_url": doc.URL(),
				"to_url":   targetURL,
				"kind":     string(feat.ImportKind),
				"lazy":     feat.Lazy,
				"resolved": feat.ResolvedDocument != nil,
			})
		case *model.Reference:
			row := Row{
				"document_url": doc.URL(),
				"identifier":   feat.Identifier,
				"resolved":     feat.Target != nil,
			}
			if feat.Target != nil {
				targetIDs := feat.Target.Identifiers()
				if len(targetIDs) > 0 {
					row["target_identifier"] = targetIDs[0]
				}
				targetKinds := feat.Target.Kinds()
				if len(targetKinds) > 0 {
					row["target_kind"] = targetKinds[0]
				}
			}
			s.Insert(RelationReferenceEdge, row)
		case *model.InlineDocument:
			exportDocument(s, feat.Document, seen)
		}
	}

	for _, imp := range doc.Imports() {
		if imp.ResolvedDocument != nil {
			exportDocument(s, imp.ResolvedDocument, seen)
		}
	}
}
