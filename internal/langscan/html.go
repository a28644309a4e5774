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

	"github.com/kraklabs/fea/internal/langparse"
	"github.com/kraklabs/fea/internal/model"
	"github.com/kraklabs/fea/internal/warning"
)

// HTMLScanner finds imports, inline scripts/styles, dom-module elements,
// and custom-element tags in an HTMLDocument.
type HTMLScanner struct{}

func (HTMLScanner) Scan(pd model.ParsedDocument) ([]model.ScannedFeature, []*warning.Warning, error) {
	doc, ok := pd.(*langparse.HTMLDocument)
	if !ok {
		return nil, nil, fmt.Errorf("html scanner given non-HTML document %s", pd.URL())
	}

	var features []model.ScannedFeature
	var warnings []*warning.Warning
	var pendingDomModuleID string

	for _, n := range doc.Nodes {
		sr := doc.SourceRangeFor(n.StartOffset, n.EndOffset)

		switch n.Tag {
		case "link":
			rel := strings.ToLower(n.Attrs["rel"])
			href := n.Attrs["href"]
			switch rel {
			case "import", "lazy-import":
				if href == "" {
					warnings = append(warnings, warning.New("missing-href",
						`<link rel="import"> is missing an href attribute`, sr, warning.WarningSeverity))
					continue
				}
				imp := &model.ScannedImport{ImportKind: model.ImportKindHTMLImport, URL: href, Lazy: rel == "lazy-import"}
				imp.SR = sr
				features = append(features, imp)
			case "stylesheet":
				if href == "" {
					continue
				}
				imp := &model.ScannedImport{ImportKind: model.ImportKindHTMLStyle, URL: href}
				imp.SR = sr
				features = append(features, imp)
			}

		case "script":
			if src := n.Attrs["src"]; src != "" {
				imp := &model.ScannedImport{ImportKind: model.ImportKindHTMLScript, URL: src}
				imp.SR = sr
				features = append(features, imp)
				continue
			}
			if strings.TrimSpace(n.InnerText) == "" {
				continue
			}
			if t := strings.ToLower(n.Attrs["type"]); t != "" && t != "text/javascript" && t != "application/javascript" && t != "module" {
				// non-JS script blocks (e.g. text/html templates) are not analyzed as JS
				continue
			}
			inline := &model.ScannedInlineDocument{
				Type:                "js",
				Contents:            n.InnerText,
				AttachedCommentText: n.CommentBefore,
				LocationOffset:      n.TagEndOffset,
			}
			inline.SR = doc.SourceRangeFor(n.TagEndOffset, n.InnerEndOffset)
			features = append(features, inline)

		case "style":
			if strings.TrimSpace(n.InnerText) == "" {
				continue
			}
			inline := &model.ScannedInlineDocument{
				Type:           "css",
				Contents:       n.InnerText,
				LocationOffset: n.TagEndOffset,
			}
			inline.SR = doc.SourceRangeFor(n.TagEndOffset, n.InnerEndOffset)
			features = append(features, inline)

		case "dom-module":
			pendingDomModuleID = n.Attrs["id"]

		default:
			if !strings.Contains(n.Tag, "-") {
				continue
			}
			el := &model.ScannedElement{TagName: n.Tag}
			el.SR = sr
			if pendingDomModuleID != "" {
				el.ClassName = pendingDomModuleID
				pendingDomModuleID = ""
			}
			features = append(features, el)
		}
	}

	return features, warnings, nil
}
