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

// HTMLNode is one open tag, its attributes, and (for <script>/<style>) the
// raw inner text, as found by the tokenizer. Nesting is not modeled beyond
// this flat list: the default HTML scanner only needs top-level/known
// elements (<link>, <script>, <style>, <dom-module>, custom-element tags),
// not a full DOM tree.
type HTMLNode struct {
	Tag            string
	Attrs          map[string]string
	InnerText      string
	StartOffset    int // start of the opening tag
	TagEndOffset   int // end of the opening tag (start of InnerText)
	InnerEndOffset int // end of InnerText (start of the closing tag for script/style; TagEndOffset otherwise)
	EndOffset      int // end of the closing tag for script/style; TagEndOffset for every other tag
	CommentBefore  string
}

// HTMLDocument is a parsed HTML file: a flat list of the tags the scanner
// cares about, in document order.
type HTMLDocument struct {
	model.Base
	Nodes []HTMLNode
}

// rawTextTags are elements whose body is not itself HTML and must be
// captured verbatim rather than tokenized further.
var rawTextTags = map[string]bool{"script": true, "style": true}

// voidTags never have a closing tag or body.
var voidTags = map[string]bool{
	"link": true, "meta": true, "br": true, "img": true, "input": true,
	"hr": true, "base": true, "area": true, "col": true, "embed": true,
	"source": true, "track": true, "wbr": true,
}

// HTMLParser is a small hand-rolled tokenizer: it finds tag boundaries,
// attribute key/value pairs, and raw-text element bodies without building
// a full DOM, which is all the default scanner needs.
type HTMLParser struct{}

func (HTMLParser) Parse(url string, contents []byte, inline *model.InlineInfo) (model.ParsedDocument, error) {
	doc := &HTMLDocument{Base: newBaseFor(url, "html", contents, inline)}
	s := string(contents)
	i := 0
	var lastComment string
	for i < len(s) {
		lt := strings.IndexByte(s[i:], '<')
		if lt < 0 {
			break
		}
		i += lt
		if strings.HasPrefix(s[i:], "<!--") {
			end := strings.Index(s[i+4:], "-->")
			if end < 0 {
				break
			}
			lastComment = strings.TrimSpace(s[i+4 : i+4+end])
			i += 4 + end + 3
			continue
		}
		if strings.HasPrefix(s[i:], "</") {
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				break
			}
			i += end + 1
			continue
		}
		start := i
		tagEnd := strings.IndexByte(s[i:], '>')
		if tagEnd < 0 {
			break
		}
		tagEnd += i
		selfClosing := tagEnd > i && s[tagEnd-1] == '/'
		tagContent := s[i+1 : tagEnd]
		if selfClosing {
			tagContent = strings.TrimSuffix(tagContent, "/")
		}
		tag, attrs := parseTag(tagContent)
		node := HTMLNode{
			Tag:            tag,
			Attrs:          attrs,
			StartOffset:    start,
			TagEndOffset:   tagEnd + 1,
			InnerEndOffset: tagEnd + 1,
			EndOffset:      tagEnd + 1,
			CommentBefore:  lastComment,
		}
		lastComment = ""
		i = tagEnd + 1

		if rawTextTags[tag] && !selfClosing {
			closeTag := "</" + tag
			closeIdx := indexFold(s, closeTag, i)
			if closeIdx < 0 {
				node.InnerText = s[i:]
				node.InnerEndOffset = len(s)
				node.EndOffset = len(s)
				i = len(s)
			} else {
				node.InnerText = s[i:closeIdx]
				node.InnerEndOffset = closeIdx
				closeEnd := strings.IndexByte(s[closeIdx:], '>')
				if closeEnd < 0 {
					node.EndOffset = len(s)
					i = len(s)
				} else {
					node.EndOffset = closeIdx + closeEnd + 1
					i = node.EndOffset
				}
			}
		} else if !voidTags[tag] && !selfClosing {
			node.InnerEndOffset = tagEnd + 1
			node.EndOffset = tagEnd + 1
		}

		doc.Nodes = append(doc.Nodes, node)
	}
	return doc, nil
}

func parseTag(content string) (string, map[string]string) {
	content = strings.TrimSpace(content)
	fields := splitTagFields(content)
	if len(fields) == 0 {
		return "", nil
	}
	tag := strings.ToLower(fields[0])
	attrs := make(map[string]string)
	for _, f := range fields[1:] {
		if f == "" {
			continue
		}
		if eq := strings.IndexByte(f, '='); eq >= 0 {
			key := strings.ToLower(strings.TrimSpace(f[:eq]))
			val := strings.Trim(strings.TrimSpace(f[eq+1:]), `"'`)
			attrs[key] = val
		} else {
			attrs[strings.ToLower(f)] = ""
		}
	}
	return tag, attrs
}

// splitTagFields splits tag content on whitespace while keeping quoted
// attribute values (which may themselves contain spaces) intact.
func splitTagFields(s string) []string {
	var fields []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

func indexFold(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	idx := strings.Index(strings.ToLower(s[from:]), strings.ToLower(substr))
	if idx < 0 {
		return -1
	}
	return from + idx
}
