// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package langparse

import "testing"

func TestHTMLParser_LinkAndScriptTags(t *testing.T) {
	doc, err := HTMLParser{}.Parse("index.html", []byte(
		`<link rel="import" href="a.html"><script src="b.js"></script>`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	html := doc.(*HTMLDocument)
	if len(html.Nodes) != 2 {
		t.Fatalf("Nodes = %+v, want 2", html.Nodes)
	}
	if html.Nodes[0].Tag != "link" || html.Nodes[0].Attrs["href"] != "a.html" {
		t.Errorf("Nodes[0] = %+v", html.Nodes[0])
	}
	if html.Nodes[1].Tag != "script" || html.Nodes[1].Attrs["src"] != "b.js" {
		t.Errorf("Nodes[1] = %+v", html.Nodes[1])
	}
}

func TestHTMLParser_InlineScriptBody(t *testing.T) {
	doc, err := HTMLParser{}.Parse("index.html", []byte(`<script>var x = 1;</script>`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	html := doc.(*HTMLDocument)
	if len(html.Nodes) != 1 || html.Nodes[0].InnerText != "var x = 1;" {
		t.Fatalf("Nodes = %+v, want inner text \"var x = 1;\"", html.Nodes)
	}
}

func TestHTMLParser_VoidTagHasNoInnerText(t *testing.T) {
	doc, err := HTMLParser{}.Parse("index.html", []byte(`<img src="a.png"><p>text</p>`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	html := doc.(*HTMLDocument)
	if len(html.Nodes) != 2 {
		t.Fatalf("Nodes = %+v, want 2", html.Nodes)
	}
	if html.Nodes[0].Tag != "img" {
		t.Errorf("Nodes[0].Tag = %q, want img", html.Nodes[0].Tag)
	}
	if html.Nodes[0].InnerText != "" {
		t.Errorf("Nodes[0].InnerText = %q, want empty", html.Nodes[0].InnerText)
	}
}

func TestHTMLParser_CommentBeforeTag(t *testing.T) {
	doc, err := HTMLParser{}.Parse("index.html", []byte(`<!-- note --><div></div>`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	html := doc.(*HTMLDocument)
	if len(html.Nodes) != 1 || html.Nodes[0].CommentBefore != "note" {
		t.Fatalf("Nodes = %+v, want CommentBefore \"note\"", html.Nodes)
	}
}

func TestHTMLParser_SelfClosingCustomElement(t *testing.T) {
	doc, err := HTMLParser{}.Parse("index.html", []byte(`<my-app/>`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	html := doc.(*HTMLDocument)
	if len(html.Nodes) != 1 || html.Nodes[0].Tag != "my-app" {
		t.Fatalf("Nodes = %+v, want one my-app node", html.Nodes)
	}
}
