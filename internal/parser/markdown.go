package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// NewMarkdown returns the goldmark instance every post is rendered with:
// GitHub-flavoured Markdown, typographic punctuation, generated heading ids
// and raw HTML passthrough for the inline markup MDX posts carry.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
}

// Heading is one entry of a post's table of contents.
type Heading struct {
	Level int
	Title string
	ID    string
}

// Outline returns the document's headings in order, with the same ids the
// renderer assigns.
func Outline(src []byte) []Heading {
	doc := NewMarkdown().Parser().Parse(text.NewReader(src))

	var headings []Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		entry := Heading{
			Level: h.Level,
			Title: strings.TrimSpace(string(h.Text(src))),
		}
		if v, ok := h.AttributeString("id"); ok {
			if id, ok := v.([]byte); ok {
				entry.ID = string(id)
			}
		}
		headings = append(headings, entry)
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// PlainText renders Markdown and returns its visible text with one line per
// block element.
func PlainText(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := NewMarkdown().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		body = doc
	}
	return BlockText(body), nil
}
