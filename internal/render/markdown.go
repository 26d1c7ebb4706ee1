package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jbukuts/folio/internal/parser"
	"github.com/jbukuts/folio/internal/sectionize"
)

// Markdown renders a post body to HTML. The h1 is dropped because the page
// prints the title itself, every other heading becomes a self-link, and the
// result is grouped into nested sections by heading rank.
func Markdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := parser.NewMarkdown().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	root, err := parseFragment(&buf)
	if err != nil {
		return "", err
	}
	doc := goquery.NewDocumentFromNode(root)
	dropTitles(doc)
	linkHeadings(doc)
	sectionize.Sectionize(root)

	return renderChildren(root)
}

// Inline renders a short description such as a project blurb. Single
// newlines become line breaks and nothing is sectionized.
func Inline(src string) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func parseFragment(buf *bytes.Buffer) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(buf, context)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

func renderChildren(root *html.Node) (template.HTML, error) {
	var out bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return template.HTML(out.String()), nil
}

// dropTitles removes every h1. The page template prints the title.
func dropTitles(doc *goquery.Document) {
	doc.Find("h1").Remove()
}

// linkHeadings wraps the contents of each identified, non-empty heading in a
// link to itself.
func linkHeadings(doc *goquery.Document) {
	doc.Find("h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		h := s.Get(0)
		id, ok := s.Attr("id")
		if !ok || id == "" || parser.TextContent(h) == "" {
			return
		}
		a := &html.Node{
			Type:     html.ElementNode,
			Data:     "a",
			DataAtom: atom.A,
			Attr:     []html.Attribute{{Key: "href", Val: "#" + id}},
		}
		for c := h.FirstChild; c != nil; {
			next := c.NextSibling
			h.RemoveChild(c)
			a.AppendChild(c)
			c = next
		}
		h.AppendChild(a)
	})
}
