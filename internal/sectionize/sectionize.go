// Package sectionize groups the flat heading/content runs produced by the
// Markdown renderer into nested <section> elements, one per heading, so that
// styling and ARIA landmarks can be scoped per heading level.
package sectionize

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rank returns the heading rank (1-6) of an element node, or 0 if the node
// is not a heading.
func Rank(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	switch n.Data {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// Sectionize rewrites every sibling list under root so that each h2..h6
// heading and the siblings that follow it, up to the next heading of the
// same or a shallower rank, become children of a new section element.
// Deeper ranks are wrapped first, which nests an h3 section inside the
// enclosing h2 section. h1 headings are left alone. The tree is modified in
// place and root is returned.
func Sectionize(root *html.Node) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Sectionize(c)
	}
	if !hasHeadingChild(root) {
		return root
	}

	// Detach the children first so the rewrite never edits the list it walks.
	kids := detachChildren(root)
	for rank := 6; rank > 1; rank-- {
		kids = wrapRank(kids, rank)
	}
	for _, k := range kids {
		root.AppendChild(k)
	}
	return root
}

func hasHeadingChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if Rank(c) > 1 {
			return true
		}
	}
	return false
}

func detachChildren(n *html.Node) []*html.Node {
	var kids []*html.Node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		kids = append(kids, c)
		c = next
	}
	return kids
}

// wrapRank replaces every run that starts at a heading of the given rank with
// a single section node. Runs end before the next heading of rank <= rank.
func wrapRank(nodes []*html.Node, rank int) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for i := 0; i < len(nodes); {
		if Rank(nodes[i]) != rank {
			out = append(out, nodes[i])
			i++
			continue
		}
		end := i + 1
		for end < len(nodes) {
			if r := Rank(nodes[end]); r > 0 && r <= rank {
				break
			}
			end++
		}
		out = append(out, newSection(rank, nodes[i:end]))
		i = end
	}
	return out
}

func newSection(rank int, children []*html.Node) *html.Node {
	section := &html.Node{
		Type:     html.ElementNode,
		Data:     "section",
		DataAtom: atom.Section,
		Attr: []html.Attribute{
			{Key: "data-heading-rank", Val: strconv.Itoa(rank)},
		},
	}
	// A heading without an id yields a section without a label.
	if id, ok := Attr(children[0], "id"); ok {
		section.Attr = append(section.Attr, html.Attribute{Key: "aria-labelledby", Val: id})
	}
	for _, c := range children {
		section.AppendChild(c)
	}
	return section
}

// Attr returns the value of the named attribute on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
