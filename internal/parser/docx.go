package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DocBlock is one paragraph of an imported document. Level is the heading
// rank (1-6), or 0 for body text.
type DocBlock struct {
	Level int
	Text  string
}

// ReadDOCX extracts the paragraphs of a .docx file, keeping heading styles
// as levels.
func ReadDOCX(r io.Reader) ([]DocBlock, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var blocks []DocBlock
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		blocks = append(blocks, DocBlock{Level: docxHeadingLevel(para), Text: text})
	}
	return blocks, nil
}

// BlocksToMarkdown writes blocks as ATX headings and paragraphs separated by
// blank lines.
func BlocksToMarkdown(blocks []DocBlock) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		if b.Level > 0 {
			sb.WriteString(strings.Repeat("#", b.Level))
			sb.WriteString(" ")
			sb.WriteString(strings.Join(strings.Fields(b.Text), " "))
		} else {
			sb.WriteString(b.Text)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// DOCXToMarkdown converts a Word document into Markdown post source.
func DOCXToMarkdown(r io.Reader) (string, error) {
	blocks, err := ReadDOCX(r)
	if err != nil {
		return "", err
	}
	return BlocksToMarkdown(blocks), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
