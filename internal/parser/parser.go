// Package parser reads the source formats the site is authored in:
// Markdown/MDX posts with YAML front matter, Word documents that are
// imported as posts, and the resume PDF.
package parser

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// PostExtensions lists the file extensions loaded as posts.
var PostExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

// IsPostSource reports whether filename is a Markdown post source.
func IsPostSource(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return PostExtensions[ext]
}

// IsImportable reports whether filename can be converted into a post.
func IsImportable(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".docx")
}

// ErrUnterminatedFrontMatter is returned when an opening "---" has no
// matching closing line.
var ErrUnterminatedFrontMatter = errors.New("unterminated front matter")

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// document body. A document without front matter returns nil meta and the
// source unchanged.
func SplitFrontMatter(src []byte) (meta, body []byte, err error) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	first, rest, ok := cutLine(src)
	if !ok || string(bytes.TrimRight(first, " \t\r")) != "---" {
		return nil, src, nil
	}

	start := len(src) - len(rest)
	for pos := start; pos < len(src); {
		line, next, _ := cutLine(src[pos:])
		if string(bytes.TrimRight(line, " \t\r")) == "---" {
			return src[start:pos], src[len(src)-len(next):], nil
		}
		pos = len(src) - len(next)
	}
	return nil, nil, ErrUnterminatedFrontMatter
}

// cutLine returns the first line of b without its newline and the remainder.
// ok is false when b is empty.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i], b[i+1:], true
	}
	return b, nil, true
}
