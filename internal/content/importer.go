package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jbukuts/folio/internal/parser"
)

// ErrPostExists is returned when an import would overwrite a post.
var ErrPostExists = errors.New("post already exists")

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify lowercases s and reduces it to dash-separated alphanumerics.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = strings.TrimRight(s[:50], "-")
	}
	return s
}

// ImportRequest describes a document to turn into a post.
type ImportRequest struct {
	Slug    string // Derived from the first heading when empty.
	Desc    string
	Tags    []string
	Created time.Time
}

// ImportDOCX converts a Word document into posts/<slug>/index.md under dir
// and returns the written path.
func ImportDOCX(dir string, r io.Reader, req ImportRequest) (string, error) {
	md, err := parser.DOCXToMarkdown(r)
	if err != nil {
		return "", err
	}
	return writePost(dir, []byte(md), req)
}

func writePost(dir string, body []byte, req ImportRequest) (string, error) {
	outline := parser.Outline(body)
	if len(outline) == 0 {
		return "", fmt.Errorf("document has no headings to take a title from")
	}

	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(outline[0].Title)
	}
	if slug == "" {
		return "", fmt.Errorf("cannot derive a slug from %q", outline[0].Title)
	}

	created := req.Created
	if created.IsZero() {
		created = time.Now()
	}
	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	meta, err := yaml.Marshal(frontMatter{
		Desc:    req.Desc,
		Tags:    tags,
		Created: created.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n")
	buf.Write(body)

	postDir := filepath.Join(dir, "posts", slug)
	path := filepath.Join(postDir, "index.md")
	for ext := range parser.PostExtensions {
		for _, existing := range []string{filepath.Join(postDir, "index"+ext), postDir + ext} {
			if _, err := os.Stat(existing); err == nil {
				return "", fmt.Errorf("%w: %s", ErrPostExists, slug)
			}
		}
	}
	if err := os.MkdirAll(postDir, 0o755); err != nil {
		return "", fmt.Errorf("create post dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write post: %w", err)
	}
	return path, nil
}
