package content

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jbukuts/folio/internal/parser"
	"gopkg.in/yaml.v3"
)

const (
	excerptLength  = 250
	wordsPerMinute = 200
	tocMaxDepth    = 3
)

// Post is a single blog post.
type Post struct {
	Slug        string
	Title       string
	Desc        string
	Tags        []string
	Created     time.Time
	Updated     time.Time
	Content     string // Markdown body without front matter.
	Excerpt     string
	ReadingTime int // Minutes.
	WordCount   int
	TOC         []parser.Heading
	SourcePath  string
}

type frontMatter struct {
	Desc    string   `yaml:"desc"`
	Tags    []string `yaml:"tags"`
	Created string   `yaml:"created"`
}

// loadPosts reads every Markdown post under dir/posts. The slug is the first
// path element below posts/ with any extension removed, so both
// posts/hello/index.md and posts/hello.md become "hello".
func loadPosts(dir string) ([]Post, error) {
	root := filepath.Join(dir, "posts")
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var posts []Post
	seen := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !parser.IsPostSource(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slug := strings.Split(filepath.ToSlash(rel), "/")[0]
		slug = strings.TrimSuffix(slug, filepath.Ext(slug))
		if prev, dup := seen[slug]; dup {
			return fmt.Errorf("duplicate post slug %q: %s and %s", slug, prev, path)
		}
		seen[slug] = path

		post, err := readPost(path, slug)
		if err != nil {
			return err
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return posts, nil
}

func readPost(path, slug string) (Post, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Post{}, fmt.Errorf("stat %s: %w", path, err)
	}

	meta, body, err := parser.SplitFrontMatter(src)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", path, err)
	}
	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return Post{}, fmt.Errorf("%s: parse front matter: %w", path, err)
	}
	if fm.Created == "" {
		return Post{}, fmt.Errorf("%s: created is required", path)
	}
	created, err := parseDate(fm.Created)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", path, err)
	}

	var toc []parser.Heading
	for _, h := range parser.Outline(body) {
		if h.Level <= tocMaxDepth {
			toc = append(toc, h)
		}
	}
	if len(toc) == 0 {
		return Post{}, fmt.Errorf("%s: post needs a heading to take its title from", path)
	}
	title := toc[0].Title

	plain, err := parser.PlainText(body)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", path, err)
	}
	words := len(strings.Fields(plain))

	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}

	return Post{
		Slug:        slug,
		Title:       title,
		Desc:        fm.Desc,
		Tags:        tags,
		Created:     created,
		Updated:     info.ModTime().UTC(),
		Content:     string(body),
		Excerpt:     excerpt(plain, title),
		ReadingTime: readingTime(words),
		WordCount:   words,
		TOC:         toc,
		SourcePath:  path,
	}, nil
}

// excerpt cuts the first excerptLength characters of the flattened text and
// drops the leading title.
func excerpt(plain, title string) string {
	flat := strings.Join(strings.Fields(plain), " ")
	runes := []rune(flat)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	cut := strings.TrimPrefix(string(runes), title)
	return strings.TrimSpace(cut) + "..."
}

func readingTime(words int) int {
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
