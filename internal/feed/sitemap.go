package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"time"

	"github.com/jbukuts/folio/internal/content"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	imageNS   = "http://www.google.com/schemas/sitemap-image/1.1"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	ImageNS string       `xml:"xmlns:image,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string         `xml:"loc"`
	LastMod    string         `xml:"lastmod,omitempty"`
	ChangeFreq string         `xml:"changefreq,omitempty"`
	Priority   string         `xml:"priority,omitempty"`
	Images     []sitemapImage `xml:"image:image,omitempty"`
}

type sitemapImage struct {
	Loc string `xml:"image:loc"`
}

// Sitemap lists the home page, the two static pages and every post. Static
// pages carry now as their last modification, posts their file mtime.
func Sitemap(base *url.URL, posts []content.Post, now time.Time) ([]byte, error) {
	stamp := func(t time.Time) string { return t.UTC().Format(time.RFC3339) }

	set := urlSet{NS: sitemapNS, ImageNS: imageNS}
	set.URLs = append(set.URLs,
		sitemapURL{
			Loc:        resolve(base, "/"),
			LastMod:    stamp(now),
			ChangeFreq: "monthly",
			Priority:   "1",
			Images:     []sitemapImage{{Loc: resolve(base, "/me.webp")}},
		},
		sitemapURL{Loc: resolve(base, "/projects"), LastMod: stamp(now), ChangeFreq: "monthly", Priority: "0.8"},
		sitemapURL{Loc: resolve(base, "/work-history"), LastMod: stamp(now), ChangeFreq: "monthly", Priority: "0.8"},
	)
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        resolve(base, "/posts/"+p.Slug),
			LastMod:    stamp(p.Updated),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots allows every crawler everywhere and points at the sitemap.
func Robots(base *url.URL) []byte {
	return []byte(fmt.Sprintf("User-Agent: *\nAllow: /\n\nSitemap: %s\n", resolve(base, "/sitemap.xml")))
}
