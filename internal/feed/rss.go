// Package feed builds the machine-readable site files: the RSS feed, the
// sitemap and robots.txt.
package feed

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/content"
)

const feedCategory = "Development"

func resolve(base *url.URL, path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}

// RSS renders an RSS 2.0 feed with one item per post, in the order given.
func RSS(site config.Site, base *url.URL, posts []content.Post, now time.Time) ([]byte, error) {
	name := site.Profile.FullName()
	home := resolve(base, "/")

	f := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: home},
		Description: site.Description,
		Id:          home,
		Author:      &feeds.Author{Name: name, Email: site.Profile.EmailAddress},
		Copyright:   fmt.Sprintf("%d %s", now.Year(), name),
		Image: &feeds.Image{
			Url:   resolve(base, site.Image),
			Title: site.Title,
			Link:  home,
		},
	}
	if len(posts) > 0 {
		f.Updated = posts[0].Created
	}

	for _, p := range posts {
		link := resolve(base, "/posts/"+p.Slug)
		f.Items = append(f.Items, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Description: p.Desc,
			Created:     p.Created,
		})
	}

	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = "en"
	rss.Category = feedCategory
	for i, item := range rss.Items {
		item.Category = strings.Join(posts[i].Tags, ", ")
	}

	out, err := feeds.ToXML(rss)
	if err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	return []byte(out), nil
}
