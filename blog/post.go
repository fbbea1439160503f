// Package blog holds the content model of a folio site and the pipeline that
// turns a post collection into a listing: year grouping, fuzzy search and
// freshness markers.
package blog

import (
	"context"
	"net/url"
	"strings"
)

// Post is a single published (or draft) article. Posts are immutable once loaded.
type Post struct {
	ID        string
	Title     string
	Date      Date
	Tags      []string
	Summary   string
	Body      string
	Published bool
}

// Link returns the canonical path of the post page.
func (p Post) Link() string {
	return "/blog/" + url.PathEscape(p.ID) + "/"
}

// HasTag reports whether the post carries tag, ignoring case and surrounding space.
func (p Post) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	for _, t := range p.Tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}

// NormalizeTag lower-cases and trims a tag.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// PostStore supplies the ordered post collection, newest first.
type PostStore interface {
	Posts(ctx context.Context) ([]Post, error)
}

// FilterByTag returns the posts carrying tag, preserving order. An empty tag returns posts unchanged.
func FilterByTag(posts []Post, tag string) []Post {
	if strings.TrimSpace(tag) == "" {
		return posts
	}
	var out []Post
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Related returns posts sharing at least one tag with current, excluding current.
func Related(current Post, posts []Post) []Post {
	tags := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		if n := NormalizeTag(t); n != "" {
			tags[n] = struct{}{}
		}
	}
	var related []Post
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tags[NormalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}
