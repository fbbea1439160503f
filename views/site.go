// Package views renders folio pages as templ components.
package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/theme"
)

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// DefaultNav is the stock navigation.
func DefaultNav() []NavLink {
	return []NavLink{
		{Label: "About", Href: "/about/"},
		{Label: "Blog", Href: "/blog/"},
		{Label: "Guides", Href: "/guides/"},
	}
}

// Site carries the site-wide values every page needs.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
	Emoji       string
	Nav         []NavLink
	Theme       theme.Theme
	Freshness   blog.FreshnessPolicy
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Active      string // href of the highlighted nav link
	JSONLD      string
}

// Image is an uploaded image as listed in the admin area.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// URL returns the public path of the image.
func (i Image) URL() string {
	return "/public/uploads/" + url.PathEscape(i.Filename)
}

// BuildURL joins path segments onto base, ensuring a trailing slash.
func BuildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(segments...))
	if len(segments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJSONLD produces a Schema.org WebSite block for site.
func WebsiteJSONLD(site Site) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{"@type": "Person", "name": site.Author}
	}
	return marshalLD(data)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting block for p.
func BlogPostingJSONLD(site Site, p blog.Post) string {
	postURL := BuildURL(site.URL, "blog", p.ID)
	data := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "BlogPosting",
		"headline":         p.Title,
		"description":      p.Summary,
		"datePublished":    p.Date.String(),
		"url":              postURL,
		"publisher":        map[string]string{"@type": "Organization", "name": site.Name},
		"mainEntityOfPage": map[string]string{"@type": "WebPage", "@id": postURL},
	}
	if site.Author != "" {
		data["author"] = map[string]string{"@type": "Person", "name": site.Author}
	}
	if len(p.Tags) > 0 {
		data["keywords"] = strings.Join(p.Tags, ", ")
	}
	return marshalLD(data)
}

func marshalLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
