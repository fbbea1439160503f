package views

import (
	"bytes"
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/folio-blog/folio/blog"
)

// BlogPage is the full blog index: header, search box and the listing.
func BlogPage(site Site, listing blog.Listing, activeTag string) templ.Component {
	meta := PageMeta{
		Title:  "Blog",
		URL:    BuildURL(site.URL, "blog"),
		Active: "/blog/",
		JSONLD: WebsiteJSONLD(site),
	}
	body := component(func(ctx context.Context, b *bytes.Buffer) error {
		b.WriteString(`<div class="blog-header"><h2>Blog</h2><p>Articles, tutorials, snippets, musings, and everything else.</p>`)
		b.WriteString(`<form action="/blog/" method="get" role="search">`)
		b.WriteString(`<input class="search-input" type="search" name="q" placeholder="Search..." autocomplete="off" data-live-search="#blog-list"`)
		attr(b, "value", listing.Query)
		b.WriteString("/>")
		if activeTag != "" {
			b.WriteString(`<input type="hidden" name="tag"`)
			attr(b, "value", activeTag)
			b.WriteString("/>")
		}
		b.WriteString("</form></div>")
		b.WriteString(`<div id="blog-list">`)
		if err := BlogList(listing, activeTag).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString("</div>")
		return nil
	})
	return Layout(site, meta, body)
}

// BlogList renders the listing alone. The live search swaps it in place.
func BlogList(listing blog.Listing, activeTag string) templ.Component {
	return component(func(ctx context.Context, b *bytes.Buffer) error {
		if activeTag != "" {
			b.WriteString(`<p class="search-meta">Tagged <strong>`)
			text(b, activeTag)
			b.WriteString(`</strong> &middot; <a href="/blog/">clear</a></p>`)
		}
		if listing.Searching {
			b.WriteString(`<p class="search-meta">`)
			b.WriteString(strconv.Itoa(listing.Total))
			if listing.Total == 1 {
				b.WriteString(" result for &ldquo;")
			} else {
				b.WriteString(" results for &ldquo;")
			}
			text(b, listing.Query)
			b.WriteString("&rdquo;</p>")
			for i, e := range listing.Results {
				if err := Reveal(RevealOptions{Order: i}, Article(e)).Render(ctx, b); err != nil {
					return err
				}
			}
			return nil
		}
		if listing.Total == 0 {
			b.WriteString(`<p class="search-meta">No posts yet.</p>`)
			return nil
		}
		for _, s := range listing.Sections {
			b.WriteString(`<h2 class="year-heading">`)
			b.WriteString(strconv.Itoa(s.Year))
			b.WriteString("</h2><hr/>")
			for i, e := range s.Entries {
				if err := Reveal(RevealOptions{Order: i}, Article(e)).Render(ctx, b); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Article renders one listing entry.
func Article(e blog.Entry) templ.Component {
	return component(func(ctx context.Context, b *bytes.Buffer) error {
		b.WriteString(`<article class="article"><a class="article-title"`)
		attr(b, "href", e.Post.Link())
		b.WriteString(">")
		if e.Fresh {
			b.WriteString(`<span class="new-tag">New!</span>`)
		}
		b.WriteString(`<div><span class="article-date">`)
		text(b, e.Post.Date.String())
		b.WriteString("</span><h3>")
		text(b, e.Post.Title)
		b.WriteString("</h3></div></a>")
		if err := Tags(e.Tags).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString("</article>")
		return nil
	})
}

// Tags renders tag chips. Unstyled chips carry no colour variables and fall
// back to the stylesheet default.
func Tags(chips []blog.TagChip) templ.Component {
	return component(func(_ context.Context, b *bytes.Buffer) error {
		if len(chips) == 0 {
			return nil
		}
		b.WriteString(`<div class="tags">`)
		for _, c := range chips {
			b.WriteString(`<a class="tag-chip"`)
			attr(b, "href", "/blog/?tag="+url.QueryEscape(c.Name))
			if c.Styled {
				attr(b, "style", "--tag-color:"+c.Color.Color+";--tag-hover:"+c.Color.Hover)
			}
			b.WriteString(">")
			text(b, c.Name)
			b.WriteString("</a>")
		}
		b.WriteString("</div>")
		return nil
	})
}
