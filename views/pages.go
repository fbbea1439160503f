package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/markdown"
)

// PostPage renders a single post with its related posts.
func PostPage(site Site, p blog.Post, related []blog.Post) templ.Component {
	meta := PageMeta{
		Title:       p.Title,
		Description: p.Summary,
		URL:         BuildURL(site.URL, "blog", p.ID),
		OGType:      "article",
		Active:      "/blog/",
		JSONLD:      BlogPostingJSONLD(site, p),
	}
	body := component(func(ctx context.Context, b *bytes.Buffer) error {
		b.WriteString(`<article class="post"><header>`)
		if site.Freshness.IsFresh(p.Date) {
			b.WriteString(`<span class="new-tag">New!</span>`)
		}
		b.WriteString(`<span class="article-date">`)
		text(b, p.Date.String())
		b.WriteString("</span><h1>")
		text(b, p.Title)
		b.WriteString("</h1>")
		chips := make([]blog.TagChip, 0, len(p.Tags))
		for _, t := range p.Tags {
			c, ok := site.Theme.Tags.Lookup(t)
			chips = append(chips, blog.TagChip{Name: t, Color: c, Styled: ok})
		}
		if err := Tags(chips).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString(`</header><div class="post-body">`)
		if err := markdown.Component(p.Body).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString("</div></article>")
		if len(related) > 0 {
			b.WriteString(`<section class="related"><h2>Related posts</h2><ul>`)
			for _, r := range related {
				b.WriteString(`<li><a`)
				attr(b, "href", r.Link())
				b.WriteString(">")
				text(b, r.Title)
				b.WriteString("</a></li>")
			}
			b.WriteString("</ul></section>")
		}
		return nil
	})
	return Layout(site, meta, body)
}

// MarkdownPage renders a standalone page such as About from Markdown source.
func MarkdownPage(site Site, title, active, source string) templ.Component {
	meta := PageMeta{Title: title, URL: BuildURL(site.URL, active), Active: active}
	body := component(func(ctx context.Context, b *bytes.Buffer) error {
		b.WriteString(`<article class="page">`)
		if err := Reveal(RevealOptions{}, markdown.Component(source)).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString("</article>")
		return nil
	})
	return Layout(site, meta, body)
}

// NotFound is the 404 page.
func NotFound(site Site) templ.Component {
	return statusPage(site, "Page not found", "The page you were looking for does not exist.")
}

// ServerError is the 500 page.
func ServerError(site Site) templ.Component {
	return statusPage(site, "Something went wrong", "Please try again in a moment.")
}

func statusPage(site Site, heading, message string) templ.Component {
	body := component(func(_ context.Context, b *bytes.Buffer) error {
		b.WriteString(`<div class="blog-header"><h2>`)
		text(b, heading)
		b.WriteString("</h2><p>")
		text(b, message)
		b.WriteString(`</p><a class="nav-link" href="/">Back home</a></div>`)
		return nil
	})
	return Layout(site, PageMeta{Title: heading}, body)
}
