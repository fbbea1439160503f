package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// Layout wraps body in the document shell: head, navigation bar and footer.
func Layout(site Site, meta PageMeta, body templ.Component) templ.Component {
	return component(func(ctx context.Context, b *bytes.Buffer) error {
		title := site.Name
		if meta.Title != "" && meta.Title != site.Name {
			title = meta.Title + " | " + site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		b.WriteString(`<!DOCTYPE html><html lang="en" data-color-mode="light"><head><meta charset="utf-8"/>`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.WriteString("<title>")
		text(b, title)
		b.WriteString("</title>")
		if desc != "" {
			b.WriteString(`<meta name="description"`)
			attr(b, "content", desc)
			b.WriteString("/>")
		}
		if meta.URL != "" {
			b.WriteString(`<link rel="canonical"`)
			attr(b, "href", meta.URL)
			b.WriteString("/>")
			b.WriteString(`<meta property="og:url"`)
			attr(b, "content", meta.URL)
			b.WriteString("/>")
		}
		b.WriteString(`<meta property="og:title"`)
		attr(b, "content", title)
		b.WriteString(`/><meta property="og:type"`)
		attr(b, "content", ogType)
		b.WriteString("/>")
		b.WriteString(`<link rel="stylesheet" href="/theme.css"/>`)
		b.WriteString(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		attr(b, "title", site.Name)
		b.WriteString("/>")
		b.WriteString(`<script src="/public/colormode.js"></script>`)
		if meta.JSONLD != "" {
			b.WriteString(`<script type="application/ld+json">`)
			b.WriteString(meta.JSONLD)
			b.WriteString("</script>")
		}
		b.WriteString("</head><body>")

		if err := Navbar(site, meta.Active).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString("<main>")
		if err := child(ctx, b, body); err != nil {
			return err
		}
		b.WriteString("</main>")
		b.WriteString(`<script src="/public/reveal.js" defer></script><script src="/public/search.js" defer></script>`)
		b.WriteString("</body></html>")
		return nil
	})
}

// Navbar is the sticky top bar: brand link, section links and the colour-mode toggle.
func Navbar(site Site, active string) templ.Component {
	return component(func(_ context.Context, b *bytes.Buffer) error {
		b.WriteString(`<div class="sticky-nav"><nav><div><a class="nav-link nav-brand" href="/">`)
		if site.Emoji != "" {
			b.WriteString(`<span class="nav-emoji">`)
			text(b, site.Emoji)
			b.WriteString("</span>")
		}
		text(b, site.Name)
		b.WriteString("</a></div><div>")
		for _, l := range site.Nav {
			b.WriteString(`<a class="nav-link"`)
			attr(b, "href", l.Href)
			if l.Href == active {
				b.WriteString(` aria-current="page"`)
			}
			b.WriteString(">")
			text(b, l.Label)
			b.WriteString("</a>")
		}
		b.WriteString(`<button type="button" class="nav-link" data-color-mode-toggle aria-label="Toggle dark mode">&#9790;</button>`)
		b.WriteString("</div></nav></div>")
		return nil
	})
}
