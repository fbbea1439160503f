package views

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/folio-blog/folio/blog"
)

// AdminLogin is the password form shown to anonymous visitors of /admin/.
func AdminLogin(site Site, showError bool, csrf string) templ.Component {
	body := component(func(_ context.Context, b *bytes.Buffer) error {
		b.WriteString(`<div class="blog-header"><h2>Admin</h2>`)
		if showError {
			b.WriteString(`<p class="form-error">Wrong password.</p>`)
		}
		b.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(b, csrf)
		b.WriteString(`<input class="search-input" type="password" name="password" placeholder="Password" required autofocus/>`)
		b.WriteString(`<button class="nav-link" type="submit">Sign in</button></form></div>`)
		return nil
	})
	return Layout(site, PageMeta{Title: "Admin", Active: "/admin/"}, body)
}

// AdminDashboard lists every post, drafts included, with an empty editor below.
func AdminDashboard(site Site, posts []blog.Post, message, csrf string) templ.Component {
	body := component(func(ctx context.Context, b *bytes.Buffer) error {
		b.WriteString(`<div class="admin"><h2>Posts</h2>`)
		if message != "" {
			b.WriteString(`<p class="search-meta">`)
			text(b, message)
			b.WriteString("</p>")
		}
		b.WriteString(`<p><a href="/admin/images/">Images</a> &middot; <form class="inline" method="post" action="/admin/logout/">`)
		csrfField(b, csrf)
		b.WriteString(`<button type="submit">Sign out</button></form></p>`)
		b.WriteString(`<table class="admin-posts"><thead><tr><th>Date</th><th>Title</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, p := range posts {
			b.WriteString("<tr><td>")
			text(b, p.Date.String())
			b.WriteString("</td><td><a")
			attr(b, "href", "/admin/post/"+url.PathEscape(p.ID)+"/")
			b.WriteString(">")
			text(b, p.Title)
			b.WriteString("</a></td><td>")
			if p.Published {
				b.WriteString("published")
			} else {
				b.WriteString("draft")
			}
			b.WriteString(`</td><td><form method="post"`)
			attr(b, "action", "/admin/post/"+url.PathEscape(p.ID)+"/delete/")
			b.WriteString(">")
			csrfField(b, csrf)
			b.WriteString(`<button type="submit">Delete</button></form></td></tr>`)
		}
		b.WriteString("</tbody></table><h2>New post</h2>")
		if err := AdminForm(blog.Post{Published: true}, csrf).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString("</div>")
		return nil
	})
	return Layout(site, PageMeta{Title: "Admin", Active: "/admin/"}, body)
}

// AdminPostPage wraps the editor for an existing post.
func AdminPostPage(site Site, p blog.Post, csrf string) templ.Component {
	body := component(func(ctx context.Context, b *bytes.Buffer) error {
		b.WriteString(`<div class="admin"><p><a href="/admin/">&larr; All posts</a></p><h2>Edit post</h2>`)
		if err := AdminForm(p, csrf).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString("</div>")
		return nil
	})
	return Layout(site, PageMeta{Title: "Edit " + p.Title, Active: "/admin/"}, body)
}

// AdminForm is the post editor.
func AdminForm(p blog.Post, csrf string) templ.Component {
	return component(func(_ context.Context, b *bytes.Buffer) error {
		b.WriteString(`<form class="admin-form" method="post" action="/admin/save/">`)
		csrfField(b, csrf)
		field(b, "Title", "title", p.Title)
		field(b, "Slug", "slug", p.ID)
		field(b, "Date (YYYY-MM-DD)", "date", p.Date.String())
		field(b, "Tags (comma separated)", "tags", strings.Join(p.Tags, ", "))
		field(b, "Summary", "summary", p.Summary)
		b.WriteString(`<label>Content<textarea name="content" rows="20">`)
		text(b, p.Body)
		b.WriteString(`</textarea></label><label><input type="checkbox" name="published" value="1"`)
		if p.Published {
			b.WriteString(" checked")
		}
		b.WriteString(`/> Published</label><button type="submit">Save</button></form>`)
		return nil
	})
}

// AdminImages lists uploaded images with an upload form.
func AdminImages(site Site, images []Image, csrf string) templ.Component {
	body := component(func(_ context.Context, b *bytes.Buffer) error {
		b.WriteString(`<div class="admin"><p><a href="/admin/">&larr; All posts</a></p><h2>Images</h2>`)
		b.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(b, csrf)
		b.WriteString(`<input type="file" name="image" accept="image/*" required/><button type="submit">Upload</button></form><ul class="admin-images">`)
		for _, img := range images {
			b.WriteString("<li><img")
			attr(b, "src", img.URL())
			attr(b, "alt", img.OriginalName)
			attr(b, "width", strconv.Itoa(img.Width))
			attr(b, "height", strconv.Itoa(img.Height))
			b.WriteString(` loading="lazy"/><code>`)
			text(b, "![" + img.OriginalName + "](" + img.URL() + ")")
			b.WriteString("</code> <span>")
			text(b, humanize.Bytes(uint64(img.Size)))
			b.WriteString(`</span><form method="post"`)
			attr(b, "action", "/admin/images/"+url.PathEscape(img.Filename)+"/delete/")
			b.WriteString(">")
			csrfField(b, csrf)
			b.WriteString(`<button type="submit">Delete</button></form></li>`)
		}
		b.WriteString("</ul></div>")
		return nil
	})
	return Layout(site, PageMeta{Title: "Images", Active: "/admin/"}, body)
}

func csrfField(b *bytes.Buffer, token string) {
	b.WriteString(`<input type="hidden" name="_csrf"`)
	attr(b, "value", token)
	b.WriteString("/>")
}

func field(b *bytes.Buffer, label, name, value string) {
	b.WriteString("<label>")
	text(b, label)
	b.WriteString(`<input type="text"`)
	attr(b, "name", name)
	attr(b, "value", value)
	b.WriteString("/></label>")
}
