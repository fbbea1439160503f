package folio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/views"
)

// ErrOutputNotEmpty is returned by Export when the target directory already
// has files and cleaning was not requested.
var ErrOutputNotEmpty = errors.New("output directory is not empty")

// ExportStats summarises a static build.
type ExportStats struct {
	Posts int
	Pages int
	Files int
}

// Export writes the public site to dir as static files. Protected pages are
// skipped. With clean set, existing contents of dir are removed first.
func (a *App) Export(ctx context.Context, dir string, clean bool) (ExportStats, error) {
	var stats ExportStats
	if err := prepareOutput(dir, clean); err != nil {
		return stats, err
	}
	if err := a.Init(ctx); err != nil {
		return stats, err
	}
	site := a.Site()

	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return stats, err
	}

	w := &exportWriter{ctx: ctx, root: dir, stats: &stats}
	listing, err := a.Listing(ctx, "", "")
	if err != nil {
		return stats, err
	}
	index := views.BlogPage(site, listing, "")
	w.component("index.html", index)
	w.component("blog/index.html", index)
	for _, p := range posts {
		w.component(filepath.Join("blog", p.ID, "index.html"), views.PostPage(site, p, blog.Related(p, posts)))
		stats.Posts++
	}
	for _, p := range a.Config.Pages {
		if p.Protected {
			continue
		}
		w.component(filepath.Join(p.Slug, "index.html"), views.MarkdownPage(site, p.Title, "/"+p.Slug+"/", p.Body))
		stats.Pages++
	}
	w.component("404.html", views.NotFound(site))

	feed, err := a.RSS(posts)
	if err != nil {
		return stats, err
	}
	sitemap, err := a.Sitemap(posts)
	if err != nil {
		return stats, err
	}
	w.file("feed.xml", feed)
	w.file("sitemap.xml", sitemap)
	w.file("robots.txt", a.Robots())
	w.file("theme.css", []byte(a.Config.Theme.CSS()))
	if _, err := os.Stat(filepath.Join(a.staticDir, "favicon.svg")); err != nil {
		w.file("favicon.svg", a.faviconSVG())
	}
	if w.err != nil {
		return stats, w.err
	}

	if err := w.copyFS(os.DirFS(a.staticDir), "public"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return stats, err
	}
	if favicon, err := os.ReadFile(filepath.Join(a.staticDir, "favicon.svg")); err == nil {
		w.file("favicon.svg", favicon)
	}
	embedded, _ := fs.Sub(EmbeddedAssets, "embedded")
	if err := w.copyFS(embedded, "public"); err != nil {
		return stats, err
	}
	return stats, w.err
}

func prepareOutput(dir string, clean bool) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if !clean {
		return fmt.Errorf("%s: %w", dir, ErrOutputNotEmpty)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// exportWriter keeps the first error so the build reads as a flat list of writes.
type exportWriter struct {
	ctx   context.Context
	root  string
	stats *ExportStats
	err   error
}

func (w *exportWriter) file(rel string, data []byte) {
	if w.err != nil {
		return
	}
	path := filepath.Join(w.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.err = err
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.err = err
		return
	}
	w.stats.Files++
}

func (w *exportWriter) component(rel string, c templ.Component) {
	if w.err != nil {
		return
	}
	var buf bytes.Buffer
	if err := c.Render(w.ctx, &buf); err != nil {
		w.err = fmt.Errorf("render %s: %w", rel, err)
		return
	}
	w.file(rel, buf.Bytes())
}

func (w *exportWriter) copyFS(src fs.FS, prefix string) error {
	return fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := src.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		w.file(filepath.Join(prefix, filepath.FromSlash(path)), data)
		return w.err
	})
}
