// Package scaffold holds the starter files written by `folio new`.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data is passed to every template.
type Data struct {
	ProjectName string
	SiteName    string
	Emoji       string
	Secret      string
	Today       string
}

// renames maps template base names to dotfiles, which embed would otherwise skip.
var renames = map[string]string{
	"dotenv":    ".env.example",
	"gitignore": ".gitignore",
}

// Write renders every template into dir, which must not exist yet. Created
// paths are reported to log when it is non-nil.
func Write(dir string, data Data, log io.Writer) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}
	const root = "templates"
	return fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out := strings.TrimSuffix(filepath.Join(dir, rel), ".tmpl")
		if to, ok := renames[filepath.Base(out)]; ok {
			out = filepath.Join(filepath.Dir(out), to)
		}
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}

		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		if log != nil {
			fmt.Fprintf(log, "  created %s\n", out)
		}
		return nil
	})
}

// Title turns a project directory name such as "my-blog" into "My Blog".
func Title(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
