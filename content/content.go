// Package content loads posts from a directory of Markdown files with YAML
// front matter:
//
//	---
//	title: Hello
//	date: 2024-01-15
//	tags: [go, web]
//	summary: One line.
//	---
//	Body in Markdown.
//
// The post id is the file name without its extension unless front matter sets slug.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/folio-blog/folio/blog"
)

// ErrNoFrontMatter is returned for files that do not start with a --- block.
var ErrNoFrontMatter = errors.New("missing front matter")

type frontMatter struct {
	Title     string   `yaml:"title"`
	Slug      string   `yaml:"slug"`
	Date      string   `yaml:"date"`
	Tags      []string `yaml:"tags"`
	Summary   string   `yaml:"summary"`
	Published *bool    `yaml:"published"`
}

// Parse builds a post from one file. name is the file's base name.
func Parse(name string, data []byte) (blog.Post, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return blog.Post{}, ErrNoFrontMatter
	}
	rest := data[len("---\n"):]
	head, body, ok := bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return blog.Post{}, ErrNoFrontMatter
	}
	body = bytes.TrimPrefix(body, []byte("\n"))

	var fm frontMatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return blog.Post{}, fmt.Errorf("front matter: %w", err)
	}
	date, err := blog.ParseDate(fm.Date)
	if err != nil {
		return blog.Post{}, err
	}
	id := strings.TrimSpace(fm.Slug)
	if id == "" {
		id = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if strings.TrimSpace(fm.Title) == "" {
		return blog.Post{}, fmt.Errorf("post %q: title is required", id)
	}
	published := true
	if fm.Published != nil {
		published = *fm.Published
	}
	var tags []string
	for _, t := range fm.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return blog.Post{
		ID:        id,
		Title:     strings.TrimSpace(fm.Title),
		Date:      date,
		Tags:      tags,
		Summary:   strings.TrimSpace(fm.Summary),
		Body:      strings.TrimSpace(string(body)),
		Published: published,
	}, nil
}

// Load parses every .md file in dir and returns the posts newest first.
// Ids must be unique.
func Load(dir string) ([]blog.Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var posts []blog.Post
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		p, err := Parse(e.Name(), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if prev, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%s: id %q already used by %s", e.Name(), p.ID, prev)
		}
		seen[p.ID] = e.Name()
		posts = append(posts, p)
	}
	SortNewestFirst(posts)
	return posts, nil
}

// SortNewestFirst orders posts by date descending, then by id.
func SortNewestFirst(posts []blog.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].ID < posts[j].ID
	})
}

// Dir is a read-only post store backed by a content directory.
type Dir string

// Posts returns the published posts in the directory, newest first.
func (d Dir) Posts(_ context.Context) ([]blog.Post, error) {
	all, err := Load(string(d))
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}
