package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/folio-blog/folio/blog"
)

func TestPrintPosts(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	posts := []blog.Post{
		{ID: "a", Title: "Fresh one", Date: blog.MustParseDate("2024-02-01"), Tags: []string{"go"}, Published: true},
		{ID: "b", Title: "日本語のタイトル", Date: blog.MustParseDate("2023-05-01"), Published: false},
	}

	var buf bytes.Buffer
	printPosts(&buf, posts, blog.FreshnessPolicy{Window: 2, Now: now})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "2024" || lines[2] != "2023" {
		t.Errorf("year headings = %q, %q", lines[0], lines[2])
	}
	if !strings.Contains(lines[1], " new ") {
		t.Errorf("fresh post not marked: %q", lines[1])
	}
	if !strings.HasSuffix(lines[3], "(draft)") {
		t.Errorf("draft not marked: %q", lines[3])
	}
	// Wide titles are padded by display width, so the columns after them line up.
	w1 := runewidth.StringWidth(lines[1][:strings.Index(lines[1], "  go")])
	w3 := runewidth.StringWidth(lines[3][:strings.Index(lines[3], "   (draft)")])
	if w1 != w3 {
		t.Errorf("title column widths differ: %d vs %d\n%s", w1, w3, buf.String())
	}
}
