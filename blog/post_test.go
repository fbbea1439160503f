package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostLink(t *testing.T) {
	assert.Equal(t, "/blog/hello-world/", Post{ID: "hello-world"}.Link())
	assert.Equal(t, "/blog/a%20b/", Post{ID: "a b"}.Link())
}

func TestFilterByTag(t *testing.T) {
	posts := []Post{post("a", "2024-01-01", "Go", "web"), post("b", "2024-01-02", "rust"), post("c", "2024-01-03", " go ")}
	got := FilterByTag(posts, "GO")
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Len(t, FilterByTag(posts, ""), 3)
	assert.Empty(t, FilterByTag(posts, "python"))
}

func TestRelated(t *testing.T) {
	current := post("a", "2024-01-01", "go", "web")
	posts := []Post{current, post("b", "2024-01-02", "Web"), post("c", "2024-01-03", "rust")}
	got := Related(current, posts)
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}
