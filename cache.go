package folio

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/folio-blog/folio/blog"
)

// PostCache is an in-memory cache of published posts, their tags and the
// search index built over them, refreshed after ttl.
type PostCache struct {
	mu      sync.RWMutex
	posts   []blog.Post
	tags    []string
	index   *blog.Index
	fetched time.Time
	ttl     time.Duration
	store   blog.PostStore
	now     func() time.Time
}

type cached struct {
	posts []blog.Post
	tags  []string
	index *blog.Index
}

// NewPostCache creates a PostCache backed by store.
func NewPostCache(store blog.PostStore, ttl time.Duration) *PostCache {
	return &PostCache{store: store, ttl: ttl, now: time.Now}
}

func (c *PostCache) valid() bool {
	return c.index != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts, c.tags, c.index = nil, nil, nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.Posts(ctx)
	if err != nil {
		return err
	}
	c.posts = posts
	c.tags = collectTags(posts)
	c.index = blog.NewIndex(posts)
	c.fetched = c.now()
	return nil
}

// ensureLoaded tries a read lock first and only takes the write lock when a
// reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) (cached, error) {
	c.mu.RLock()
	if c.valid() {
		v := cached{c.posts, c.tags, c.index}
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return cached{}, err
	}
	return cached{c.posts, c.tags, c.index}, nil
}

// Posts returns all published posts, newest first.
func (c *PostCache) Posts(ctx context.Context) ([]blog.Post, error) {
	v, err := c.ensureLoaded(ctx)
	return v.posts, err
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(ctx context.Context, tag string) ([]blog.Post, error) {
	v, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return blog.FilterByTag(v.posts, tag), nil
}

// ListTags returns the distinct lower-cased tags of published posts, sorted.
func (c *PostCache) ListTags(ctx context.Context) ([]string, error) {
	v, err := c.ensureLoaded(ctx)
	return v.tags, err
}

// Index returns the search index over all published posts.
func (c *PostCache) Index(ctx context.Context) (*blog.Index, error) {
	v, err := c.ensureLoaded(ctx)
	return v.index, err
}

// GetPost returns a single published post by id from the cache.
func (c *PostCache) GetPost(ctx context.Context, id string) (blog.Post, error) {
	v, err := c.ensureLoaded(ctx)
	if err != nil {
		return blog.Post{}, err
	}
	for _, p := range v.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return blog.Post{}, ErrNotFound
}

func collectTags(posts []blog.Post) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			n := blog.NormalizeTag(t)
			if _, ok := seen[n]; ok || n == "" {
				continue
			}
			seen[n] = struct{}{}
			tags = append(tags, n)
		}
	}
	sort.Strings(tags)
	return tags
}
