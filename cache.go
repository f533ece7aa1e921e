package webzine

import (
	"sync"
	"time"
)

// PostCache is an in-memory cache of publicly visible posts and categories
// with TTL. Visibility is time-dependent (scheduled posts become visible when
// their publication time passes), so the TTL also bounds how long a scheduled
// post stays hidden after its time arrives.
type PostCache struct {
	mu         sync.RWMutex
	posts      []Post
	categories []Category
	fetched    time.Time
	ttl        time.Duration
	store      *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPublished("")
	if err != nil {
		return err
	}
	categories, err := c.store.ListCategories()
	if err != nil {
		return err
	}
	c.posts = posts
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and categories after ensuring freshness.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, []Category, error) {
	c.mu.RLock()
	if c.valid() {
		posts, categories := c.posts, c.categories
		c.mu.RUnlock()
		return posts, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.categories, nil
}

// ListPosts returns visible posts, optionally filtered by category slug.
func (c *PostCache) ListPosts(categorySlug string) ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if categorySlug == "" {
		return posts, nil
	}
	var filtered []Post
	for _, p := range posts {
		for _, cat := range p.Categories {
			if cat.Slug == categorySlug {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListCategories returns all categories.
func (c *PostCache) ListCategories() ([]Category, error) {
	_, categories, err := c.ensureLoaded()
	return categories, err
}

// GetPost returns a single visible post by slug from the cache.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}
