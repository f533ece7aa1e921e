package webzine

import (
	"errors"
	"testing"
	"time"
)

func TestPostCacheServesAndInvalidates(t *testing.T) {
	s := setupTestStore(t)
	cache := NewPostCache(s, time.Hour)

	past := time.Now().Add(-time.Hour)
	if err := s.SavePost(Post{Slug: "a", Title: "A", Body: "b", Status: StatusPublished, PublishedAt: &past}, nil); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}

	// A write behind the cache is invisible until invalidation.
	if err := s.SavePost(Post{Slug: "b", Title: "B", Body: "b", Status: StatusPublished, PublishedAt: &past}, nil); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	posts, _ = cache.ListPosts("")
	if len(posts) != 1 {
		t.Fatalf("stale read returned %d posts, want 1", len(posts))
	}

	cache.Invalidate()
	posts, _ = cache.ListPosts("")
	if len(posts) != 2 {
		t.Fatalf("after invalidate got %d posts, want 2", len(posts))
	}
}

func TestPostCacheGetPost(t *testing.T) {
	s := setupTestStore(t)
	cache := NewPostCache(s, time.Hour)

	past := time.Now().Add(-time.Hour)
	if err := s.SavePost(Post{Slug: "a", Title: "A", Body: "b", Status: StatusPublished, PublishedAt: &past}, nil); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if _, err := cache.GetPost("a"); err != nil {
		t.Errorf("GetPost(a) failed: %v", err)
	}
	if _, err := cache.GetPost("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost(missing) err = %v, want ErrNotFound", err)
	}
}

func TestPostCacheCategoryFilter(t *testing.T) {
	s := setupTestStore(t)
	cache := NewPostCache(s, time.Hour)

	cucina, err := s.SaveCategory(Category{Name: "Cucina"})
	if err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := s.SavePost(Post{Slug: "in", Title: "T", Body: "b", Status: StatusPublished, PublishedAt: &past}, []int64{cucina.ID}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	if err := s.SavePost(Post{Slug: "out", Title: "T", Body: "b", Status: StatusPublished, PublishedAt: &past}, nil); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	filtered, err := cache.ListPosts("cucina")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Slug != "in" {
		t.Errorf("ListPosts(cucina) = %v, want only the tagged post", filtered)
	}
}
