package webzine

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	published := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	post := Post{
		Slug:          "ricetta-torta",
		Title:         "La Torta Perfetta",
		Excerpt:       "Una ricetta semplice",
		Body:          "<p>Ingredienti e procedimento.</p>",
		FeaturedImage: "https://example.com/torta.jpg",
		Author:        "Sara",
		Status:        StatusPublished,
		PublishedAt:   &published,
		UpdatedAt:     published,
	}
	if err := s.SavePost(post, nil); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPublishedPost("ricetta-torta")
	if err != nil {
		t.Fatalf("GetPublishedPost failed: %v", err)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Excerpt != post.Excerpt {
		t.Errorf("Excerpt = %q, want %q", got.Excerpt, post.Excerpt)
	}
	if got.Body != post.Body {
		t.Errorf("Body = %q, want %q", got.Body, post.Body)
	}
	if got.Author != "Sara" {
		t.Errorf("Author = %q, want Sara", got.Author)
	}
	if got.Status != StatusPublished {
		t.Errorf("Status = %q, want published", got.Status)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(published) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, published)
	}
	if got.Link != "/blog/ricetta-torta" {
		t.Errorf("Link = %q, want /blog/ricetta-torta", got.Link)
	}
}

func TestSavePostUpdate(t *testing.T) {
	s := setupTestStore(t)

	now := time.Now().Add(-time.Hour)
	post := Post{Slug: "p", Title: "Original", Body: "b", Status: StatusPublished, PublishedAt: &now}
	if err := s.SavePost(post, nil); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	post.Title = "Updated"
	if err := s.SavePost(post, nil); err != nil {
		t.Fatalf("SavePost update failed: %v", err)
	}

	got, err := s.GetPublishedPost("p")
	if err != nil {
		t.Fatalf("GetPublishedPost failed: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("Title = %q, want Updated", got.Title)
	}
}

func TestSavePostRejectsUnknownStatus(t *testing.T) {
	s := setupTestStore(t)

	err := s.SavePost(Post{Slug: "p", Title: "T", Body: "b", Status: Status("pending")}, nil)
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestVisibilityRules(t *testing.T) {
	s := setupTestStore(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	posts := []Post{
		{Slug: "visible", Title: "T", Body: "b", Status: StatusPublished, PublishedAt: &past},
		{Slug: "draft", Title: "T", Body: "b", Status: StatusDraft, PublishedAt: &past},
		{Slug: "archived", Title: "T", Body: "b", Status: StatusArchived, PublishedAt: &past},
		{Slug: "scheduled", Title: "T", Body: "b", Status: StatusPublished, PublishedAt: &future},
		{Slug: "no-date", Title: "T", Body: "b", Status: StatusPublished},
	}
	for _, p := range posts {
		if err := s.SavePost(p, nil); err != nil {
			t.Fatalf("SavePost %s failed: %v", p.Slug, err)
		}
	}

	visible, err := s.ListPublished("")
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Slug != "visible" {
		t.Errorf("ListPublished = %v, want only the visible post", visible)
	}

	for _, slug := range []string{"draft", "archived", "scheduled", "no-date"} {
		if _, err := s.GetPublishedPost(slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetPublishedPost(%q) err = %v, want ErrNotFound", slug, err)
		}
	}

	// Admin access ignores visibility.
	all, err := s.ListAllPosts()
	if err != nil {
		t.Fatalf("ListAllPosts failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("ListAllPosts returned %d posts, want 5", len(all))
	}
	if _, err := s.GetPostAny("draft"); err != nil {
		t.Errorf("GetPostAny(draft) failed: %v", err)
	}
}

func TestCategoryReconciliation(t *testing.T) {
	s := setupTestStore(t)

	cucina, err := s.SaveCategory(Category{Name: "Cucina"})
	if err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	viaggi, err := s.SaveCategory(Category{Name: "Viaggi"})
	if err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	lifestyle, err := s.SaveCategory(Category{Name: "Lifestyle & Tempo Libero!"})
	if err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	if lifestyle.Slug != "lifestyle-tempo-libero" {
		t.Errorf("Slug = %q, want lifestyle-tempo-libero", lifestyle.Slug)
	}

	past := time.Now().Add(-time.Hour)
	post := Post{Slug: "p", Title: "T", Body: "b", Status: StatusPublished, PublishedAt: &past}
	if err := s.SavePost(post, []int64{cucina.ID, viaggi.ID}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPublishedPost("p")
	if err != nil {
		t.Fatalf("GetPublishedPost failed: %v", err)
	}
	if len(got.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(got.Categories))
	}

	// Reassign: drop viaggi, add lifestyle, keep cucina.
	if err := s.SavePost(post, []int64{cucina.ID, lifestyle.ID}); err != nil {
		t.Fatalf("SavePost reassign failed: %v", err)
	}
	got, err = s.GetPublishedPost("p")
	if err != nil {
		t.Fatalf("GetPublishedPost failed: %v", err)
	}
	names := CategoryNames(got.Categories)
	if len(names) != 2 || names[0] != "Cucina" || names[1] != "Lifestyle & Tempo Libero!" {
		t.Errorf("categories = %v, want [Cucina, Lifestyle & Tempo Libero!]", names)
	}
}

func TestListPublishedByCategory(t *testing.T) {
	s := setupTestStore(t)

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

	posts, err := s.ListPublished("cucina")
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "in" {
		t.Errorf("ListPublished(cucina) = %v, want only the tagged post", posts)
	}
}

func TestDeletePostCascades(t *testing.T) {
	s := setupTestStore(t)

	cucina, err := s.SaveCategory(Category{Name: "Cucina"})
	if err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := s.SavePost(Post{Slug: "p", Title: "T", Body: "b", Status: StatusPublished, PublishedAt: &past}, []int64{cucina.ID}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if err := s.DeletePost("p"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPostAny("p"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPostAny after delete err = %v, want ErrNotFound", err)
	}

	// Category survives the post.
	cats, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(cats) != 1 {
		t.Errorf("ListCategories returned %d, want 1", len(cats))
	}
}

func TestDeleteCategoryDetachesPosts(t *testing.T) {
	s := setupTestStore(t)

	cucina, err := s.SaveCategory(Category{Name: "Cucina"})
	if err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := s.SavePost(Post{Slug: "p", Title: "T", Body: "b", Status: StatusPublished, PublishedAt: &past}, []int64{cucina.ID}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if err := s.DeleteCategory(cucina.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	got, err := s.GetPublishedPost("p")
	if err != nil {
		t.Fatalf("GetPublishedPost failed: %v", err)
	}
	if len(got.Categories) != 0 {
		t.Errorf("post still has categories %v after delete", got.Categories)
	}
}

func TestSaveCategoryRederivesSlug(t *testing.T) {
	s := setupTestStore(t)

	cat, err := s.SaveCategory(Category{Name: "Cucina"})
	if err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	cat.Name = "Cucina Italiana"
	updated, err := s.SaveCategory(cat)
	if err != nil {
		t.Fatalf("SaveCategory update failed: %v", err)
	}
	if updated.Slug != "cucina-italiana" {
		t.Errorf("Slug = %q, want cucina-italiana", updated.Slug)
	}
}
