package webzine

import (
	"fmt"
	"time"
)

// Status is the editorial lifecycle state of a post. It is a closed set:
// ParseStatus rejects anything outside the three known values so typo
// states never reach the database.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ParseStatus converts a raw string into a Status, failing on unknown values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusArchived:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown post status %q", s)
}

func (s Status) String() string { return string(s) }

// Post is the core content type stored in SQLite and rendered by templates.
// Body holds author-submitted rich HTML; it must pass through sanitize.HTML
// before being injected into any page.
type Post struct {
	Slug          string
	Title         string
	Excerpt       string
	Body          string
	FeaturedImage string
	Author        string
	Status        Status
	PublishedAt   *time.Time
	UpdatedAt     time.Time
	Categories    []Category
	Link          string
}

// Visible reports whether the post may be shown to the public: published,
// with a publication timestamp that is set and not in the future.
func (p Post) Visible(now time.Time) bool {
	return p.Status == StatusPublished && p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// ShareVersion returns the cache-busting token appended to share URLs so
// social platforms regenerate their preview after an edit.
func (p Post) ShareVersion() string {
	return fmt.Sprintf("%d", p.UpdatedAt.Unix())
}

// Category groups posts many-to-many. Slug is derived from Name via Slugify
// and is stable once created.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
}
