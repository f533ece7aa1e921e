package ogpage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// Publisher persists preview documents to a directory served statically,
// so subsequent crawler hits are plain file reads instead of database
// lookups. Documents are keyed by slug and overwritten on regeneration;
// staleness between source edits and regeneration is accepted.
type Publisher struct {
	cfg        Config
	lookup     Lookup
	dir        string
	publicBase string // public URL prefix the directory is served under
}

// NewPublisher creates a Publisher writing to dir. publicBase is the URL
// prefix the directory is exposed at (e.g. "https://example.com/og").
func NewPublisher(cfg Config, lookup Lookup, dir, publicBase string) *Publisher {
	return &Publisher{
		cfg:        cfg,
		lookup:     lookup,
		dir:        dir,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// DocumentURL returns the public URL a published document is reachable at.
func (p *Publisher) DocumentURL(slug string) string {
	return p.publicBase + "/" + slug + ".html"
}

// Publish regenerates and persists the preview document for slug, returning
// its public URL. The existing file is removed first so a regeneration never
// serves a half-written artifact with stale metadata.
func (p *Publisher) Publish(slug string) (string, error) {
	if !validSlug(slug) {
		return "", ErrNotFound
	}
	article, err := p.lookup(slug)
	if err != nil {
		return "", err
	}
	doc := Build(p.cfg, article)

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create og-pages dir: %w", err)
	}
	path := filepath.Join(p.dir, slug+".html")
	_ = os.Remove(path) // best effort; upsert below either way
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write og page: %w", err)
	}
	return p.DocumentURL(slug), nil
}

// Remove deletes the persisted document for slug, if any.
func (p *Publisher) Remove(slug string) {
	if validSlug(slug) {
		_ = os.Remove(filepath.Join(p.dir, slug+".html"))
	}
}

// ServePublish handles POST /api/og/:slug/ and regenerates the persisted
// document on demand.
func (p *Publisher) ServePublish(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Slug parameter required"})
	}
	url, err := p.Publish(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		c.Logger().Errorf("og publish %s: %v", slug, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate OG page"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "url": url, "slug": slug})
}

// validSlug rejects anything that could escape the og-pages directory.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, "/\\")
}
