package ogpage

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves preview documents synchronously: GET /share/:slug renders
// the document as the response body on every request (delivery mode for
// crawlers hitting share links directly).
type Handler struct {
	cfg    Config
	lookup Lookup
}

// NewHandler creates a Handler backed by the given article lookup.
func NewHandler(cfg Config, lookup Lookup) *Handler {
	return &Handler{cfg: cfg, lookup: lookup}
}

// Serve handles GET /share/:slug[?v=token]. The v parameter only busts
// crawler caches and does not affect the generated document.
func (h *Handler) Serve(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Slug parameter required"})
	}
	article, err := h.lookup(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		c.Logger().Errorf("og lookup %s: %v", slug, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	doc := Build(h.cfg, article)

	// Some crawlers ignore OG tags served as text/plain or without an
	// explicit charset; the content type here is a hard requirement. The
	// bounded shared cache keeps repeated crawler hits off the database
	// while letting edits propagate within the hour.
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, "text/html; charset=utf-8", doc)
}
