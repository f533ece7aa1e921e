package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler exposes the visit beacon and the admin stats endpoint.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the public beacon on the public group and the stats
// endpoint behind the provided admin middleware.
func (h *Handler) RegisterRoutes(e *echo.Echo, adminMiddleware echo.MiddlewareFunc) {
	e.POST("/api/visits/", h.handleVisit)
	e.GET("/admin/stats/", h.handleStats, adminMiddleware)
}

func (h *Handler) handleVisit(c echo.Context) error {
	var req VisitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || len(req.SessionID) > 128 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid session id"})
	}
	if req.Path == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Path required"})
	}

	v := &Visit{
		SessionID: req.SessionID,
		Path:      req.Path,
		UserAgent: c.Request().UserAgent(),
		Timestamp: time.Now(),
	}
	if err := h.store.SaveVisit(v); err != nil {
		c.Logger().Errorf("save visit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleStats(c echo.Context) error {
	stats, err := h.store.GetStats(20)
	if err != nil {
		c.Logger().Errorf("visit stats: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, stats)
}
