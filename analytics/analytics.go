// Package analytics records page visits for aggregate counts. The log is
// append-only: a visit is a session identifier generated client-side, the
// page path, the user agent, and a timestamp. Nothing is ever updated or
// correlated back to a person.
package analytics

import (
	"strings"
	"time"
)

// Visit represents a single page view.
type Visit struct {
	ID        int64     `json:"-"`
	SessionID string    `json:"session_id"` // client-generated, per browser session
	Path      string    `json:"path"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitRequest is the beacon payload sent from the client.
type VisitRequest struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
}

// PathCount is an aggregate page-view count for one path.
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// Stats is the aggregate view exposed to admins.
type Stats struct {
	TotalVisits    int64       `json:"total_visits"`
	UniqueSessions int64       `json:"unique_sessions"`
	TopPaths       []PathCount `json:"top_paths"`
}

// normalizePath strips query strings and fragments so counts aggregate per
// page, and bounds the stored length.
func normalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		p = "/"
	}
	if len(p) > 512 {
		p = p[:512]
	}
	return p
}
