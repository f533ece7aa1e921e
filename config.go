package webzine

import "time"

// SiteConfig holds all configuration for a webzine site.
type SiteConfig struct {
	Name        string // Site name (default "Sabadvance")
	URL         string // Canonical base URL (default "http://localhost:3000")
	Description string // Site description for meta tags and the feed
	Author      string // Default author name for JSON-LD
	Locale      string // og:locale value (default "it_IT")
	TwitterSite string // twitter:site handle, e.g. "@sabadvance"

	// DefaultImage is the preview image used when a post has no featured
	// image. Relative values are resolved against URL.
	DefaultImage string

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/webzine.db")

	AnalyticsEnabled      bool   // Enable visit tracking (default true via cmd)
	AnalyticsDatabasePath string // Visits SQLite path (default "data/visits.db")

	// OGPagesDir is where persisted Open-Graph preview documents are written.
	// They are served statically under /og/ (default "data/og-pages").
	OGPagesDir string

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// ChatAPIKey enables the scoped chatbot endpoint when non-empty.
	ChatAPIKey string
	ChatModel  string // Override the default chat completion model

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Sabadvance"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "it_IT"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/webzine.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/visits.db"
	}
	if c.OGPagesDir == "" {
		c.OGPagesDir = "data/og-pages"
	}
	if c.DefaultImage == "" {
		c.DefaultImage = BuildURL(c.URL, "public", "default-og.png")
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
