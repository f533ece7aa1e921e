// Command webzine runs the Sabadvance site with the default views. All site
// branding and secrets come from environment variables.
package main

import (
	"log"
	"time"

	"github.com/sabadvance/webzine"
	"github.com/sabadvance/webzine/views"
)

func main() {
	cfg := webzine.SiteConfig{
		Name:        webzine.EnvOr("SITE_NAME", "Sabadvance"),
		URL:         webzine.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: webzine.EnvOr("SITE_DESCRIPTION", ""),
		Author:      webzine.EnvOr("SITE_AUTHOR", ""),
		Locale:      webzine.EnvOr("SITE_LOCALE", "it_IT"),
		TwitterSite: webzine.EnvOr("TWITTER_SITE", ""),

		Addr:         webzine.EnvOr("ADDR", ":3000"),
		DatabasePath: webzine.EnvOr("DATABASE_PATH", "data/webzine.db"),

		AnalyticsEnabled:      webzine.EnvOr("ANALYTICS_ENABLED", "true") == "true",
		AnalyticsDatabasePath: webzine.EnvOr("ANALYTICS_DATABASE_PATH", "data/visits.db"),

		OGPagesDir: webzine.EnvOr("OG_PAGES_DIR", "data/og-pages"),

		AdminPassword: webzine.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: webzine.MustEnv("SESSION_SECRET"),
		CookieSecure:  webzine.EnvOr("COOKIE_SECURE", "false") == "true",

		ChatAPIKey: webzine.EnvOr("ANTHROPIC_API_KEY", ""),
		ChatModel:  webzine.EnvOr("CHAT_MODEL", ""),

		PostCacheTTL: 5 * time.Minute,
	}

	app := webzine.New(cfg, views.New(cfg))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
