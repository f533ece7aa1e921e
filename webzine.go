// Package webzine is an editorial site engine built with Go, Echo, and templ.
// It provides the public magazine pages, an admin dashboard with post and
// category management, share-link generation with persisted Open-Graph
// preview documents, a content-scoped chatbot, visit tracking, RSS, and a
// sitemap out of the box.
//
// Users provide their own templ components via the ViewFuncs struct, and
// webzine handles the handler logic, middleware, and database operations.
package webzine

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/sabadvance/webzine/analytics"
	"github.com/sabadvance/webzine/chatbot"
	"github.com/sabadvance/webzine/ogpage"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets users
// own and customize all templates.
type ViewFuncs struct {
	Home           func(posts []Post, categories []Category) templ.Component
	BlogList       func(posts []Post, activeCategory string, categories []Category) templ.Component
	Post           func(post Post, safeBody string, share ShareLinks) templ.Component
	ChiSiamo       func() templ.Component
	Privacy        func() templ.Component
	Cookies        func() templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []Post, categories []Category, message string, csrfToken string) templ.Component
	AdminPostForm  func(post Post, categories []Category, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central webzine application. It wires together the store, cache,
// handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	loginLimiter   *AttemptLimiter
	ogPublisher    *ogpage.Publisher
	ogHandler      *ogpage.Handler
	chat           *chatbot.Service
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a webzine App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the
// server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("webzine: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("webzine: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("webzine: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewAttemptLimiter(5, time.Minute)

	ogCfg := ogpage.Config{
		SiteName:     a.Config.Name,
		SiteURL:      a.Config.URL,
		Locale:       a.Config.Locale,
		TwitterSite:  a.Config.TwitterSite,
		DefaultImage: a.Config.DefaultImage,
	}
	a.ogHandler = ogpage.NewHandler(ogCfg, a.lookupArticle)
	a.ogPublisher = ogpage.NewPublisher(ogCfg, a.lookupArticle,
		a.Config.OGPagesDir, BuildURL(a.Config.URL, "og"))

	a.chat = chatbot.New(a.Config.ChatAPIKey, a.Config.ChatModel, a.Config.Name, a.chatSource)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("webzine: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// lookupArticle adapts the content store to the preview generator's view of
// a post. Only publicly visible posts produce preview documents.
func (a *App) lookupArticle(slug string) (ogpage.Article, error) {
	p, err := a.Store.GetPublishedPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ogpage.Article{}, ogpage.ErrNotFound
		}
		return ogpage.Article{}, err
	}
	return ogpage.Article{
		Slug:          p.Slug,
		Title:         p.Title,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		PublishedAt:   p.PublishedAt,
	}, nil
}

// chatSource supplies published posts as grounding context for the chatbot.
func (a *App) chatSource() ([]chatbot.PostSummary, error) {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return nil, err
	}
	summaries := make([]chatbot.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, chatbot.PostSummary{
			Title:      p.Title,
			Excerpt:    p.Excerpt,
			Body:       p.Body,
			Slug:       p.Slug,
			Categories: CategoryNames(p.Categories),
		})
	}
	return summaries, nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Engine assets served under /public/, falling through to the user's
	// static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/share.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/analytics.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/chatbot.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Persisted Open-Graph preview documents.
	e.Static("/og", a.Config.OGPagesDir)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/chi-siamo/", a.handleChiSiamo)
	e.GET("/privacy/", a.handlePrivacy)
	e.GET("/cookies/", a.handleCookies)
	e.GET("/share/:slug", a.ogHandler.Serve)
	e.POST("/api/chatbot/", a.chat.Handle)

	// Admin routes. /admin/ itself doubles as the login page, so only the
	// mutating routes sit behind requireAdmin.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	g := e.Group("/admin", requireAdmin)
	g.GET("/post/:slug/", a.handleAdminPostEdit)
	g.POST("/save/", a.handleAdminSave)
	g.DELETE("/post/:slug/", a.handleAdminDelete)
	g.POST("/categories/save/", a.handleCategorySave)
	g.DELETE("/categories/:id/", a.handleCategoryDelete)
	g.GET("/images/", a.handleImageList)
	g.POST("/images/upload/", a.handleImageUpload)
	g.DELETE("/images/:filename/", a.handleImageDelete)

	e.POST("/api/og/:slug/", a.ogPublisher.ServePublish, requireAdmin)

	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		analyticsHandler := analytics.NewHandler(a.analyticsStore)
		analyticsHandler.RegisterRoutes(e, requireAdmin)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("webzine: required environment variable %s is not set", key)
	}
	return v
}
