// Package leadpage is a small marketing-site server built on Echo: a
// fixed set of brochure pages, a blog sourced from embedded content, two
// lead-capture forms persisted to append-only CSV files, and the SEO
// surface (robots, sitemap, feed) generated from the same page tables
// the router uses.
package leadpage

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

// App is the wired application: config, router, record store, content
// registry, and renderer.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *RecordStore
	Registry *Registry
	Renderer *Renderer

	limiter      *SubmitLimiter
	customRoutes []func(*App)
}

// New builds a fully wired App from the given configuration. Template
// parsing and content validation happen here, so a broken deploy fails
// at startup instead of on the first request.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()

	registry, err := NewRegistry(postsYAML)
	if err != nil {
		return nil, fmt.Errorf("leadpage: %w", err)
	}
	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("leadpage: %w", err)
	}

	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Store:    NewRecordStore(cfg.LeadsPath, cfg.NewsletterPath),
		Registry: registry,
		Renderer: renderer,
	}
	if cfg.SubmitPerMinute > 0 {
		a.limiter = NewSubmitLimiter(cfg.SubmitPerMinute, time.Minute)
	}

	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	return a, nil
}

// Start runs the HTTP server until it is shut down.
func (a *App) Start() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	for _, pg := range sitePages {
		if pg.Template == "blog_list" {
			e.GET(pg.Path, a.handleBlogList(pg))
			continue
		}
		e.GET(pg.Path, a.handlePage(pg))
	}
	e.GET("/blog/:slug", a.handleBlogPost)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Images resolve across two candidate directories; everything else
	// under /static serves straight from the static dir.
	e.GET("/static/img/*", a.handleImage)
	e.Static("/static", a.Config.StaticDir)

	e.POST("/api/lead", a.handleLead)
	e.POST("/lead", handleLeadAlias)
	e.POST("/api/newsletter", a.handleNewsletter)
}

// EnvOr returns the value of the environment variable key, or fallback
// if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
