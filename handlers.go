package leadpage

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"
)

var (
	notFoundPage = Page{
		Key:         "home",
		Template:    "not_found",
		Title:       "Not Found",
		Description: "Page not found.",
	}
	serverErrorPage = Page{
		Key:         "home",
		Template:    "server_error",
		Title:       "Error",
		Description: "Something went wrong.",
	}
)

// handlePage returns a handler rendering one static page descriptor.
func (a *App) handlePage(pg Page) echo.HandlerFunc {
	return func(c echo.Context) error {
		return a.Renderer.Page(c, pg, nil)
	}
}

func (a *App) handleBlogList(pg Page) echo.HandlerFunc {
	return func(c echo.Context) error {
		return a.Renderer.Page(c, pg, pongo2.Context{
			"posts": a.Registry.ListPosts(),
		})
	}
}

func (a *App) handleBlogPost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Registry.FindPost(slug)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	pg := Page{
		Key:         "blog",
		Template:    "blog_post",
		Title:       post.Title,
		Description: post.Excerpt,
	}
	return a.Renderer.Page(c, pg, pongo2.Context{
		"post":         post,
		"ad_header":    a.Renderer.AdUnit(a.Config.AdSlotHeader),
		"ad_inarticle": a.Renderer.AdUnit(a.Config.AdSlotInArticle),
		"json_ld":      BlogPostingJsonLD(post, a.Config),
	})
}

// clientIP returns the forwarded-for header value verbatim when present,
// else the direct connection address.
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get(echo.HeaderXForwardedFor); xff != "" {
		return xff
	}
	return c.RealIP()
}

func (a *App) handleLead(c echo.Context) error {
	if a.limiter != nil && !a.limiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	message := strings.TrimSpace(c.FormValue("message"))
	if name == "" || email == "" || message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields.")
	}

	source := strings.TrimSpace(c.FormValue("source"))
	if source == "" {
		source = "website_form"
	}
	rec := LeadRecord{
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Name:      name,
		Email:     email,
		Company:   strings.TrimSpace(c.FormValue("company")),
		Website:   strings.TrimSpace(c.FormValue("website")),
		Budget:    strings.TrimSpace(c.FormValue("budget")),
		Goal:      strings.TrimSpace(c.FormValue("goal")),
		Message:   message,
		Source:    source,
		IP:        clientIP(c),
		UserAgent: c.Request().Header.Get("User-Agent"),
	}
	if err := a.Store.AppendLead(rec); err != nil {
		return fmt.Errorf("save lead: %w", err)
	}
	return c.Redirect(http.StatusFound, "/thank-you")
}

// handleLeadAlias preserves the legacy form action by redirecting with
// method and body intact.
func handleLeadAlias(c echo.Context) error {
	return c.Redirect(http.StatusTemporaryRedirect, "/api/lead")
}

func (a *App) handleNewsletter(c echo.Context) error {
	if a.limiter != nil && !a.limiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}

	email := strings.TrimSpace(c.FormValue("email"))
	if email == "" || !strings.Contains(email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "Enter a valid email.")
	}

	source := strings.TrimSpace(c.FormValue("source"))
	if source == "" {
		source = "newsletter"
	}
	rec := SubscriberRecord{
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Email:     email,
		Source:    source,
		IP:        clientIP(c),
		UserAgent: c.Request().Header.Get("User-Agent"),
	}
	if err := a.Store.AppendSubscriber(rec); err != nil {
		return fmt.Errorf("save subscriber: %w", err)
	}
	return c.Redirect(http.StatusFound, "/newsletter/thanks")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.Renderer.PageStatus(c, http.StatusNotFound, notFoundPage, nil)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = a.Renderer.PageStatus(c, code, serverErrorPage, nil)
		return
	}
	_ = c.String(code, fmt.Sprintf("%v", he.Message))
}
