package leadpage

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestApp(t *testing.T, mutate func(*SiteConfig)) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := SiteConfig{
		LeadsPath:      filepath.Join(dir, "leads.csv"),
		NewsletterPath: filepath.Join(dir, "newsletter.csv"),
		StaticDir:      filepath.Join(dir, "static"),
		ImagesDir:      filepath.Join(dir, "images"),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return app
}

func get(t *testing.T, app *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, app *App, target string, form url.Values, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func validLead() url.Values {
	return url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"company": {"Analytical Engines"},
		"budget":  {"$2,000–$5,000"},
		"goal":    {"More leads"},
		"message": {"Traffic but no conversions."},
	}
}

func TestStaticPagesRender(t *testing.T) {
	app := newTestApp(t, nil)
	for _, pg := range sitePages {
		rec := get(t, app, pg.Path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", pg.Path, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), app.Config.Name) {
			t.Errorf("GET %s should include the site name", pg.Path)
		}
	}
}

func TestHomePageTitle(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app, "/")
	body := rec.Body.String()
	if !strings.Contains(body, "<title>J Supreme Marketing | Strategy-led Marketing</title>") {
		t.Error("home page should compose site name and page title")
	}
	if !strings.Contains(body, `"@type":"WebSite"`) {
		t.Error("home page should carry WebSite JSON-LD")
	}
}

func TestBlogListShowsPosts(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app, "/blog")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, p := range app.Registry.ListPosts() {
		if !strings.Contains(body, p.Title) {
			t.Errorf("blog index should list %q", p.Title)
		}
		if !strings.Contains(body, "/blog/"+p.Slug) {
			t.Errorf("blog index should link to %q", p.Slug)
		}
	}
}

func TestBlogPostKnownSlug(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app, "/blog/positioning-before-promotion")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET post = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Positioning Before Promotion") {
		t.Error("post page should include the post title")
	}
	if !strings.Contains(body, `"@type":"BlogPosting"`) {
		t.Error("post page should carry BlogPosting JSON-LD")
	}
}

func TestBlogPostUnknownSlug(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app, "/blog/unknown-slug")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET unknown post = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Error("404 should render the not-found page")
	}
}

func TestLeadSubmitValid(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postForm(t, app, "/api/lead", validLead(), map[string]string{
		"User-Agent":      "test-agent",
		"X-Forwarded-For": "203.0.113.9",
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("POST /api/lead = %d, want 302, body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/thank-you" {
		t.Errorf("Location = %q, want /thank-you", loc)
	}

	rows := readRows(t, app.Config.LeadsPath)
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	row := rows[1]
	if row[0] == "" {
		t.Error("created_at_utc should be set")
	}
	if row[1] != "Ada Lovelace" || row[2] != "ada@example.com" || row[7] != "Traffic but no conversions." {
		t.Errorf("required fields not stored verbatim: %v", row)
	}
	if row[4] != "" {
		t.Errorf("omitted website should store empty, got %q", row[4])
	}
	if row[8] != "website_form" {
		t.Errorf("source default = %q, want website_form", row[8])
	}
	if row[9] != "203.0.113.9" {
		t.Errorf("ip = %q, want the forwarded-for value verbatim", row[9])
	}
	if row[10] != "test-agent" {
		t.Errorf("user_agent = %q, want test-agent", row[10])
	}
}

func TestLeadSubmitMissingRequiredField(t *testing.T) {
	app := newTestApp(t, nil)

	for _, missing := range []string{"name", "email", "message"} {
		form := validLead()
		form.Del(missing)
		rec := postForm(t, app, "/api/lead", form, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("missing %s: status = %d, want 400", missing, rec.Code)
		}
	}

	// Whitespace-only counts as missing.
	form := validLead()
	form.Set("email", "   ")
	if rec := postForm(t, app, "/api/lead", form, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("blank email: status = %d, want 400", rec.Code)
	}

	if _, err := os.Stat(app.Config.LeadsPath); !os.IsNotExist(err) {
		t.Error("no lead file should exist after rejected submissions")
	}
}

func TestLeadAliasPreservesMethod(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postForm(t, app, "/lead", validLead(), nil)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("POST /lead = %d, want 307", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/api/lead" {
		t.Errorf("Location = %q, want /api/lead", loc)
	}
}

func TestNewsletterSubmitValid(t *testing.T) {
	app := newTestApp(t, nil)
	form := url.Values{"email": {"ada@example.com"}, "source": {"newsletter_block"}}
	rec := postForm(t, app, "/api/newsletter", form, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("POST /api/newsletter = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/newsletter/thanks" {
		t.Errorf("Location = %q, want /newsletter/thanks", loc)
	}

	rows := readRows(t, app.Config.NewsletterPath)
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	if rows[1][1] != "ada@example.com" || rows[1][2] != "newsletter_block" {
		t.Errorf("subscriber row mismatch: %v", rows[1])
	}
}

func TestNewsletterRejectsInvalidEmail(t *testing.T) {
	app := newTestApp(t, nil)

	for _, email := range []string{"", "   ", "not-an-email"} {
		rec := postForm(t, app, "/api/newsletter", url.Values{"email": {email}}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("email %q: status = %d, want 400", email, rec.Code)
		}
	}

	if _, err := os.Stat(app.Config.NewsletterPath); !os.IsNotExist(err) {
		t.Error("no subscriber file should exist after rejected submissions")
	}
}

func TestConcurrentLeadSubmissions(t *testing.T) {
	app := newTestApp(t, nil)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			form := validLead()
			form.Set("name", "Concurrent "+string(rune('A'+i)))
			rec := postForm(t, app, "/api/lead", form, nil)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusFound {
			t.Fatalf("submission %d status = %d, want 302", i, code)
		}
	}
	rows := readRows(t, app.Config.LeadsPath)
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3 (header + 2 records)", len(rows))
	}
	for _, row := range rows[1:] {
		if len(row) != len(leadHeader) {
			t.Errorf("corrupt row: %v", row)
		}
	}
}

func TestSubmitRateLimit(t *testing.T) {
	app := newTestApp(t, func(cfg *SiteConfig) {
		cfg.SubmitPerMinute = 1
	})

	if rec := postForm(t, app, "/api/lead", validLead(), nil); rec.Code != http.StatusFound {
		t.Fatalf("first submission = %d, want 302", rec.Code)
	}
	if rec := postForm(t, app, "/api/lead", validLead(), nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second submission = %d, want 429", rec.Code)
	}

	rows := readRows(t, app.Config.LeadsPath)
	if len(rows) != 2 {
		t.Errorf("rate-limited submission must not persist, rows = %d", len(rows))
	}
}

func TestSitemap(t *testing.T) {
	app := newTestApp(t, func(cfg *SiteConfig) {
		cfg.URL = "https://example.com"
	})
	rec := get(t, app, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("content type = %q, want application/xml", ct)
	}

	var parsed sitemapURLSet
	if err := xml.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("parse sitemap: %v", err)
	}

	wantStatic := 0
	for _, pg := range sitePages {
		if pg.Sitemap {
			wantStatic++
		}
	}
	want := wantStatic + len(app.Registry.ListPosts())
	if len(parsed.URLs) != want {
		t.Fatalf("sitemap entries = %d, want %d", len(parsed.URLs), want)
	}

	locs := make(map[string]sitemapURL)
	for _, u := range parsed.URLs {
		locs[u.Loc] = u
	}
	home, ok := locs["https://example.com/"]
	if !ok {
		t.Fatal("sitemap should contain the home page")
	}
	if home.Priority != "1.0" || home.ChangeFreq != "weekly" {
		t.Errorf("home hints = %s/%s, want weekly/1.0", home.ChangeFreq, home.Priority)
	}
	post, ok := locs["https://example.com/blog/positioning-before-promotion"]
	if !ok {
		t.Fatal("sitemap should contain post permalinks")
	}
	if post.Priority != "0.6" || post.ChangeFreq != "monthly" {
		t.Errorf("post hints = %s/%s, want monthly/0.6", post.ChangeFreq, post.Priority)
	}
	if _, ok := locs["https://example.com/newsletter/thanks"]; ok {
		t.Error("newsletter confirmation must not appear in the sitemap")
	}
}

func TestRobots(t *testing.T) {
	app := newTestApp(t, func(cfg *SiteConfig) {
		cfg.URL = "https://example.com"
	})
	rec := get(t, app, "/robots.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /robots.txt = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "User-agent: *") || !strings.Contains(body, "Allow: /") {
		t.Errorf("robots should allow all crawling, got %q", body)
	}
	if !strings.Contains(body, "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots should point at the sitemap, got %q", body)
	}
}

func TestRobotsRelativeWithoutDomain(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app, "/robots.txt")
	if !strings.Contains(rec.Body.String(), "Sitemap: /sitemap.xml") {
		t.Errorf("robots without a domain should use a relative sitemap path, got %q", rec.Body.String())
	}
}

func TestFeed(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app, "/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /feed.xml = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("content type = %q, want application/rss+xml", ct)
	}
	if !strings.Contains(rec.Body.String(), "The Signal Audit Framework") {
		t.Error("feed should include post titles")
	}
}

func TestStaticImageTwoDirectoryLookup(t *testing.T) {
	app := newTestApp(t, nil)
	writeFile(t, filepath.Join(app.Config.ImagesDir, "home_bg_1920x1080.jpg"))

	rec := get(t, app, "/static/img/home_bg_1920x1080.jpg")
	if rec.Code != http.StatusOK {
		t.Fatalf("image in fallback dir = %d, want 200", rec.Code)
	}

	rec = get(t, app, "/static/img/missing.jpg")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing image = %d, want 404", rec.Code)
	}

	rec = get(t, app, "/static/img/../../secret.txt")
	if rec.Code == http.StatusOK {
		t.Error("path traversal must not be served")
	}
}

func TestHeroBackgroundInMarkup(t *testing.T) {
	app := newTestApp(t, nil)

	rec := get(t, app, "/")
	if !strings.Contains(rec.Body.String(), `hero-bg fallback`) {
		t.Error("home without a background image should use the fallback style")
	}

	writeFile(t, filepath.Join(app.Config.StaticDir, "img", "home_bg_1920x1080.jpg"))
	rec = get(t, app, "/")
	if !strings.Contains(rec.Body.String(), "/static/img/home_bg_1920x1080.jpg") {
		t.Error("home with a background image should reference its public URL")
	}
}

func TestAdMarkupInPostPage(t *testing.T) {
	app := newTestApp(t, func(cfg *SiteConfig) {
		cfg.AdsEnabled = true
		cfg.AdClient = "ca-pub-123"
		cfg.AdSlotHeader = "h-1"
		cfg.AdSlotSidebar = "s-1"
		// In-article slot deliberately unset.
	})
	rec := get(t, app, "/blog/positioning-before-promotion")
	body := rec.Body.String()
	if !strings.Contains(body, `data-ad-slot="h-1"`) {
		t.Error("header ad should render when fully configured")
	}
	if !strings.Contains(body, `data-ad-slot="s-1"`) {
		t.Error("sidebar ad should render when fully configured")
	}
	if strings.Contains(body, "data-ad-slot=\"\"") {
		t.Error("unset slot must render nothing, not a partial block")
	}
	if !strings.Contains(body, "adsbygoogle.js?client=ca-pub-123") {
		t.Error("ad head script should render when ads are enabled")
	}
}

func TestAdMarkupAbsentByDefault(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app, "/blog/positioning-before-promotion")
	if strings.Contains(rec.Body.String(), "adsbygoogle") {
		t.Error("no ad markup should render without configuration")
	}
}
