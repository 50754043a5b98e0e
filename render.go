package leadpage

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"
)

// Renderer composes the shared layout with per-page body fragments.
// All templates are parsed once at startup; a parse failure aborts boot
// instead of surfacing as a request-time 500.
type Renderer struct {
	cfg            SiteConfig
	tpls           map[string]*pongo2.Template
	newsletterHTML string
}

// NewRenderer parses every embedded template. Template names are the
// filenames without the .html suffix.
func NewRenderer(cfg SiteConfig) (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: read templates: %w", err)
	}
	tpls := make(map[string]*pongo2.Template, len(entries))
	for _, e := range entries {
		b, err := templateFS.ReadFile("templates/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("render: read %s: %w", e.Name(), err)
		}
		tpl, err := pongo2.FromString(string(b))
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", e.Name(), err)
		}
		tpls[strings.TrimSuffix(e.Name(), ".html")] = tpl
	}
	r := &Renderer{cfg: cfg, tpls: tpls}

	// The newsletter signup block is static markup shared by several
	// pages; render it once and inject it as a safe string.
	nl, err := r.execute("newsletter_block", pongo2.Context{})
	if err != nil {
		return nil, err
	}
	r.newsletterHTML = nl
	return r, nil
}

func (r *Renderer) execute(name string, ctx pongo2.Context) (string, error) {
	tpl, ok := r.tpls[name]
	if !ok {
		return "", fmt.Errorf("render: unknown template %q", name)
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("render: execute %s: %w", name, err)
	}
	return out, nil
}

const adUnitHTML = `<div class="adbox">
  <div class="adlabel">ADVERTISEMENT</div>
  <ins class="adsbygoogle"
       style="display:block"
       data-ad-client="%s"
       data-ad-slot="%s"
       data-ad-format="auto"
       data-full-width-responsive="true"></ins>
  <script>(adsbygoogle = window.adsbygoogle || []).push({});</script>
</div>`

// AdUnit returns the markup for one ad placement. Ads render only when
// the master switch is on AND a client id is configured AND the slot id
// is set; otherwise the result is empty, never a partial block.
func (r *Renderer) AdUnit(slot string) string {
	if !r.cfg.AdsEnabled || r.cfg.AdClient == "" || slot == "" {
		return ""
	}
	return fmt.Sprintf(adUnitHTML, r.cfg.AdClient, slot)
}

// Page renders pg's body fragment inside the shared layout with a 200.
func (r *Renderer) Page(c echo.Context, pg Page, extra pongo2.Context) error {
	return r.PageStatus(c, http.StatusOK, pg, extra)
}

// PageStatus renders a page with an explicit status code. The body is
// rendered first with page-local data, then handed to the layout as a
// safe string for the layout to wrap.
func (r *Renderer) PageStatus(c echo.Context, code int, pg Page, extra pongo2.Context) error {
	bodyCtx := pongo2.Context{
		"hero_bg_url":      r.backgroundURL(pg.Key),
		"newsletter_block": r.newsletterHTML,
		"ad_sidebar":       r.AdUnit(r.cfg.AdSlotSidebar),
	}
	for k, v := range extra {
		bodyCtx[k] = v
	}
	body, err := r.execute(pg.Template, bodyCtx)
	if err != nil {
		return err
	}

	jsonLD := WebsiteJsonLD(r.cfg)
	if v, ok := extra["json_ld"].(string); ok && v != "" {
		jsonLD = v
	}
	html, err := r.execute("layout", pongo2.Context{
		"app_name":        r.cfg.Name,
		"slogan":          r.cfg.Slogan,
		"meta_title":      r.cfg.Name + " | " + pg.Title,
		"meta_desc":       pg.Description,
		"canonical":       siteURL(r.cfg.URL, c.Request().URL.Path),
		"include_pixels":  r.cfg.IncludePixels,
		"adsense_enabled": r.cfg.AdsEnabled && r.cfg.AdClient != "",
		"adsense_client":  r.cfg.AdClient,
		"json_ld":         jsonLD,
		"body":            body,
	})
	if err != nil {
		return err
	}
	return c.HTML(code, html)
}
