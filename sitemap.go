package leadpage

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// handleSitemap emits every sitemap-flagged page plus every post
// permalink. Both lists come from the tables the router is built from,
// so a removed route or post disappears here in the same change.
func (a *App) handleSitemap(c echo.Context) error {
	var urls []sitemapURL
	for _, p := range sitePages {
		if !p.Sitemap {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:        siteURL(a.Config.URL, p.Path),
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}
	for _, post := range a.Registry.ListPosts() {
		urls = append(urls, sitemapURL{
			Loc:        siteURL(a.Config.URL, "/blog/"+post.Slug),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) handleRobots(c echo.Context) error {
	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Sitemap: " + siteURL(a.Config.URL, "/sitemap.xml"),
	}
	return c.String(http.StatusOK, strings.Join(lines, "\n")+"\n")
}
