package leadpage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// findImage looks for filename in the conventional static image dir
// first, then the flat images dir. The two-directory fallback lets a
// deployment use either layout without code changes. Returns the full
// filesystem path of the first match.
func (r *Renderer) findImage(filename string) (string, bool) {
	for _, dir := range []string{filepath.Join(r.cfg.StaticDir, "img"), r.cfg.ImagesDir} {
		p := filepath.Join(dir, filename)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// backgroundURL resolves the background image for a page key to a public
// URL path, or "" when the page has no mapping or the file is missing in
// both directories. Empty triggers the CSS fallback style.
func (r *Renderer) backgroundURL(pageKey string) string {
	filename, ok := pageBackgrounds[pageKey]
	if !ok {
		return ""
	}
	if _, found := r.findImage(filename); !found {
		return ""
	}
	return "/static/img/" + filename
}

func (a *App) handleImage(c echo.Context) error {
	name := c.Param("*")
	if name == "" || strings.Contains(name, "..") {
		return echo.ErrNotFound
	}
	p, ok := a.Renderer.findImage(name)
	if !ok {
		return echo.ErrNotFound
	}
	return c.File(p)
}
