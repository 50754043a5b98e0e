package leadpage

// SiteConfig holds all configuration for a leadpage site. It is built
// once at process start and never mutated afterwards; every component
// receives the values it needs from here rather than reading the
// environment itself.
type SiteConfig struct {
	Name   string // Site name (default "J Supreme Marketing")
	Slogan string // Footer tagline
	URL    string // Canonical domain, e.g. "https://example.com"; empty means relative canonicals

	Addr string // Listen address (default ":5000")

	LeadsPath      string // Lead CSV path (default "leads.csv")
	NewsletterPath string // Subscriber CSV path (default "newsletter.csv")

	AdsEnabled      bool   // Master switch for ad markup
	AdClient        string // Ad network client id; ads render only when set
	AdSlotHeader    string // Slot id for the post header placement
	AdSlotInArticle string // Slot id for the in-article placement
	AdSlotSidebar   string // Slot id for the sidebar placement

	IncludePixels bool // Include extra tracking snippet placeholder in <head>

	StaticDir string // Public static asset dir (default "static")
	ImagesDir string // Flat image fallback dir (default "images")

	SubmitPerMinute int // Per-IP form submission limit; 0 disables limiting
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "J Supreme Marketing"
	}
	if c.Slogan == "" {
		c.Slogan = "Strategy · Execution · Distribution"
	}
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.LeadsPath == "" {
		c.LeadsPath = "leads.csv"
	}
	if c.NewsletterPath == "" {
		c.NewsletterPath = "newsletter.csv"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "images"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance
// before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
