package leadpage

import "embed"

// templateFS holds the pongo2 page templates shipped with the site.
//
//go:embed templates/*.html
var templateFS embed.FS

// postsYAML is the fixed blog content, parsed into the Registry at startup.
//
//go:embed posts.yaml
var postsYAML []byte
