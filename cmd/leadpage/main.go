// Command leadpage runs the marketing site server. All deployment
// settings come from environment variables; every one is optional.
package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jsupreme/leadpage"
)

func main() {
	cfg := leadpage.SiteConfig{
		URL:             env("CANONICAL_DOMAIN"),
		Addr:            ":" + leadpage.EnvOr("PORT", "5000"),
		LeadsPath:       env("LEADS_CSV"),
		NewsletterPath:  env("NEWSLETTER_CSV"),
		AdsEnabled:      env("ADSENSE_ENABLED") != "",
		AdClient:        env("ADSENSE_CLIENT"),
		AdSlotHeader:    env("ADSENSE_SLOT_HEADER"),
		AdSlotInArticle: env("ADSENSE_SLOT_INARTICLE"),
		AdSlotSidebar:   env("ADSENSE_SLOT_SIDEBAR"),
		IncludePixels:   env("INCLUDE_PIXELS") != "",
	}
	if n, err := strconv.Atoi(env("SUBMIT_RATE_LIMIT")); err == nil && n > 0 {
		cfg.SubmitPerMinute = n
	}

	app, err := leadpage.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
