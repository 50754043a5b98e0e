package leadpage

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrPostNotFound is returned when a requested post slug does not exist.
var ErrPostNotFound = errors.New("post not found")

// Registry holds the fixed set of blog posts loaded at startup. It is
// read-only configuration data, not a database: no mutation operations
// are exposed.
type Registry struct {
	posts  []BlogPost
	bySlug map[string]BlogPost
}

// NewRegistry parses YAML post entries and validates them. Slugs must be
// present and globally unique; order in the source is preserved.
func NewRegistry(raw []byte) (*Registry, error) {
	var posts []BlogPost
	if err := yaml.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("content: parse posts: %w", err)
	}
	r := &Registry{
		posts:  posts,
		bySlug: make(map[string]BlogPost, len(posts)),
	}
	for _, p := range posts {
		if p.Slug == "" {
			return nil, fmt.Errorf("content: post %q has no slug", p.Title)
		}
		if _, dup := r.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("content: duplicate slug %q", p.Slug)
		}
		r.bySlug[p.Slug] = p
	}
	return r, nil
}

// FindPost returns the post with the given slug, or ErrPostNotFound.
func (r *Registry) FindPost(slug string) (BlogPost, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return BlogPost{}, ErrPostNotFound
	}
	return p, nil
}

// ListPosts returns all posts in source order. Used by the blog index,
// the sitemap, and the feed.
func (r *Registry) ListPosts() []BlogPost {
	return r.posts
}

// sitePages is the static page table. Background filenames follow the
// <page>_bg_1920x1080.jpg deploy convention; the blog pages reuse the
// insights background. The newsletter confirmation page is deliberately
// absent from the sitemap.
var sitePages = []Page{
	{
		Key:         "home",
		Path:        "/",
		Template:    "home",
		Title:       "Strategy-led Marketing",
		Description: "Strategy-led marketing: positioning, systems, and distribution that converts.",
		ChangeFreq:  "weekly",
		Priority:    "1.0",
		Sitemap:     true,
	},
	{
		Key:         "insights",
		Path:        "/insights",
		Template:    "insights",
		Title:       "Insights",
		Description: "Marketing insights on positioning, systems, and distribution.",
		ChangeFreq:  "weekly",
		Priority:    "0.7",
		Sitemap:     true,
	},
	{
		Key:         "blog",
		Path:        "/blog",
		Template:    "blog_list",
		Title:       "Blog",
		Description: "Practical marketing strategy notes: positioning, systems, and distribution.",
		ChangeFreq:  "weekly",
		Priority:    "0.7",
		Sitemap:     true,
	},
	{
		Key:         "start",
		Path:        "/start",
		Template:    "start",
		Title:       "Request a Signal Audit",
		Description: "Request a Signal Audit—diagnosis-first marketing for brands that want clarity and influence.",
		ChangeFreq:  "monthly",
		Priority:    "0.7",
		Sitemap:     true,
	},
	{
		Key:         "privacy",
		Path:        "/privacy",
		Template:    "privacy",
		Title:       "Privacy Policy",
		Description: "Privacy policy for J Supreme Marketing.",
		ChangeFreq:  "yearly",
		Priority:    "0.2",
		Sitemap:     true,
	},
	{
		Key:         "terms",
		Path:        "/terms",
		Template:    "terms",
		Title:       "Terms",
		Description: "Terms of service for J Supreme Marketing.",
		ChangeFreq:  "yearly",
		Priority:    "0.2",
		Sitemap:     true,
	},
	{
		Key:         "thank_you",
		Path:        "/thank-you",
		Template:    "thank_you",
		Title:       "Thank You",
		Description: "Submission received.",
		ChangeFreq:  "yearly",
		Priority:    "0.1",
		Sitemap:     true,
	},
	{
		Key:         "insights",
		Path:        "/newsletter/thanks",
		Template:    "newsletter_thanks",
		Title:       "Subscribed",
		Description: "Newsletter subscribed.",
	},
}

// pageBackgrounds maps a page key to its background image filename.
var pageBackgrounds = map[string]string{
	"home":      "home_bg_1920x1080.jpg",
	"insights":  "insights_bg_1920x1080.jpg",
	"start":     "start_bg_1920x1080.jpg",
	"privacy":   "privacy_bg_1920x1080.jpg",
	"terms":     "terms_bg_1920x1080.jpg",
	"thank_you": "thank_you_bg_1920x1080.jpg",
	"blog":      "insights_bg_1920x1080.jpg",
}

func pageByPath(path string) (Page, bool) {
	for _, p := range sitePages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}
