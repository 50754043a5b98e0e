package leadpage

// LeadRecord is a contact-form submission as stored in the leads CSV.
// Records are immutable once written; the field order matches the CSV
// header order in store.go.
type LeadRecord struct {
	CreatedAt string // UTC, RFC 3339
	Name      string
	Email     string
	Company   string
	Website   string
	Budget    string
	Goal      string
	Message   string
	Source    string
	IP        string
	UserAgent string
}

// SubscriberRecord is a newsletter signup as stored in the newsletter CSV.
type SubscriberRecord struct {
	CreatedAt string
	Email     string
	Source    string
	IP        string
	UserAgent string
}

// BlogPost is a fixed content entry loaded from the embedded posts.yaml.
// Body holds a trusted HTML fragment rendered inside the post template.
type BlogPost struct {
	Slug    string `yaml:"slug"`
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Excerpt string `yaml:"excerpt"`
	Body    string `yaml:"body"`
}

// Page describes one static page route. The same table drives rendering
// (title, description, background lookup) and the sitemap, so removing a
// page removes its sitemap entry in the same change.
type Page struct {
	Key         string // background lookup key
	Path        string
	Template    string
	Title       string
	Description string
	ChangeFreq  string
	Priority    string
	Sitemap     bool
}
