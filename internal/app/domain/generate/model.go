// Package generate defines result types for the generator tools.
package generate

// PasswordResult carries a generated password and its strength assessment.
type PasswordResult struct {
	Password string   `json:"password"`
	Length   int      `json:"length"`
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Classes  []string `json:"classes"`
}

// Strength labels for password scoring.
const (
	StrengthWeak   = "weak"
	StrengthFair   = "fair"
	StrengthGood   = "good"
	StrengthStrong = "strong"
)

// NameCandidate is one generated business name suggestion.
type NameCandidate struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UTMLink is a campaign attribution URL built from its components.
type UTMLink struct {
	URL      string `json:"url"`
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
	Term     string `json:"term,omitempty"`
	Content  string `json:"content,omitempty"`
}

// SitemapEntry describes one URL in a sitemap.
type SitemapEntry struct {
	Loc        string `json:"loc"`
	LastMod    string `json:"lastmod,omitempty"`
	ChangeFreq string `json:"changefreq,omitempty"`
	Priority   string `json:"priority,omitempty"`
}
