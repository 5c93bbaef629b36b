// Package robots defines the parsed representation of a robots.txt file.
package robots

// Rule is a single Allow or Disallow directive.
type Rule struct {
	Allow bool   `json:"allow"`
	Path  string `json:"path"`
	Line  int    `json:"line"`
}

// Group is a block of rules applying to one or more user agents.
type Group struct {
	UserAgents []string `json:"user_agents"`
	Rules      []Rule   `json:"rules"`
	CrawlDelay float64  `json:"crawl_delay,omitempty"`
}

// Issue is a validation error or warning with its source line.
type Issue struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report is the full validation outcome for one robots.txt document.
type Report struct {
	Valid    bool     `json:"valid"`
	Groups   []Group  `json:"groups"`
	Sitemaps []string `json:"sitemaps"`
	Host     string   `json:"host,omitempty"`
	Errors   []Issue  `json:"errors"`
	Warnings []Issue  `json:"warnings"`
}
