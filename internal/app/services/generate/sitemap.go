package generate

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/generate"
)

// SitemapOptions controls sitemap generation.
type SitemapOptions struct {
	// Alternates emits xhtml:link hreflang pairs for /ar/ and /en/ variants.
	Alternates bool `json:"alternates"`
}

const maxSitemapURLs = 50000

var validChangeFreq = map[string]bool{
	"always": true, "hourly": true, "daily": true, "weekly": true,
	"monthly": true, "yearly": true, "never": true,
}

type sitemapURL struct {
	XMLName    xml.Name       `xml:"url"`
	Loc        string         `xml:"loc"`
	LastMod    string         `xml:"lastmod,omitempty"`
	ChangeFreq string         `xml:"changefreq,omitempty"`
	Priority   string         `xml:"priority,omitempty"`
	Links      []sitemapXHTML `xml:"xhtml:link,omitempty"`
}

type sitemapXHTML struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr,omitempty"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders a sitemap-protocol XML document for the given entries.
// Every URL must be absolute and share the host of the first entry.
func (s *Service) Sitemap(_ context.Context, entries []generate.SitemapEntry, opts SitemapOptions) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("at least one url is required")
	}
	if len(entries) > maxSitemapURLs {
		return "", fmt.Errorf("sitemap exceeds %d urls", maxSitemapURLs)
	}

	var host string
	set := sitemapSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	if opts.Alternates {
		set.XHTML = "http://www.w3.org/1999/xhtml"
	}

	for i, entry := range entries {
		parsed, err := url.Parse(strings.TrimSpace(entry.Loc))
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return "", fmt.Errorf("entry %d: url must be absolute http or https", i+1)
		}
		if host == "" {
			host = parsed.Host
		} else if parsed.Host != host {
			return "", fmt.Errorf("entry %d: host %s does not match sitemap host %s", i+1, parsed.Host, host)
		}
		if entry.ChangeFreq != "" && !validChangeFreq[entry.ChangeFreq] {
			return "", fmt.Errorf("entry %d: invalid changefreq %q", i+1, entry.ChangeFreq)
		}

		u := sitemapURL{
			Loc:        parsed.String(),
			LastMod:    entry.LastMod,
			ChangeFreq: entry.ChangeFreq,
			Priority:   entry.Priority,
		}
		if opts.Alternates {
			u.Links = []sitemapXHTML{
				{Rel: "alternate", HrefLang: "ar", Href: localizedURL(parsed, "ar")},
				{Rel: "alternate", HrefLang: "en", Href: localizedURL(parsed, "en")},
			}
		}
		set.URLs = append(set.URLs, u)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sitemap: %w", err)
	}
	return xml.Header + string(body) + "\n", nil
}

// localizedURL rewrites the path under a locale prefix, replacing an existing
// /ar/ or /en/ prefix when present.
func localizedURL(u *url.URL, locale string) string {
	clone := *u
	path := clone.Path
	for _, known := range []string{"/ar", "/en"} {
		if path == known || strings.HasPrefix(path, known+"/") {
			path = strings.TrimPrefix(path, known)
			break
		}
	}
	if path == "" {
		path = "/"
	}
	clone.Path = "/" + locale + path
	return clone.String()
}
