package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/generate"
)

func TestSitemapRendersEntries(t *testing.T) {
	svc := New(nil, nil)

	xml, err := svc.Sitemap(context.Background(), []generate.SitemapEntry{
		{Loc: "https://example.com/", ChangeFreq: "daily", Priority: "1.0"},
		{Loc: "https://example.com/tools", LastMod: "2026-08-01"},
	}, SitemapOptions{})
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	if !strings.HasPrefix(xml, "<?xml") {
		t.Fatalf("missing xml header: %q", xml[:40])
	}
	for _, want := range []string{
		`xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`,
		"<loc>https://example.com/tools</loc>",
		"<changefreq>daily</changefreq>",
		"<lastmod>2026-08-01</lastmod>",
	} {
		if !strings.Contains(xml, want) {
			t.Fatalf("sitemap missing %q:\n%s", want, xml)
		}
	}
	if strings.Contains(xml, "xhtml") {
		t.Fatalf("unexpected alternate links without option:\n%s", xml)
	}
}

func TestSitemapEmitsLocaleAlternates(t *testing.T) {
	svc := New(nil, nil)

	xml, err := svc.Sitemap(context.Background(), []generate.SitemapEntry{
		{Loc: "https://example.com/ar/tools"},
	}, SitemapOptions{Alternates: true})
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	for _, want := range []string{
		`hreflang="ar"`,
		`hreflang="en"`,
		`href="https://example.com/ar/tools"`,
		`href="https://example.com/en/tools"`,
	} {
		if !strings.Contains(xml, want) {
			t.Fatalf("sitemap missing %q:\n%s", want, xml)
		}
	}
}

func TestSitemapValidation(t *testing.T) {
	svc := New(nil, nil)

	if _, err := svc.Sitemap(context.Background(), nil, SitemapOptions{}); err == nil {
		t.Fatal("expected error for empty entries")
	}
	if _, err := svc.Sitemap(context.Background(), []generate.SitemapEntry{
		{Loc: "/relative"},
	}, SitemapOptions{}); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := svc.Sitemap(context.Background(), []generate.SitemapEntry{
		{Loc: "https://example.com/"},
		{Loc: "https://other.com/"},
	}, SitemapOptions{}); err == nil {
		t.Fatal("expected error for mixed hosts")
	}
	if _, err := svc.Sitemap(context.Background(), []generate.SitemapEntry{
		{Loc: "https://example.com/", ChangeFreq: "sometimes"},
	}, SitemapOptions{}); err == nil {
		t.Fatal("expected error for invalid changefreq")
	}
}
