package generate

import (
	"context"
	"net/url"
	"testing"
)

func TestUTMLinkAppendsParameters(t *testing.T) {
	svc := New(nil, nil)

	link, err := svc.UTMLink(context.Background(), "https://example.com/products?page=2", UTMParams{
		Source:   "newsletter",
		Medium:   "email",
		Campaign: "summer-sale",
		Term:     "قهوة",
	})
	if err != nil {
		t.Fatalf("UTMLink: %v", err)
	}

	parsed, err := url.Parse(link.URL)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	if parsed.Host != "example.com" || parsed.Path != "/products" {
		t.Fatalf("origin not preserved: %q", link.URL)
	}
	q := parsed.Query()
	if q.Get("page") != "2" {
		t.Fatalf("existing query parameter lost: %q", link.URL)
	}
	if q.Get("utm_source") != "newsletter" || q.Get("utm_medium") != "email" || q.Get("utm_campaign") != "summer-sale" {
		t.Fatalf("utm parameters missing: %q", link.URL)
	}
	if q.Get("utm_term") != "قهوة" {
		t.Fatalf("utm_term not round-tripped: %q", link.URL)
	}
	if q.Get("utm_content") != "" {
		t.Fatalf("unexpected utm_content: %q", link.URL)
	}
}

func TestUTMLinkValidation(t *testing.T) {
	svc := New(nil, nil)
	params := UTMParams{Source: "s", Medium: "m", Campaign: "c"}

	if _, err := svc.UTMLink(context.Background(), "", params); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := svc.UTMLink(context.Background(), "ftp://example.com", params); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
	if _, err := svc.UTMLink(context.Background(), "/relative/path", params); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := svc.UTMLink(context.Background(), "https://example.com", UTMParams{Medium: "m", Campaign: "c"}); err == nil {
		t.Fatal("expected error for missing source")
	}
}
