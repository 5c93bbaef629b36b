package generate

import (
	"context"
	"testing"
)

func TestBusinessNamesUnique(t *testing.T) {
	svc := New(nil, nil)

	names, err := svc.BusinessNames(context.Background(), "coffee", "modern", 10)
	if err != nil {
		t.Fatalf("BusinessNames: %v", err)
	}
	if len(names) != 10 {
		t.Fatalf("expected 10 candidates, got %d", len(names))
	}
	seen := make(map[string]bool)
	for _, c := range names {
		if seen[c.Name] {
			t.Fatalf("duplicate candidate %q", c.Name)
		}
		seen[c.Name] = true
		if c.Slug == "" {
			t.Fatalf("candidate %q has empty slug", c.Name)
		}
	}
}

func TestBusinessNamesValidation(t *testing.T) {
	svc := New(nil, nil)

	if _, err := svc.BusinessNames(context.Background(), "", "modern", 5); err == nil {
		t.Fatal("expected error for empty keyword")
	}
	if _, err := svc.BusinessNames(context.Background(), "shop", "brutalist", 5); err == nil {
		t.Fatal("expected error for unknown style")
	}
	if _, err := svc.BusinessNames(context.Background(), "shop", "modern", 0); err == nil {
		t.Fatal("expected error for zero count")
	}
	if _, err := svc.BusinessNames(context.Background(), "shop", "modern", 51); err == nil {
		t.Fatal("expected error for excessive count")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name, want string
	}{
		{"Nova Coffee", "nova-coffee"},
		{"Café Olé", "cafe-ole"},
		{"  Spaced   Out  ", "spaced-out"},
		{"متجر القهوة", "متجر-القهوة"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
