package generate

import (
	"context"
	"strings"
	"testing"
)

func TestPasswordCoversEnabledClasses(t *testing.T) {
	svc := New(nil, nil)

	result, err := svc.Password(context.Background(), PasswordOptions{
		Length: 16, Upper: true, Lower: true, Digits: true, Symbols: true,
	})
	if err != nil {
		t.Fatalf("Password: %v", err)
	}
	if len(result.Password) != 16 {
		t.Fatalf("expected length 16, got %d", len(result.Password))
	}
	for _, class := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		if !strings.ContainsAny(result.Password, class) {
			t.Fatalf("password %q missing class %q", result.Password, class[:5])
		}
	}
	if result.Label != "strong" {
		t.Fatalf("expected strong label, got %q", result.Label)
	}
}

func TestPasswordExcludesAmbiguous(t *testing.T) {
	svc := New(nil, nil)

	for i := 0; i < 20; i++ {
		result, err := svc.Password(context.Background(), PasswordOptions{
			Length: 32, Upper: true, Lower: true, Digits: true, ExcludeAmbiguous: true,
		})
		if err != nil {
			t.Fatalf("Password: %v", err)
		}
		if strings.ContainsAny(result.Password, ambiguous) {
			t.Fatalf("password %q contains ambiguous characters", result.Password)
		}
	}
}

func TestPasswordRejectsInvalidOptions(t *testing.T) {
	svc := New(nil, nil)

	if _, err := svc.Password(context.Background(), PasswordOptions{Length: 2, Lower: true}); err == nil {
		t.Fatal("expected error for short length")
	}
	if _, err := svc.Password(context.Background(), PasswordOptions{Length: 12}); err == nil {
		t.Fatal("expected error with no classes enabled")
	}
	if _, err := svc.Password(context.Background(), PasswordOptions{Length: 200, Lower: true}); err == nil {
		t.Fatal("expected error for excessive length")
	}
}

func TestStrengthBands(t *testing.T) {
	cases := []struct {
		password string
		label    string
	}{
		{"abc", "weak"},
		{"abcdefgh", "weak"},
		{"Abcdef1", "fair"},
		{"Abcdef123456", "good"},
		{"Abcdef123456!@#$", "strong"},
	}
	for _, tc := range cases {
		if got := strengthLabel(Strength(tc.password)); got != tc.label {
			t.Fatalf("Strength(%q) labeled %q, want %q", tc.password, got, tc.label)
		}
	}
}
