package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr: %q", cfg.Server.Addr())
	}
	if cfg.RateLimit.RequestsPerSecond != 10 || cfg.RateLimit.Burst != 20 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Admin.UsageRetentionDays != 90 {
		t.Fatalf("unexpected usage retention: %d", cfg.Admin.UsageRetentionDays)
	}
	if cfg.ToolsFile != "config/tools.yaml" {
		t.Fatalf("unexpected tools file: %q", cfg.ToolsFile)
	}
}

func TestLoadOverridesAndValidation(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Logging.Level != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	t.Setenv("SERVER_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}

	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("RATE_LIMIT_RPS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero rps")
	}
}

func TestOrigins(t *testing.T) {
	s := ServerConfig{AllowedOrigins: "https://a.example, https://b.example ,"}
	got := s.Origins()
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Origins() = %v, want %v", got, want)
	}
}

func TestLoadToolsMissingFileUsesDefaults(t *testing.T) {
	tools, err := LoadTools(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadTools: %v", err)
	}
	if _, ok := tools.Carriers["dhl"]; !ok {
		t.Fatal("defaults missing dhl carrier")
	}
	if _, ok := tools.Gateways["mada"]; !ok {
		t.Fatal("defaults missing mada gateway")
	}
	if len(tools.NameWords["modern"].Prefixes) == 0 {
		t.Fatal("defaults missing modern name words")
	}
}

func TestLoadToolsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	overlay := `carriers:
  DHL:
    name: DHL Overridden
    divisor: 4000
  camel:
    name: Camel Post
    divisor: 7000
gateways:
  stripe:
    name: Stripe
    percent: 2.5
    fixed: 0.25
    currency: USD
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	tools, err := LoadTools(path)
	if err != nil {
		t.Fatalf("LoadTools: %v", err)
	}
	// Keys are normalised, overlay wins, untouched defaults survive.
	if tools.Carriers["dhl"].Divisor != 4000 {
		t.Fatalf("overlay not applied: %+v", tools.Carriers["dhl"])
	}
	if tools.Carriers["camel"].Name != "Camel Post" {
		t.Fatalf("new carrier missing: %+v", tools.Carriers)
	}
	if _, ok := tools.Carriers["aramex"]; !ok {
		t.Fatal("default carrier lost during overlay")
	}
	if tools.Gateways["stripe"].Percent != 2.5 {
		t.Fatalf("gateway overlay not applied: %+v", tools.Gateways["stripe"])
	}
}

func TestLoadToolsRejectsInvalidOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	if err := os.WriteFile(path, []byte("carriers:\n  broken:\n    name: Broken\n    divisor: 0\n"), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	if _, err := LoadTools(path); err == nil {
		t.Fatal("expected error for zero divisor")
	}

	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	if _, err := LoadTools(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
