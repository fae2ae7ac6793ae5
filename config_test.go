package goslots_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	goslots "github.com/goliatone/go-slots"
)

const sampleConfigYAML = `
templates: ""
behavior: isolated
globals:
  site: acme
components:
  banner: "<div>{{ text }}|{{ site }}</div>"
`

func TestParseConfig_YAML(t *testing.T) {
	cfg, err := goslots.ParseConfig([]byte(sampleConfigYAML), "slots.yml")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Behavior != "isolated" {
		t.Fatalf("Behavior = %q, want isolated", cfg.Behavior)
	}
	if cfg.Globals["site"] != "acme" {
		t.Fatalf("Globals = %v, want site: acme", cfg.Globals)
	}
	if _, ok := cfg.Components["banner"]; !ok {
		t.Fatalf("Components = %v, want a banner entry", cfg.Components)
	}
}

func TestParseConfig_JSON(t *testing.T) {
	cfg, err := goslots.ParseConfig([]byte(`{"behavior": "default", "theme": {"name": "base", "variant": "dark"}}`), "slots.json")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Theme.Name != "base" || cfg.Theme.Variant != "dark" {
		t.Fatalf("Theme = %+v, want base/dark", cfg.Theme)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := goslots.ParseConfig([]byte("{{nope"), "bad.yml"); err == nil {
		t.Fatal("ParseConfig() expected an error for malformed input")
	}
	if _, err := goslots.ParseConfig([]byte("   "), "empty.yml"); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("ParseConfig() error = %v, want an empty-document error", err)
	}
}

func TestConfigOptions_BadBehavior(t *testing.T) {
	cfg := goslots.Config{Behavior: "sideways"}
	if _, err := cfg.Options(); err == nil || !strings.Contains(err.Error(), "behavior") {
		t.Fatalf("Options() error = %v, want a behavior error", err)
	}
}

func TestNewFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.yml")
	if err := os.WriteFile(path, []byte(sampleConfigYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	eng, err := goslots.NewFromConfig(path)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if eng.Behavior() != goslots.BehaviorIsolated {
		t.Fatalf("Behavior() = %v, want isolated", eng.Behavior())
	}

	got, err := eng.RenderHTML("banner", map[string]any{"text": "hello"})
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if got != "<div>hello|</div>" {
		t.Fatalf("RenderHTML() = %q, want the global hidden under isolation", got)
	}
}
