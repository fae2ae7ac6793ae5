package goslots

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-slots/pkg/engine"
)

// Config is the file-backed engine configuration. JSON and YAML documents are
// both accepted.
type Config struct {
	// Templates is the directory component sources are discovered under.
	Templates string `json:"templates" yaml:"templates"`

	// Extensions lists the file extensions treated as component sources.
	// Empty means the default set.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Behavior selects the context behavior, "default" or "isolated".
	Behavior string `json:"behavior" yaml:"behavior"`

	// Autoescape toggles HTML escaping of template expressions. Absent means
	// the engine default.
	Autoescape *bool `json:"autoescape" yaml:"autoescape"`

	// Globals are values visible to every render.
	Globals map[string]any `json:"globals" yaml:"globals"`

	// Theme names the desired theme selection. The selector itself comes
	// from code; pass it alongside via WithThemeSelector.
	Theme ThemeConfig `json:"theme" yaml:"theme"`

	// Components maps names to inline template sources registered ahead of
	// directory discovery.
	Components map[string]string `json:"components" yaml:"components"`
}

// ThemeConfig names a theme and variant.
type ThemeConfig struct {
	Name    string `json:"name" yaml:"name"`
	Variant string `json:"variant" yaml:"variant"`
}

// LoadConfig reads and parses a configuration file from the host filesystem.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("goslots: read config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// LoadConfigFS reads and parses a configuration file from fsys.
func LoadConfigFS(fsys fs.FS, path string) (Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("goslots: read config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig decodes a configuration document. JSON is tried first, then
// YAML; source only labels errors.
func ParseConfig(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("goslots: config %s is empty", source)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}
	return Config{}, fmt.Errorf("goslots: parse config %s: invalid JSON or YAML", source)
}

// Options converts the configuration into engine options.
func (c Config) Options() ([]Option, error) {
	var options []Option

	if dir := strings.TrimSpace(c.Templates); dir != "" {
		options = append(options, engine.WithTemplatesDir(dir))
	}
	for _, ext := range c.Extensions {
		options = append(options, engine.WithExtension(ext))
	}
	if value := strings.TrimSpace(c.Behavior); value != "" {
		behavior, err := ParseBehavior(value)
		if err != nil {
			return nil, fmt.Errorf("goslots: config behavior: %w", err)
		}
		options = append(options, engine.WithContextBehavior(behavior))
	}
	if c.Autoescape != nil {
		options = append(options, engine.WithAutoescape(*c.Autoescape))
	}
	if len(c.Globals) > 0 {
		options = append(options, engine.WithGlobals(c.Globals))
	}
	if len(c.Components) > 0 {
		registry, err := configRegistry(c.Components)
		if err != nil {
			return nil, err
		}
		options = append(options, engine.WithRegistry(registry))
	}

	return options, nil
}

func configRegistry(sources map[string]string) (*Registry, error) {
	registry := NewRegistry()
	for name, source := range sources {
		if err := registry.Register(Definition{Name: name, Source: source}); err != nil {
			return nil, fmt.Errorf("goslots: config component %q: %w", name, err)
		}
	}
	return registry, nil
}

// NewFromConfig loads a configuration file and constructs an engine from it.
// extra options apply after the configured ones, so code-level settings win.
func NewFromConfig(path string, extra ...Option) (*Engine, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	options, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(append(options, extra...)...)
}
