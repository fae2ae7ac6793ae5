package engine

import (
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-slots/pkg/component"
	"github.com/goliatone/go-slots/pkg/scope"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	registry     *component.Registry
	templates    fs.FS
	baseDir      string
	extensions   []string
	globals      map[string]any
	behavior     scope.ContextBehavior
	logger       logrus.FieldLogger
	filters      map[string]func(input any, param any) (any, error)
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	selection    *theme.Selection
	sanitizer    *bluemonday.Policy
	autoescape   *bool
}

// WithRegistry injects a pre-populated component registry. Its definitions
// are compiled when the engine is constructed.
func WithRegistry(registry *component.Registry) Option {
	return func(cfg *config) {
		cfg.registry = registry
	}
}

// WithTemplatesFS loads component sources from an fs.FS.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = fsys
	}
}

// WithTemplatesDir loads component sources from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithExtension adds a file extension recognized as a component source.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extensions = append(cfg.extensions, trimmed)
	}
}

// WithGlobals seeds values visible to every render below all template data.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithContextBehavior selects how component scopes resolve surrounding data.
func WithContextBehavior(behavior scope.ContextBehavior) Option {
	return func(cfg *config) {
		cfg.behavior = behavior
	}
}

// WithTraceLogger enables debug logging of slot fill traffic.
func WithTraceLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithFilter registers a template filter available to every fragment.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]func(any, any) (any, error))
		}
		cfg.filters[name] = fn
	}
}

// WithTheme resolves name/variant through a go-theme selector and exposes the
// result to templates under the "theme" global.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithThemeSelection exposes an already resolved theme selection to templates.
func WithThemeSelection(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.selection = selection
	}
}

// WithSanitizer overrides the bluemonday policy applied by the markdown
// filter.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

// WithAutoescape toggles HTML auto-escaping of fragment output.
func WithAutoescape(enabled bool) Option {
	return func(cfg *config) {
		cfg.autoescape = &enabled
	}
}
