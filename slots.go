package goslots

import (
	"io"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-slots/pkg/component"
	"github.com/goliatone/go-slots/pkg/engine"
	"github.com/goliatone/go-slots/pkg/scope"
)

// Engine renders component templates. Construct one with New.
type Engine = engine.Engine

// Option configures an Engine.
type Option = engine.Option

// Definition describes a renderable component; alias exported via the root
// package for convenience.
type Definition = component.Definition

// DataFunc derives a component's own data from call-site arguments.
type DataFunc = component.DataFunc

// Registry holds component definitions outside an engine.
type Registry = component.Registry

// ContextBehavior selects how component scopes relate to their callers.
type ContextBehavior = scope.ContextBehavior

const (
	// BehaviorDefault lets components read every variable their caller can
	// see.
	BehaviorDefault = scope.BehaviorDefault

	// BehaviorIsolated restricts components to their own arguments; fills
	// still resolve against the caller.
	BehaviorIsolated = scope.BehaviorIsolated
)

// New constructs an Engine from the supplied options.
func New(options ...Option) (*Engine, error) {
	return engine.New(options...)
}

// NewRegistry creates an empty component registry for callers that assemble
// definitions before constructing an engine.
func NewRegistry() *Registry {
	return component.NewRegistry()
}

// ParseBehavior maps a configuration string onto a ContextBehavior.
func ParseBehavior(value string) (ContextBehavior, error) {
	return scope.ParseBehavior(value)
}

// RenderHTML builds a throwaway engine from options, renders the named
// component with data, and returns the output. It is the simplest entry point
// for callers that just want HTML once; anything rendering repeatedly should
// hold on to an Engine instead.
func RenderHTML(name string, data map[string]any, options ...Option) (string, error) {
	eng, err := engine.New(options...)
	if err != nil {
		return "", err
	}
	return eng.RenderHTML(name, data)
}

// RenderPage builds a throwaway engine from options and renders source as a
// page template against data.
func RenderPage(w io.Writer, source string, data map[string]any, options ...Option) error {
	eng, err := engine.New(options...)
	if err != nil {
		return err
	}
	return eng.RenderString(w, source, data)
}

// WithTemplatesDir loads component sources from a directory tree.
func WithTemplatesDir(dir string) Option {
	return engine.WithTemplatesDir(dir)
}

// WithTemplatesFS loads component sources from an fs.FS, the embedded builtin
// set included.
func WithTemplatesFS(fsys fs.FS) Option {
	return engine.WithTemplatesFS(fsys)
}

// WithRegistry seeds the engine from an existing registry.
func WithRegistry(registry *Registry) Option {
	return engine.WithRegistry(registry)
}

// WithGlobals makes values visible to every render.
func WithGlobals(globals map[string]any) Option {
	return engine.WithGlobals(globals)
}

// WithContextBehavior sets the isolation policy every render starts with.
func WithContextBehavior(behavior ContextBehavior) Option {
	return engine.WithContextBehavior(behavior)
}

// WithThemeSelector passes a go-theme selector through to the engine so
// theme/variant choices resolve into the `theme` template global.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return engine.WithTheme(selector, name, variant)
}

// WithFilter exposes a Go function as a template filter.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return engine.WithFilter(name, fn)
}
