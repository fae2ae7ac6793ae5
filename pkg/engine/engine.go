package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/flosch/pongo2/v6"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-slots/internal/loader"
	"github.com/goliatone/go-slots/pkg/component"
	"github.com/goliatone/go-slots/pkg/scope"
	"github.com/goliatone/go-slots/pkg/template"
)

// Engine wires component discovery, parsing, and rendering into one entry
// point. Construct it once and render from any goroutine; every render call
// works on its own scope.
type Engine struct {
	registry *component.Registry
	frags    *template.Fragments
	parser   *template.Parser
	renderer *template.Renderer
	behavior scope.ContextBehavior
	globals  scope.Layer
	trace    scope.TraceFunc
}

// New constructs an Engine, loading component sources from the configured
// directory or filesystem and compiling every registered definition.
func New(options ...Option) (*Engine, error) {
	cfg := &config{behavior: scope.BehaviorDefault}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		fsLoader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("engine: create local loader: %w", err)
		}
		loaders = append(loaders, fsLoader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	frags, err := template.NewFragments("goslots", loaders...)
	if err != nil {
		return nil, err
	}

	if cfg.autoescape != nil {
		pongo2.SetAutoescape(*cfg.autoescape)
	}
	registerMarkdownFilter(cfg.sanitizer)
	for name, fn := range cfg.filters {
		if err := frags.RegisterFilter(name, fn); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		registry: cfg.registry,
		frags:    frags,
		parser:   template.NewParser(frags),
		renderer: template.NewRenderer(frags),
		behavior: cfg.behavior,
		globals:  scope.Layer{},
	}
	if e.registry == nil {
		e.registry = component.NewRegistry()
	}
	if cfg.logger != nil {
		e.trace = traceFunc(cfg.logger)
	}

	for key, value := range cfg.globals {
		e.globals[key] = value
	}

	selection := cfg.selection
	if selection == nil && cfg.selector != nil {
		selection, err = cfg.selector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("engine: select theme %q/%q: %w", cfg.themeName, cfg.themeVariant, err)
		}
	}
	if themeCtx := themeContext(selection); themeCtx != nil {
		e.globals["theme"] = themeCtx
	}

	// Definitions handed over via the registry compile first, then sources
	// discovered on disk join them.
	for _, name := range e.registry.List() {
		def, err := e.registry.Get(name)
		if err != nil {
			return nil, err
		}
		if err := e.renderer.Register(def); err != nil {
			return nil, err
		}
	}
	if err := e.loadSources(cfg); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) loadSources(cfg *config) error {
	fsys := cfg.templates
	if fsys == nil && cfg.baseDir != "" {
		fsys = os.DirFS(cfg.baseDir)
	}
	if fsys == nil {
		return nil
	}

	sources, err := loader.Discover(fsys, ".", cfg.extensions)
	if err != nil {
		return err
	}
	for _, src := range sources {
		def := component.Definition{Name: src.Name, Source: src.Body}
		if err := e.registry.Register(def); err != nil {
			return fmt.Errorf("engine: load %s: %w", src.Path, err)
		}
		if err := e.renderer.Register(def); err != nil {
			return fmt.Errorf("engine: load %s: %w", src.Path, err)
		}
	}
	return nil
}

// Register adds a component definition at runtime and compiles it.
func (e *Engine) Register(def component.Definition) error {
	if err := e.registry.Register(def); err != nil {
		return err
	}
	return e.renderer.Register(def)
}

// Behavior reports the context behavior every render starts with.
func (e *Engine) Behavior() scope.ContextBehavior {
	return e.behavior
}

// Components returns the names of all renderable components, sorted.
func (e *Engine) Components() []string {
	return e.renderer.List()
}

// Has reports whether the named component can be rendered.
func (e *Engine) Has(name string) bool {
	return e.renderer.Has(loader.Normalize(name))
}

// Render renders the named component as the root of the output. data becomes
// the component's own data.
func (e *Engine) Render(w io.Writer, name string, data map[string]any) error {
	return e.renderer.RenderComponent(w, loader.Normalize(name), data, e.newScope())
}

// RenderHTML renders the named component and returns the output as a string.
func (e *Engine) RenderHTML(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderString parses source as a page template and renders it. Page
// templates may call components and loop, but they are not components
// themselves, so top-level @slot blocks have nothing to attach to.
func (e *Engine) RenderString(w io.Writer, source string, data map[string]any) error {
	tree, err := e.parser.Parse("inline", source)
	if err != nil {
		return err
	}
	sc := e.newScope()
	sc.PushLayer(scope.Layer(data))
	return e.renderer.RenderNodes(w, tree.Nodes, sc)
}

func (e *Engine) newScope() *scope.Scope {
	return scope.New(
		scope.WithBehavior(e.behavior),
		scope.WithTrace(e.trace),
		scope.WithDefaults(e.globals),
	)
}

func traceFunc(logger logrus.FieldLogger) scope.TraceFunc {
	return func(action, subject, name, componentID string) {
		logger.WithFields(logrus.Fields{
			"action":    action,
			"subject":   subject,
			"name":      name,
			"component": componentID,
		}).Debug("slot traffic")
	}
}
