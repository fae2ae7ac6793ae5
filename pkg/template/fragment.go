package template

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-slots/pkg/scope"
)

// Fragments compiles and executes the pongo2 text between directives. All
// component templates share one template set so filters and loaders apply
// uniformly.
type Fragments struct {
	mu  sync.RWMutex
	set *pongo2.TemplateSet
}

// NewFragments creates a fragment compiler backed by its own pongo2 set.
// When no loader is supplied a local filesystem loader rooted at the working
// directory is installed, which pongo2 requires for include resolution.
func NewFragments(name string, loaders ...pongo2.TemplateLoader) (*Fragments, error) {
	if strings.TrimSpace(name) == "" {
		name = "goslots"
	}
	if len(loaders) == 0 {
		loader, err := pongo2.NewLocalFileSystemLoader(".")
		if err != nil {
			return nil, fmt.Errorf("template: create default loader: %w", err)
		}
		loaders = []pongo2.TemplateLoader{loader}
	}
	return &Fragments{set: pongo2.NewSet(name, loaders...)}, nil
}

// Compile parses one pongo2 fragment.
func (f *Fragments) Compile(source string) (*pongo2.Template, error) {
	if f == nil || f.set == nil {
		return nil, errors.New("template: fragments not initialized")
	}
	tmpl, err := f.set.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("template: parse fragment: %w", err)
	}
	return tmpl, nil
}

// Execute renders a compiled fragment against the template-facing view of
// the scope: flattened, with the reserved render-state entries removed. The
// iteration marker stays visible so fragments can read loop counters.
func (f *Fragments) Execute(w io.Writer, tmpl *pongo2.Template, sc *scope.Scope) error {
	if f == nil || f.set == nil {
		return errors.New("template: fragments not initialized")
	}

	ctx := make(pongo2.Context)
	for key, value := range sc.Flatten() {
		if scope.IsReservedKey(key) {
			continue
		}
		ctx[key] = value
	}

	f.mu.RLock()
	err := tmpl.ExecuteWriter(ctx, w)
	f.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("template: execute fragment: %w", err)
	}
	return nil
}

// RegisterFilter exposes a Go function as a pongo2 filter usable from any
// fragment. The filter table is process wide, so existing names are
// rejected.
func (f *Fragments) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("template: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("template: filter %q already exists", name)
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
	return pongo2.RegisterFilter(name, filter)
}
