package component

import (
	"fmt"
	"strings"
)

// DataFunc computes a component's own scope layer from the arguments of the
// call site. The returned map becomes the data layer the component's template
// renders against. A nil DataFunc passes the resolved arguments through
// unchanged.
type DataFunc func(args map[string]any) map[string]any

// Definition describes a renderable component: a template source with slot
// declarations plus an optional data-computation step.
type Definition struct {
	// Name is the identifier used by call sites and registry lookups.
	Name string

	// Source is the component's template body.
	Source string

	// Data derives the component's own scope layer from call-site
	// arguments. Optional.
	Data DataFunc
}

// Validate reports whether the definition can be registered.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("component: definition name is required")
	}
	if strings.TrimSpace(d.Source) == "" {
		return fmt.Errorf("component: definition %q has no template source", d.Name)
	}
	return nil
}

// OwnData resolves the component's data layer for one instantiation. The
// args map is never mutated.
func (d Definition) OwnData(args map[string]any) map[string]any {
	if d.Data != nil {
		return d.Data(args)
	}
	own := make(map[string]any, len(args))
	for key, value := range args {
		own[key] = value
	}
	return own
}
