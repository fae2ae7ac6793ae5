package pager

import (
	_ "embed"
	"strconv"

	"github.com/goliatone/go-slots/pkg/component"
)

//go:embed templates/pager.slot
var templateSource string

// Registrar accepts component definitions. Both the engine and the component
// registry satisfy it.
type Registrar interface {
	Register(component.Definition) error
}

// Component bundles the pagination template with its data computation.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Definition returns the registerable component definition.
func (c *Component) Definition() component.Definition {
	opts := c.Options()
	return component.Definition{
		Name:   opts.ComponentName,
		Source: templateSource,
		Data:   dataFunc(opts),
	}
}

// Register adds the component to a registrar.
func (c *Component) Register(target Registrar) error {
	return target.Register(c.Definition())
}

// dataFunc derives the template data for one call site. Arguments out of
// range clamp rather than fail: page snaps into [1, total_pages] and per_page
// into [1, MaxPerPage].
func dataFunc(opts Options) component.DataFunc {
	return func(args map[string]any) map[string]any {
		total := toInt(args["total"])
		if total < 0 {
			total = 0
		}

		perPage := toInt(args["per_page"])
		if perPage <= 0 {
			perPage = opts.PerPage
		}
		if perPage > opts.MaxPerPage {
			perPage = opts.MaxPerPage
		}

		totalPages := (total + perPage - 1) / perPage
		if totalPages < 1 {
			totalPages = 1
		}

		page := toInt(args["page"])
		if page < 1 {
			page = 1
		}
		if page > totalPages {
			page = totalPages
		}

		first := page - opts.Window
		if first < 1 {
			first = 1
		}
		last := page + opts.Window
		if last > totalPages {
			last = totalPages
		}
		pages := make([]map[string]any, 0, last-first+1)
		for n := first; n <= last; n++ {
			pages = append(pages, map[string]any{
				"number":  n,
				"current": n == page,
			})
		}

		baseURL, _ := args["base_url"].(string)
		if baseURL == "" {
			baseURL = opts.BaseURL
		}

		return map[string]any{
			"total":       total,
			"per_page":    perPage,
			"page":        page,
			"total_pages": totalPages,
			"pages":       pages,
			"has_prev":    page > 1,
			"has_next":    page < totalPages,
			"prev_page":   page - 1,
			"next_page":   page + 1,
			"base_url":    baseURL,
		}
	}
}

func toInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
