package pager

// Options configures the pagination component.
type Options struct {
	// ComponentName is the name call sites use. Defaults to "pager".
	ComponentName string

	// PerPage is the item count per page when the call site does not pass
	// per_page.
	PerPage int

	// MaxPerPage caps the per_page argument.
	MaxPerPage int

	// Window is how many page links appear on each side of the current page.
	Window int

	// BaseURL prefixes every page link when the call site does not pass
	// base_url. The page number is appended as-is.
	BaseURL string
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the configuration used when no overrides are given.
func DefaultOptions() Options {
	return Options{
		ComponentName: "pager",
		PerPage:       20,
		MaxPerPage:    100,
		Window:        2,
		BaseURL:       "?page=",
	}
}

// NewOptions folds overrides into the defaults and normalizes the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.ComponentName == "" {
		opts.ComponentName = "pager"
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 20
	}
	if opts.MaxPerPage <= 0 {
		opts.MaxPerPage = 100
	}
	if opts.PerPage > opts.MaxPerPage {
		opts.PerPage = opts.MaxPerPage
	}
	if opts.Window < 0 {
		opts.Window = 2
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "?page="
	}
	return opts
}

// WithComponentName changes the name call sites use.
func WithComponentName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ComponentName = name
	}
}

// WithPerPage sets the default page size.
func WithPerPage(perPage int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PerPage = perPage
	}
}

// WithMaxPerPage caps the page size call sites may request.
func WithMaxPerPage(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxPerPage = limit
	}
}

// WithWindow sets how many page links surround the current page.
func WithWindow(window int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Window = window
	}
}

// WithBaseURL sets the link prefix page numbers are appended to.
func WithBaseURL(base string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BaseURL = base
	}
}
