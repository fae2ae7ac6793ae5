package scope

// TraceFunc observes render-state events, currently fill registration and
// lookup. Hooks are best-effort: they must not mutate the scope and their
// failures are not observed.
type TraceFunc func(action, subject, name, componentID string)

// Option configures a Scope at construction time.
type Option func(*Scope)

// WithBehavior sets the isolation policy applied when outer-root scopes are
// resolved.
func WithBehavior(behavior ContextBehavior) Option {
	return func(s *Scope) {
		if behavior == "" {
			return
		}
		s.behavior = behavior
	}
}

// WithTrace installs a trace hook. A nil hook disables tracing.
func WithTrace(fn TraceFunc) Option {
	return func(s *Scope) {
		s.trace = fn
	}
}

// WithDefaults seeds the bottom layer with the provided values.
func WithDefaults(values Layer) Option {
	return func(s *Scope) {
		for key, value := range values {
			s.layers[0][key] = value
		}
	}
}
