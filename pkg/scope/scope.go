package scope

import "strings"

// IterationKey marks a layer pushed by an iteration construct. The construct
// binds its loop variables in the same layer, which is why state propagation
// copies whole layers rather than individual keys.
const IterationKey = "forloop"

const reservedPrefix = "_goslots_"

const (
	slotAssocKey        = reservedPrefix + "slot_assoc"
	filledSlotsKey      = reservedPrefix + "filled_slots"
	outerRootKey        = reservedPrefix + "outer_root"
	currentComponentKey = reservedPrefix + "current_component"
	parentComponentKey  = reservedPrefix + "parent_component"
)

// IsReservedKey reports whether key belongs to the render-state entries this
// package stores inside a Scope alongside user data. Renderers use it to keep
// bookkeeping values out of template contexts.
func IsReservedKey(key string) bool {
	return strings.HasPrefix(key, reservedPrefix)
}

// Layer is a single mapping in the scope stack.
type Layer map[string]any

// Handle identifies a pushed layer so the caller can pop back to the state
// that existed before the push.
type Handle int

// Scope is an ordered stack of layers. The bottom layer holds defaults, the
// top layer receives all writes. Lookups search top-first.
type Scope struct {
	layers   []Layer
	behavior ContextBehavior
	trace    TraceFunc
}

// New creates a scope with a single empty bottom layer.
func New(opts ...Option) *Scope {
	s := &Scope{
		layers:   []Layer{{}},
		behavior: BehaviorDefault,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Behavior returns the isolation policy this scope was created with. Derived
// scopes inherit it.
func (s *Scope) Behavior() ContextBehavior {
	return s.behavior
}

// Depth returns the number of layers on the stack.
func (s *Scope) Depth() int {
	return len(s.layers)
}

// Push adds an empty layer on top of the stack and returns its handle.
func (s *Scope) Push() Handle {
	s.layers = append(s.layers, Layer{})
	return Handle(len(s.layers) - 1)
}

// PushLayer adds a layer seeded with a copy of values and returns its handle.
func (s *Scope) PushLayer(values Layer) Handle {
	layer := make(Layer, len(values))
	for key, value := range values {
		layer[key] = value
	}
	s.layers = append(s.layers, layer)
	return Handle(len(s.layers) - 1)
}

// Pop removes the handle's layer and every layer above it, restoring the
// scope to the state before the matching push. The bottom layer cannot be
// popped. An already-removed or out-of-range handle returns a
// ScopeUnderflowError.
func (s *Scope) Pop(h Handle) error {
	idx := int(h)
	if idx <= 0 || idx >= len(s.layers) {
		return &ScopeUnderflowError{Handle: h, Depth: len(s.layers)}
	}
	s.layers = s.layers[:idx]
	return nil
}

// Get looks key up from the top layer down.
func (s *Scope) Get(key string) (any, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if value, ok := s.layers[i][key]; ok {
			return value, true
		}
	}
	return nil, false
}

// Has reports whether key is present in any layer.
func (s *Scope) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set writes into the current top layer. Lower layers are never mutated in
// place, so a later Pop discards the write.
func (s *Scope) Set(key string, value any) {
	s.layers[len(s.layers)-1][key] = value
}

// InIteration reports whether any layer carries the iteration marker.
func (s *Scope) InIteration() bool {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if _, ok := s.layers[i][IterationKey]; ok {
			return true
		}
	}
	return false
}

// Flatten merges all layers bottom to top into a single mapping. Values in
// higher layers win. Reserved render-state entries are included; callers that
// need a template-facing view filter with IsReservedKey.
func (s *Scope) Flatten() Layer {
	size := 0
	for _, layer := range s.layers {
		size += len(layer)
	}
	flat := make(Layer, size)
	for _, layer := range s.layers {
		for key, value := range layer {
			flat[key] = value
		}
	}
	return flat
}

// Snapshot returns a detached copy of the scope. Every layer is copied, so
// writes to either scope never reach the other. Map and slice values are
// shared, matching the shallow-copy discipline of the render-state maps.
func (s *Scope) Snapshot() *Scope {
	out := &Scope{
		layers:   make([]Layer, len(s.layers)),
		behavior: s.behavior,
		trace:    s.trace,
	}
	for i, layer := range s.layers {
		copied := make(Layer, len(layer))
		for key, value := range layer {
			copied[key] = value
		}
		out.layers[i] = copied
	}
	return out
}

// Fresh returns a new empty scope carrying the same behavior and trace hook
// but none of the layers.
func (s *Scope) Fresh() *Scope {
	return &Scope{
		layers:   []Layer{{}},
		behavior: s.behavior,
		trace:    s.trace,
	}
}
