package scope

// EnterComponent records that componentID is about to render in this scope.
// It resolves the outer-root scope when an outer scope is supplied, seeds the
// shared association and fill maps, branches the association map when the
// scope is inside an iteration, and shifts the previous component id into the
// parent entry.
//
// Callers run it once per component instance, after pushing the instance's
// own data layer, so that popping the layer restores the enclosing state.
func (s *Scope) EnterComponent(outer *Scope, componentID string) {
	if outer != nil {
		s.setOuterRoot(outer)
	}

	// Shared across the whole render chain, so seed only once per pass.
	if !s.Has(slotAssocKey) {
		s.Set(slotAssocKey, map[string]string{})
	}
	if !s.Has(filledSlotsKey) {
		s.Set(filledSlotsKey, map[string]any{})
	}

	// An iteration body can re-render the same compiled template on every
	// pass. Branching the association map onto the top layer keeps bindings
	// made in one iteration from leaking into the next, even when the same
	// component nests inside itself.
	if s.InIteration() {
		s.Set(slotAssocKey, copyAssociations(s.assocMap()))
	}

	s.setComponentID(componentID)
}

// setComponentID shifts the current component id into the parent entry and
// records componentID as current. Both writes land in the top layer, so a
// later Pop restores the enclosing component's identity.
func (s *Scope) setComponentID(componentID string) {
	s.Set(parentComponentKey, s.ComponentID())
	s.Set(currentComponentKey, componentID)
}

// ComponentID returns the id of the component currently rendering, or the
// empty string outside a component.
func (s *Scope) ComponentID() string {
	if value, ok := s.Get(currentComponentKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// ParentComponentID returns the id of the enclosing component, or the empty
// string when the current component is top-level.
func (s *Scope) ParentComponentID() string {
	if value, ok := s.Get(parentComponentKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// MakeIsolatedCopy returns a fresh scope that drops all user layers but
// carries forward the render-state needed for slot and fill resolution to
// keep working: the association and fill map references, the outer-root
// scope, the deepest iteration layer, and the current and parent component
// ids.
func (s *Scope) MakeIsolatedCopy() *Scope {
	root := s.OuterRootContext()
	assoc := s.assocMap()
	if assoc == nil {
		assoc = map[string]string{}
	}
	fills := s.fillMap()
	if fills == nil {
		fills = map[string]any{}
	}

	out := s.Fresh()
	out.Set(slotAssocKey, assoc)
	out.Set(filledSlotsKey, fills)
	out.setOuterRoot(root)
	s.CopyIterationStateTo(out)

	out.Set(currentComponentKey, s.ComponentID())
	out.Set(parentComponentKey, s.ParentComponentID())
	return out
}

func (s *Scope) assocMap() map[string]string {
	if value, ok := s.Get(slotAssocKey); ok {
		if m, ok := value.(map[string]string); ok {
			return m
		}
	}
	return nil
}

func (s *Scope) fillMap() map[string]any {
	if value, ok := s.Get(filledSlotsKey); ok {
		if m, ok := value.(map[string]any); ok {
			return m
		}
	}
	return nil
}

func copyAssociations(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
