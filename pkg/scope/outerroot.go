package scope

// setOuterRoot resolves and stores the outer-root scope for the component
// about to render. outer is the scope that was active just outside the
// component's own template; the outer root is the single semantic layer of
// variables available at the top of that parent template. Fill content is
// written in the parent's lexical scope, so it is evaluated against this
// base rather than whatever nested scope the slot renders from.
func (s *Scope) setOuterRoot(outer *Scope) {
	var root *Scope

	switch {
	// Top-level component with isolation on. Once a prior resolution has
	// stored an outer root, the whole outer scope flattens into one layer,
	// hiding its layer structure from the fills.
	case outer != nil && outer.Depth() > 0 &&
		s.ParentComponentID() == "" &&
		s.behavior == BehaviorIsolated &&
		s.Has(outerRootKey):
		root = outer.Fresh()
		root.PushLayer(outer.Flatten())

	// Nested components keep only the parent's own data layer. Layer 0
	// holds engine-wide defaults, layer 1 is what the parent's data step
	// produced, and higher layers were pushed by the parent's node tree.
	case outer != nil && outer.Depth() > 1:
		root = outer.Fresh()
		root.PushLayer(outer.layers[1])

	default:
		root = s.Fresh()
	}

	// Carry the live map references so slot and fill resolution stays
	// consistent no matter which scope a fill renders against.
	if assoc := s.assocMap(); assoc != nil {
		root.Set(slotAssocKey, assoc)
	}
	if fills := s.fillMap(); fills != nil {
		root.Set(filledSlotsKey, fills)
	}

	s.Set(outerRootKey, root)
}

// OuterRootContext returns the outer-root scope stored during EnterComponent
// or MakeIsolatedCopy, or nil when none has been resolved yet.
func (s *Scope) OuterRootContext() *Scope {
	if value, ok := s.Get(outerRootKey); ok {
		if root, ok := value.(*Scope); ok {
			return root
		}
	}
	return nil
}
