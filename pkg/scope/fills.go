package scope

// fillKey builds the registry key for a slot fill. The component instance id
// prefixes the slot name so simultaneous renders of the same compiled
// template never collide, even when a component nests inside its own fill.
func fillKey(componentID, slotName string) string {
	return componentID + "__" + slotName
}

// SetSlotFill registers fill content for a slot of the given component
// instance. The shared fill registry is mutated in place, so the entry stays
// visible to every scope derived during the same pass.
func (s *Scope) SetSlotFill(componentID, slotName string, content any) {
	s.emitTrace("set", "fill", slotName, componentID)
	fills := s.fillMap()
	if fills == nil {
		fills = map[string]any{}
		s.Set(filledSlotsKey, fills)
	}
	fills[fillKey(componentID, slotName)] = content
}

// SlotFill returns the fill content registered for a slot of the given
// component instance. Absence is a normal outcome: it means no override was
// provided and the slot renders its default content.
func (s *Scope) SlotFill(componentID, slotName string) (any, bool) {
	s.emitTrace("get", "fill", slotName, componentID)
	fills := s.fillMap()
	if fills == nil {
		return nil, false
	}
	content, ok := fills[fillKey(componentID, slotName)]
	return content, ok
}

// SetSlotAssociation binds a slot occurrence to the component instance whose
// fills it resolves against. The binding lands in the top layer; when the
// top layer still shares the enclosing layer's association map, the map is
// cloned first so recursive use of the same template cannot corrupt the
// enclosing binding.
func (s *Scope) SetSlotAssociation(slotID, componentID string) {
	top := s.layers[len(s.layers)-1]
	if _, ok := top[slotAssocKey]; !ok {
		top[slotAssocKey] = copyAssociations(s.assocMap())
	}
	s.assocMap()[slotID] = componentID
}

// SlotAssociation returns the component instance a slot occurrence is bound
// to. A missing binding means the slot rendered without a preceding
// association, which is a bug in the calling dispatch and aborts the pass.
func (s *Scope) SlotAssociation(slotID string) (string, error) {
	assoc := s.assocMap()
	if assoc == nil {
		return "", &AssociationNotFoundError{SlotID: slotID}
	}
	componentID, ok := assoc[slotID]
	if !ok {
		return "", &AssociationNotFoundError{SlotID: slotID}
	}
	return componentID, nil
}

// CopyIterationStateTo forwards the active iteration state to dst. The
// iteration construct binds its loop variables in the same layer as the
// marker, so the whole deepest marker-carrying layer is copied, not just the
// marker key.
func (s *Scope) CopyIterationStateTo(dst *Scope) {
	if dst == nil {
		return
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		if _, ok := s.layers[i][IterationKey]; ok {
			dst.PushLayer(s.layers[i])
			return
		}
	}
}

func (s *Scope) emitTrace(action, subject, name, componentID string) {
	if s.trace == nil {
		return
	}
	s.trace(action, subject, name, componentID)
}
