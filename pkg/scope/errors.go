package scope

import "fmt"

// AssociationNotFoundError reports a slot that resolved without a component
// association. It signals a bug in the calling render dispatch, never user
// input, and must abort the render pass.
type AssociationNotFoundError struct {
	SlotID string
}

func (e *AssociationNotFoundError) Error() string {
	return fmt.Sprintf("scope: no component association for slot %q", e.SlotID)
}

// ScopeUnderflowError reports a Pop with a handle that no longer identifies a
// pushed layer. Like AssociationNotFoundError it indicates a call-discipline
// violation and is fatal to the pass.
type ScopeUnderflowError struct {
	Handle Handle
	Depth  int
}

func (e *ScopeUnderflowError) Error() string {
	return fmt.Sprintf("scope: pop handle %d out of range for depth %d", e.Handle, e.Depth)
}
