package scope

import (
	"fmt"
	"strings"
)

// ContextBehavior selects the scope that slot fill content is evaluated
// against.
type ContextBehavior string

const (
	// BehaviorDefault renders fills against the parent component's own data
	// layer.
	BehaviorDefault ContextBehavior = "default"

	// BehaviorIsolated renders top-level fills against a single flattened
	// copy of the outer scope, hiding the ambient layer structure.
	BehaviorIsolated ContextBehavior = "isolated"
)

// ParseBehavior converts a configuration string into a ContextBehavior. The
// empty string maps to BehaviorDefault.
func ParseBehavior(value string) (ContextBehavior, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(BehaviorDefault):
		return BehaviorDefault, nil
	case string(BehaviorIsolated):
		return BehaviorIsolated, nil
	default:
		return "", fmt.Errorf("scope: unknown context behavior %q", value)
	}
}
