package scope_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-slots/pkg/scope"
)

func TestSlotFill_AbsenceIsNormal(t *testing.T) {
	sc := scope.New()
	sc.Push()
	sc.EnterComponent(nil, "card#1")

	if got, ok := sc.SlotFill("card#1", "header"); ok || got != nil {
		t.Fatalf("expected no fill before registration, got %v (ok=%v)", got, ok)
	}

	sc.SetSlotFill("card#1", "header", "custom header")

	first, ok := sc.SlotFill("card#1", "header")
	if !ok || first != "custom header" {
		t.Fatalf("expected registered fill, got %v (ok=%v)", first, ok)
	}

	// Lookups have no side effects: repeated calls return the same result.
	second, ok := sc.SlotFill("card#1", "header")
	if !ok || second != first {
		t.Fatalf("expected identical result on repeat lookup, got %v (ok=%v)", second, ok)
	}
}

func TestSlotFill_KeyedPerComponentInstance(t *testing.T) {
	sc := scope.New()
	sc.Push()
	sc.EnterComponent(nil, "card#1")
	sc.SetSlotFill("card#1", "header", "outer content")

	// A second instance of the same template registers under its own id, so
	// the outer instance's fill survives the inner render untouched.
	h := sc.Push()
	sc.EnterComponent(nil, "card#2")
	sc.SetSlotFill("card#2", "header", "inner content")
	if err := sc.Pop(h); err != nil {
		t.Fatalf("pop failed: %v", err)
	}

	if got, ok := sc.SlotFill("card#1", "header"); !ok || got != "outer content" {
		t.Fatalf("inner instance overwrote the outer fill, got %v (ok=%v)", got, ok)
	}
	if got, ok := sc.SlotFill("card#2", "header"); !ok || got != "inner content" {
		t.Fatalf("expected inner fill registered, got %v (ok=%v)", got, ok)
	}
}

func TestSlotAssociation_MissingIsFatal(t *testing.T) {
	sc := scope.New()
	sc.Push()
	sc.EnterComponent(nil, "card#1")

	_, err := sc.SlotAssociation("card.header#0")
	if err == nil {
		t.Fatal("expected an error for an unregistered slot")
	}

	var notFound *scope.AssociationNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected AssociationNotFoundError, got %T", err)
	}
	if notFound.SlotID != "card.header#0" {
		t.Fatalf("expected slot id in error, got %q", notFound.SlotID)
	}
}

func TestSetSlotAssociation_CopyOnWriteUnderRecursion(t *testing.T) {
	sc := scope.New()
	sc.Push()
	sc.EnterComponent(nil, "card#1")
	sc.SetSlotAssociation("card.header#0", "card#1")

	// The same compiled template renders again inside its own fill. The
	// nested binding must shadow the outer one only while its layer lives.
	h := sc.Push()
	sc.EnterComponent(nil, "card#2")
	sc.SetSlotAssociation("card.header#0", "card#2")

	if got, err := sc.SlotAssociation("card.header#0"); err != nil || got != "card#2" {
		t.Fatalf("expected nested binding card#2, got %q (%v)", got, err)
	}

	if err := sc.Pop(h); err != nil {
		t.Fatalf("pop failed: %v", err)
	}

	if got, err := sc.SlotAssociation("card.header#0"); err != nil || got != "card#1" {
		t.Fatalf("nested binding corrupted the enclosing one, got %q (%v)", got, err)
	}
}

func TestCopyIterationStateTo(t *testing.T) {
	sc := scope.New()
	sc.PushLayer(scope.Layer{
		scope.IterationKey: map[string]any{"counter": 1},
		"item":             "first",
	})
	sc.PushLayer(scope.Layer{
		scope.IterationKey: map[string]any{"counter": 2},
		"item":             "second",
	})

	dst := scope.New()
	sc.CopyIterationStateTo(dst)

	// The deepest marker-carrying layer wins, loop variables included.
	if got, ok := dst.Get("item"); !ok || got != "second" {
		t.Fatalf("expected the innermost loop layer, got %v (ok=%v)", got, ok)
	}
	info, ok := dst.Get(scope.IterationKey)
	if !ok {
		t.Fatal("expected the iteration marker to be copied")
	}
	want := map[string]any{"counter": 2}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("iteration info mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyIterationStateTo_NoopOutsideIteration(t *testing.T) {
	sc := scope.New()
	sc.Set("plain", true)

	dst := scope.New()
	sc.CopyIterationStateTo(dst)

	if dst.Depth() != 1 {
		t.Fatalf("expected no layer pushed, depth %d", dst.Depth())
	}
	if dst.InIteration() {
		t.Fatal("expected no iteration marker")
	}
}

func TestTraceHook_ObservesFillTraffic(t *testing.T) {
	type event struct {
		Action, Subject, Name, ComponentID string
	}
	var events []event
	record := func(action, subject, name, componentID string) {
		events = append(events, event{action, subject, name, componentID})
	}

	sc := scope.New(scope.WithTrace(record))
	sc.Push()
	sc.EnterComponent(nil, "card#1")
	sc.SetSlotFill("card#1", "header", "content")
	sc.SlotFill("card#1", "header")
	sc.SlotFill("card#1", "footer")

	want := []event{
		{"set", "fill", "header", "card#1"},
		{"get", "fill", "header", "card#1"},
		{"get", "fill", "footer", "card#1"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("trace events mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceHook_InheritedByDerivedScopes(t *testing.T) {
	calls := 0
	sc := scope.New(scope.WithTrace(func(_, _, _, _ string) { calls++ }))
	sc.Push()
	sc.EnterComponent(nil, "card#1")

	isolated := sc.MakeIsolatedCopy()
	isolated.SlotFill("card#1", "header")

	snap := sc.Snapshot()
	snap.SlotFill("card#1", "header")

	if calls != 2 {
		t.Fatalf("expected derived scopes to keep the trace hook, got %d calls", calls)
	}
}
