package component_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-slots/pkg/component"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := component.NewRegistry()

	def := component.Definition{
		Name:   "card",
		Source: `<div class="card">@slot('body')@endslot</div>`,
	}
	if err := registry.Register(def); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := registry.Get("card")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "card" || got.Source != def.Source {
		t.Fatalf("unexpected definition: %+v", got)
	}

	if !registry.Has("card") {
		t.Fatal("expected Has to report the registered component")
	}
	if registry.Has("missing") {
		t.Fatal("expected Has to reject unknown names")
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	registry := component.NewRegistry()
	def := component.Definition{Name: "card", Source: "body"}

	if err := registry.Register(def); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	err := registry.Register(def)
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestRegistry_RejectsInvalidDefinitions(t *testing.T) {
	registry := component.NewRegistry()

	if err := registry.Register(component.Definition{Source: "body"}); err == nil {
		t.Fatal("expected registration without a name to fail")
	}
	if err := registry.Register(component.Definition{Name: "empty"}); err == nil {
		t.Fatal("expected registration without a source to fail")
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	registry := component.NewRegistry()
	for _, name := range []string{"pager", "card", "badge"} {
		registry.MustRegister(component.Definition{Name: name, Source: "body"})
	}

	want := []string{"badge", "card", "pager"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	registry := component.NewRegistry()
	if _, err := registry.Get("ghost"); err == nil {
		t.Fatal("expected lookup of unknown component to fail")
	}
}

func TestDefinition_OwnData(t *testing.T) {
	plain := component.Definition{Name: "badge", Source: "body"}
	args := map[string]any{"label": "New"}

	own := plain.OwnData(args)
	if diff := cmp.Diff(map[string]any{"label": "New"}, own); diff != "" {
		t.Fatalf("passthrough mismatch (-want +got):\n%s", diff)
	}
	own["label"] = "mutated"
	if args["label"] != "New" {
		t.Fatal("OwnData must not alias the caller's arguments")
	}

	derived := component.Definition{
		Name:   "badge",
		Source: "body",
		Data: func(args map[string]any) map[string]any {
			return map[string]any{"label": strings.ToUpper(args["label"].(string))}
		},
	}
	own = derived.OwnData(args)
	if own["label"] != "NEW" {
		t.Fatalf("expected data step to run, got %v", own["label"])
	}
}
