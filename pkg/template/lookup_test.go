package template_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-slots/pkg/scope"
	"github.com/goliatone/go-slots/pkg/template"
)

type lookupProfile struct {
	Name string
	Team *lookupTeam

	secret string
}

type lookupTeam struct {
	Label string
}

func TestResolve(t *testing.T) {
	sc := scope.New(scope.WithDefaults(scope.Layer{
		"site": "acme",
		"user": map[string]any{
			"name": "ada",
			"tags": []string{"admin", "ops"},
		},
		"profile": lookupProfile{Name: "Ada", Team: &lookupTeam{Label: "core"}, secret: "x"},
		"ids":     map[int]string{1: "one"},
		"gone":    (*lookupTeam)(nil),
	}))
	sc.PushLayer(scope.Layer{"site": "shadow"})

	cases := []struct {
		path      string
		want      any
		wantFound bool
	}{
		{path: "site", want: "shadow", wantFound: true},
		{path: "user.name", want: "ada", wantFound: true},
		{path: "user.tags.1", want: "ops", wantFound: true},
		{path: "user.tags.9", wantFound: false},
		{path: "user.missing", wantFound: false},
		{path: "profile.Name", want: "Ada", wantFound: true},
		{path: "profile.name", want: "Ada", wantFound: true},
		{path: "profile.Team.Label", want: "core", wantFound: true},
		{path: "profile.secret", wantFound: false},
		{path: "ids.1", wantFound: false},
		{path: "gone.Label", wantFound: false},
		{path: "missing", wantFound: false},
		{path: "missing.deeper", wantFound: false},
		{path: "", wantFound: false},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, found := template.Resolve(sc, tc.path)
			if found != tc.wantFound {
				t.Fatalf("Resolve(%q) found = %v, want %v", tc.path, found, tc.wantFound)
			}
			if !tc.wantFound {
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Resolve(%q) mismatch (-want +got):\n%s", tc.path, diff)
			}
		})
	}
}

func TestResolve_SeesPushedIterationState(t *testing.T) {
	sc := scope.New()
	h := sc.PushLayer(scope.Layer{"row": map[string]any{"cells": []int{10, 20}}})

	got, found := template.Resolve(sc, "row.cells.0")
	if !found || got != 10 {
		t.Fatalf("Resolve(row.cells.0) = %v, %v, want 10, true", got, found)
	}

	if err := sc.Pop(h); err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if _, found := template.Resolve(sc, "row.cells.0"); found {
		t.Fatal("Resolve() still finds layer data after Pop")
	}
}
