package template

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-slots/pkg/component"
	"github.com/goliatone/go-slots/pkg/scope"
)

// Renderer compiles component definitions into node trees and renders them
// against a scope. A renderer is safe for concurrent rendering; each render
// call works on its own scope.
type Renderer struct {
	mu       sync.RWMutex
	frags    *Fragments
	parser   *Parser
	compiled map[string]*compiledComponent
	ids      atomic.Uint64
}

type compiledComponent struct {
	def  component.Definition
	tree *Tree
}

// NewRenderer creates a renderer backed by frags.
func NewRenderer(frags *Fragments) *Renderer {
	return &Renderer{
		frags:    frags,
		parser:   NewParser(frags),
		compiled: make(map[string]*compiledComponent),
	}
}

// Register parses def's source and makes the component renderable.
func (r *Renderer) Register(def component.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	tree, err := r.parser.Parse(def.Name, def.Source)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.compiled[def.Name]; ok {
		return fmt.Errorf("template: component %q already compiled", def.Name)
	}
	r.compiled[def.Name] = &compiledComponent{def: def, tree: tree}
	return nil
}

// Has reports whether name has been registered.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.compiled[name]
	return ok
}

// List returns the registered component names in sorted order.
func (r *Renderer) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.compiled))
	for name := range r.compiled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Renderer) lookup(name string) (*compiledComponent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comp, ok := r.compiled[name]
	if !ok {
		return nil, fmt.Errorf("template: component %q not loaded", name)
	}
	return comp, nil
}

func (r *Renderer) nextInstanceID(name string) string {
	return fmt.Sprintf("%s#%d", name, r.ids.Add(1))
}

// RenderComponent renders the named component into w. args become the
// component's own data and sc supplies everything the surrounding render
// already established.
func (r *Renderer) RenderComponent(w io.Writer, name string, args map[string]any, sc *scope.Scope) error {
	return r.renderCall(w, name, args, nil, sc)
}

// RenderNodes renders a parsed body against sc. The engine uses it for
// page templates that call components without being components themselves.
func (r *Renderer) RenderNodes(w io.Writer, nodes []Node, sc *scope.Scope) error {
	return r.renderNodes(w, nodes, sc)
}

func (r *Renderer) renderCall(w io.Writer, name string, args map[string]any, fills []*FillNode, sc *scope.Scope) error {
	comp, err := r.lookup(name)
	if err != nil {
		return err
	}

	// The outer view must be captured before the component's own data
	// lands, so fills never see the callee's variables.
	outer := sc.Snapshot()

	renderSc := sc
	if sc.Behavior() == scope.BehaviorIsolated {
		renderSc = sc.MakeIsolatedCopy()
	}

	id := r.nextInstanceID(name)
	h := renderSc.PushLayer(scope.Layer(comp.def.OwnData(args)))
	renderSc.EnterComponent(outer, id)

	for _, slotID := range comp.tree.SlotIDs {
		renderSc.SetSlotAssociation(slotID, id)
	}
	for _, fill := range fills {
		renderSc.SetSlotFill(id, fill.Name, fill)
	}

	renderErr := r.renderNodes(w, comp.tree.Nodes, renderSc)
	if err := renderSc.Pop(h); err != nil && renderErr == nil {
		renderErr = err
	}
	return renderErr
}

func (r *Renderer) renderNodes(w io.Writer, nodes []Node, sc *scope.Scope) error {
	for _, n := range nodes {
		var err error
		switch node := n.(type) {
		case *TextNode:
			err = r.frags.Execute(w, node.tmpl, sc)
		case *SlotNode:
			err = r.renderSlot(w, node, sc)
		case *ComponentNode:
			err = r.renderComponentNode(w, node, sc)
		case *EachNode:
			err = r.renderEach(w, node, sc)
		case *FillNode:
			err = fmt.Errorf("template: fill %q rendered outside a slot", node.Name)
		default:
			err = fmt.Errorf("template: unknown node %T", n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderComponentNode(w io.Writer, node *ComponentNode, sc *scope.Scope) error {
	var args map[string]any
	if len(node.Args) > 0 {
		args = make(map[string]any, len(node.Args))
		for _, arg := range node.Args {
			if path, ok := arg.Value.Path(); ok {
				value, found := Resolve(sc, path)
				if !found {
					return fmt.Errorf("template: component %q: argument %q: path %q not found", node.Name, arg.Name, path)
				}
				args[arg.Name] = value
				continue
			}
			args[arg.Name] = arg.Value.Literal()
		}
	}
	return r.renderCall(w, node.Name, args, node.Fills, sc)
}

func (r *Renderer) renderSlot(w io.Writer, node *SlotNode, sc *scope.Scope) error {
	componentID, err := sc.SlotAssociation(node.ID)
	if err != nil {
		return err
	}

	content, ok := sc.SlotFill(componentID, node.Name)
	if !ok {
		return r.renderNodes(w, node.Default, sc)
	}
	fill, ok := content.(*FillNode)
	if !ok {
		return fmt.Errorf("template: slot %q holds unexpected fill content %T", node.Name, content)
	}

	// Fill bodies belong to the caller's template, so they resolve against
	// the outer root view rather than the component's own scope. Iteration
	// state still travels with the render.
	base := sc
	if root := sc.OuterRootContext(); root != nil {
		base = root.Snapshot()
		sc.CopyIterationStateTo(base)
	}
	return r.renderNodes(w, fill.Body, base)
}

func (r *Renderer) renderEach(w io.Writer, node *EachNode, sc *scope.Scope) error {
	target, found := Resolve(sc, node.Path)
	if !found || target == nil {
		return nil
	}

	items, err := iterationItems(node.Path, target)
	if err != nil {
		return err
	}

	parentloop, hasParent := sc.Get(scope.IterationKey)
	total := len(items)
	for i, item := range items {
		info := map[string]any{
			"counter":     i + 1,
			"counter0":    i,
			"revcounter":  total - i,
			"revcounter0": total - i - 1,
			"first":       i == 0,
			"last":        i == total-1,
		}
		if hasParent {
			info["parentloop"] = parentloop
		}

		h := sc.PushLayer(scope.Layer{
			scope.IterationKey: info,
			node.Var:           item,
		})
		renderErr := r.renderNodes(w, node.Body, sc)
		if err := sc.Pop(h); err != nil && renderErr == nil {
			renderErr = err
		}
		if renderErr != nil {
			return renderErr
		}
	}
	return nil
}

func iterationItems(path string, target any) ([]any, error) {
	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, v.Len())
		for i := range items {
			items[i] = v.Index(i).Interface()
		}
		return items, nil
	default:
		return nil, fmt.Errorf("template: @each target %q is not a list", path)
	}
}
