package template

import "github.com/flosch/pongo2/v6"

// Tree is a parsed component template: the node sequence plus the identity
// tokens of every slot the template declares. Trees are immutable after
// parsing and safe to render repeatedly.
type Tree struct {
	// Name identifies the template, usually the component name.
	Name string

	// Nodes is the root node sequence.
	Nodes []Node

	// SlotIDs lists the identity tokens of the slots declared anywhere in
	// the tree, in parse order. Each token is stable across renders because
	// it is assigned when the tree is built, never per pass.
	SlotIDs []string
}

// Node is one element of a parsed template.
type Node interface {
	node()
}

// TextNode is a pongo2 fragment between directives.
type TextNode struct {
	tmpl *pongo2.Template
}

// SlotNode declares an insertion point with default content.
type SlotNode struct {
	// ID is the slot's identity token, unique within the loaded template
	// set.
	ID string

	// Name is the slot name fills refer to.
	Name string

	// Default renders when no fill was registered for the slot.
	Default []Node
}

// ComponentNode instantiates a component with resolved arguments and fill
// content for its slots.
type ComponentNode struct {
	Name  string
	Args  []Arg
	Fills []*FillNode
}

// FillNode carries the content a call site provides for one named slot.
type FillNode struct {
	Name string
	Body []Node
}

// EachNode renders its body once per element, layering the loop variable and
// iteration marker onto the scope.
type EachNode struct {
	// Path is the dotted path to the iterable value.
	Path string

	// Var is the loop variable bound for each element.
	Var string

	Body []Node
}

func (*TextNode) node()      {}
func (*SlotNode) node()      {}
func (*ComponentNode) node() {}
func (*FillNode) node()      {}
func (*EachNode) node()      {}

// Arg is one named argument of a component call. The value is either a
// literal or a dotted path resolved against the calling scope.
type Arg struct {
	Name  string
	Value ArgValue
}

// ArgValue holds a literal or a deferred scope lookup.
type ArgValue struct {
	literal any
	path    string
}

// LiteralValue wraps a parse-time constant.
func LiteralValue(v any) ArgValue {
	return ArgValue{literal: v}
}

// PathValue defers resolution to render time.
func PathValue(path string) ArgValue {
	return ArgValue{path: path}
}

// Path returns the lookup path and whether the value is path-based.
func (v ArgValue) Path() (string, bool) {
	return v.path, v.path != ""
}

// Literal returns the parse-time constant for non-path values.
func (v ArgValue) Literal() any {
	return v.literal
}
