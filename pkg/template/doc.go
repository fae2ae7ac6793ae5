// Package template compiles component sources into node trees and renders
// them.
//
// A component source is pongo2 text extended with four composition
// directives:
//
//	@slot('name') ... @endslot                 declare an insertion point
//	@component('name', key=value) ... @endcomponent   instantiate a component
//	@fill('name') ... @endfill                 provide slot content
//	@each(items as item) ... @endeach          iterate with scope layering
//
// The parser splits a source into text fragments and directive nodes. Text
// fragments are compiled pongo2 templates executed against a flattened view
// of the scope; the directive nodes drive the scope bookkeeping that makes
// slots, fills, and nested component instances resolve correctly.
package template
