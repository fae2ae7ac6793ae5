// Package scope implements the layered variable scope and the render-state
// bookkeeping that drive slot and fill resolution during a component render
// pass.
//
// A Scope is a stack of layers searched top-first. Writes always land in the
// newest layer, so popping a layer discards everything a nested render wrote
// and restores the enclosing state. On top of the plain stack the package
// tracks, under reserved keys, which component instance is currently
// rendering, which component each slot occurrence belongs to, the fill
// content registered for each slot, and the outer-root scope that fill
// content is evaluated against.
//
// Scopes are not safe for concurrent use. A render pass is synchronous and
// depth-first; the association and fill maps are shared by reference down the
// call tree and branched copy-on-write where an iteration body needs a
// disposable view.
package scope
