// Package component defines renderable component definitions and the
// registry that render pipelines resolve them from.
package component
