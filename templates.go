package goslots

import (
	"embed"
	"io/fs"
)

//go:embed templates/builtin/*.slot
var embeddedTemplates embed.FS

// BuiltinTemplates exposes the built-in component set so callers can load or
// extend it without shipping template files of their own. The components are
// namespaced under builtin/ to stay clear of user names.
//
// Typical use:
//
//	eng, err := goslots.New(
//	    goslots.WithTemplatesFS(goslots.BuiltinTemplates()),
//	)
func BuiltinTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
