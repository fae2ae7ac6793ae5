// Package engine assembles the slot composition pipeline: component sources
// discovered on a filesystem or registered programmatically, compiled once,
// and rendered against layered scopes with configurable context behavior.
//
// The zero-configuration path is a directory of component sources:
//
//	eng, err := engine.New(engine.WithTemplatesDir("templates"))
//	if err != nil {
//		...
//	}
//	err = eng.Render(os.Stdout, "ui/card", map[string]any{"title": "Hello"})
//
// Page templates that call components without being components themselves go
// through RenderString. Globals, themes, filters, isolation behavior, and
// trace logging are configured through functional options.
package engine
