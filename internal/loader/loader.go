// Package loader discovers component sources on a filesystem.
package loader

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
)

// DefaultExtensions lists the file extensions recognized as component sources.
var DefaultExtensions = []string{".slot", ".html", ".tmpl"}

// Source is one discovered component source file.
type Source struct {
	// Name is the normalized component name, e.g. "ui/button".
	Name string
	// Path is the file path inside the filesystem it was read from.
	Path string
	// Body is the raw template source.
	Body string
}

// Discover walks fsys under root and returns every component source whose
// extension matches, sorted by name. Names are the slash-separated paths
// relative to root with the extension dropped, so two files that normalize
// to the same name are an error.
func Discover(fsys fs.FS, root string, extensions []string) ([]Source, error) {
	if root == "" {
		root = "."
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	var sources []Source
	seen := map[string]string{}
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(extensions, strings.ToLower(path.Ext(p))) {
			return nil
		}

		name := NameFromPath(root, p)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("loader: component %q defined by both %s and %s", name, prev, p)
		}

		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", p, err)
		}
		seen[name] = p
		sources = append(sources, Source{Name: name, Path: p, Body: string(body)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

// NameFromPath converts a file path into a component name relative to root.
func NameFromPath(root, p string) string {
	if root != "" && root != "." {
		p = strings.TrimPrefix(p, strings.TrimSuffix(root, "/")+"/")
	}
	p = strings.TrimSuffix(p, path.Ext(p))
	return Normalize(p)
}

// Normalize strips quotes, surrounding spaces, a trailing extension, and
// backslash separators from a component name.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"' `)
	name = strings.TrimSuffix(name, path.Ext(name))
	return strings.ReplaceAll(name, `\`, "/")
}
