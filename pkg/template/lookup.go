package template

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-slots/pkg/scope"
)

// Resolve walks a dotted path against the scope. The first segment uses the
// layered lookup; the remaining segments descend into maps with string keys,
// exported struct fields, and slice or array indices. Pointers and
// interfaces are dereferenced along the way.
func Resolve(sc *scope.Scope, path string) (any, bool) {
	if sc == nil || path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	value, ok := sc.Get(segments[0])
	if !ok {
		return nil, false
	}
	for _, segment := range segments[1:] {
		value, ok = descend(value, segment)
		if !ok {
			return nil, false
		}
	}
	return value, true
}

func descend(value any, segment string) (any, bool) {
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		key := reflect.ValueOf(segment).Convert(rv.Type().Key())
		item := rv.MapIndex(key)
		if !item.IsValid() {
			return nil, false
		}
		return item.Interface(), true

	case reflect.Struct:
		if field := rv.FieldByName(segment); field.IsValid() && field.CanInterface() {
			return field.Interface(), true
		}
		// Template paths are usually lower case; fall back to a
		// case-insensitive match over exported fields.
		typ := rv.Type()
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if f.IsExported() && strings.EqualFold(f.Name, segment) {
				return rv.Field(i).Interface(), true
			}
		}
		return nil, false

	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true

	default:
		return nil, false
	}
}
