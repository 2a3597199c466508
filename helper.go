// File: lixenwraith/appconfig/helper.go
package appconfig

import (
	"fmt"
	"reflect"
	"strings"
)

// flattenMap converts nested tables to dot-notation keys. Leaf values,
// including slices, are kept as-is.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, nested, prefix)
	return flat
}

func flattenInto(flat map[string]any, nested map[string]any, prefix string) {
	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if sub, isMap := value.(map[string]any); isMap {
			flattenInto(flat, sub, path)
			continue
		}
		flat[path] = value
	}
}

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate tables. It fails with ErrNameConflict when the path
// runs through a leaf value or would overwrite a table.
func setNestedValue(nested map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	current := nested

	for i, segment := range segments[:len(segments)-1] {
		existing, exists := current[segment]
		if !exists {
			next := make(map[string]any)
			current[segment] = next
			current = next
			continue
		}
		next, isMap := existing.(map[string]any)
		if !isMap {
			return fmt.Errorf("%w: %q is a value, cannot hold %q",
				ErrNameConflict, strings.Join(segments[:i+1], "."), path)
		}
		current = next
	}

	last := segments[len(segments)-1]
	if _, isMap := current[last].(map[string]any); isMap {
		return fmt.Errorf("%w: %q is a table of other parameters", ErrNameConflict, path)
	}
	current[last] = value
	return nil
}

// navigateToPath returns the value at a dot-notation path in a nested map, or nil.
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	var current any = nested
	for _, segment := range strings.Split(path, ".") {
		table, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = table[segment]; !ok {
			return nil
		}
	}
	return current
}

// isValidKeySegment checks a single name segment against TOML bare key rules (A-Za-z0-9_-).
func isValidKeySegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// isNil reports whether v is nil or a typed nil held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
