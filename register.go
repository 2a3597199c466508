// File: lixenwraith/appconfig/register.go
package appconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// DeclareStruct declares one parameter per exported leaf field of a struct
// (or struct pointer, which may be nil). Names come from the `toml` tag or the
// field name, joined to prefix and to enclosing struct names with dots.
// Options come from the `param` tag:
//
//	type Settings struct {
//	    Dog    string `toml:"doggyz" param:"required"`
//	    APIKey string `toml:"api_key" param:"required,lock=on_set"`
//	    Server struct {
//	        Port int `toml:"port"`
//	    } `toml:"server"`
//	}
//
// Field values are not copied; every declared parameter starts nil.
// A struct type that contains itself, directly or through pointers, fails
// with ErrSchema at the recursive field.
func (c *Container) DeclareStruct(prefix string, v any) error {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("DeclareStruct requires a struct or struct pointer, got %T", v)
	}

	var errs []error
	path := map[reflect.Type]bool{t: true}
	c.declareFields(t, strings.TrimSuffix(prefix, "."), path, &errs)
	return errors.Join(errs...)
}

// declareFields walks t recursively, declaring leaf fields.
// path holds the struct types enclosing the current one.
func (c *Container) declareFields(t reflect.Type, prefix string, path map[reflect.Type]bool, errs *[]error) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("toml")
		if tag == "-" {
			continue
		}
		key := field.Name
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			key = name
		}

		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr && ft.Elem().Kind() == reflect.Struct {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && !isLeafStruct(ft) {
			if path[ft] {
				*errs = append(*errs, fmt.Errorf("%w: field %s (parameter %s) recursively contains %s",
					ErrSchema, field.Name, name, ft))
				continue
			}
			path[ft] = true
			c.declareFields(ft, name, path, errs)
			delete(path, ft)
			continue
		}

		opts, err := parseParamTag(field.Tag.Get("param"))
		if err != nil {
			*errs = append(*errs, fmt.Errorf("field %s (parameter %s): %w", field.Name, name, err))
			continue
		}
		if err := c.Parameter(name, opts...); err != nil {
			*errs = append(*errs, fmt.Errorf("field %s: %w", field.Name, err))
		}
	}
}

// isLeafStruct reports struct types that hold a single value rather than a
// table of parameters (time.Time, url.URL, net.IPNet and similar).
func isLeafStruct(t reflect.Type) bool {
	switch t.PkgPath() {
	case "time", "net", "net/url":
		return true
	}
	return false
}

// parseParamTag turns `required,lock=on_set` into parameter options
func parseParamTag(tag string) ([]ParameterOption, error) {
	var opts []ParameterOption
	if tag == "" {
		return opts, nil
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		key, value, _ := strings.Cut(part, "=")
		switch key {
		case "":
		case "required":
			opts = append(opts, Required())
		case "lock":
			opts = append(opts, Lock(LockPolicy(value)))
		default:
			return nil, fmt.Errorf("%w: unknown param tag option %q", ErrSchema, key)
		}
	}
	return opts, nil
}
