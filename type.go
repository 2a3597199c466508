// File: lixenwraith/appconfig/type.go
package appconfig

import (
	"fmt"
	"reflect"
	"strconv"
)

// readAs reads name through the access gate and converts a non-nil value with conv.
// conv errors are annotated with the parameter name.
func readAs[T any](c *Container, name string, conv func(any) (T, error)) (T, error) {
	var zero T
	val, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	if isNil(val) {
		return zero, fmt.Errorf("value for parameter %s is nil, cannot convert to %T", name, zero)
	}
	out, err := conv(val)
	if err != nil {
		return zero, fmt.Errorf("parameter %s: %w", name, err)
	}
	return out, nil
}

// String reads a parameter as a string. Common scalar types are formatted;
// nil reads as the empty string.
func (c *Container) String(name string) (string, error) {
	val, err := c.Get(name)
	if err != nil || isNil(val) {
		return "", err
	}
	s, err := toString(val)
	if err != nil {
		return "", fmt.Errorf("parameter %s: %w", name, err)
	}
	return s, nil
}

// Int64 reads a parameter as an int64, converting numbers, parsable strings and booleans.
func (c *Container) Int64(name string) (int64, error) {
	return readAs(c, name, toInt64)
}

// Bool reads a parameter as a boolean. Numbers are true when non-zero.
func (c *Container) Bool(name string) (bool, error) {
	return readAs(c, name, toBool)
}

// Float64 reads a parameter as a float64.
func (c *Container) Float64(name string) (float64, error) {
	return readAs(c, name, toFloat64)
}

func toString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case error:
		return v.Error(), nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string", val)
}

func toInt64(val any) (int64, error) {
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u := rv.Uint(); u <= 1<<63-1 {
			return int64(u), nil
		}
		return 0, fmt.Errorf("unsigned integer %d overflows int64", rv.Uint())
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		s := rv.String()
		// Base 0 accepts "0xFF" and friends; "12.5" falls back to float truncation
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64: %w", s, err)
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64", val)
}

func toFloat64(val any) (float64, error) {
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		f, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64: %w", rv.String(), err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64", val)
}

func toBool(val any) (bool, error) {
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		b, err := strconv.ParseBool(rv.String())
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool: %w", rv.String(), err)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool", val)
}
