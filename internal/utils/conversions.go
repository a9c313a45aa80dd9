package utils

import (
	"fmt"
	"math"
)

// Options is an untyped option map as delivered by a host bridge.
type Options map[string]any

// Has reports whether key is present with a non-nil value.
func (o Options) Has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// String returns the string at key. ok is false when the key is absent; a present value of
// another type is an error.
func (o Options) String(key string) (value string, ok bool, err error) {
	if !o.Has(key) {
		return "", false, nil
	}
	s, isString := o[key].(string)
	if !isString {
		return "", true, fmt.Errorf("%s must be a string, got %T", key, o[key])
	}
	return s, true, nil
}

// Bool returns the bool at key.
func (o Options) Bool(key string) (value bool, ok bool, err error) {
	if !o.Has(key) {
		return false, false, nil
	}
	b, isBool := o[key].(bool)
	if !isBool {
		return false, true, fmt.Errorf("%s must be a boolean, got %T", key, o[key])
	}
	return b, true, nil
}

// Number returns the numeric value at key as a float64. Host bridges deliver JSON numbers as
// float64 but Go callers may pass any integer or float type.
func (o Options) Number(key string) (value float64, ok bool, err error) {
	if !o.Has(key) {
		return 0, false, nil
	}
	f, err := ToFloat64(o[key])
	if err != nil {
		return 0, true, fmt.Errorf("%s %w", key, err)
	}
	return f, true, nil
}

func ToFloat64(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("must be a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("must be a finite number")
	}
	return f, nil
}
