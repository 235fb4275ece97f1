// Package jsutil provides safe JS<->Go value conversion for the Goja runtime.
// Model files are untrusted input, so every accessor tolerates nil, undefined
// and null without panicking.
package jsutil

import (
	"strconv"

	"github.com/dop251/goja"

	"github.com/seqsquash/seqsquash/internal/sqerr"
)

// GetString retrieves a string property. The bool reports whether the key
// exists and holds a string.
func GetString(obj *goja.Object, key string) (string, bool) {
	v := prop(obj, key)
	if v == nil {
		return "", false
	}
	s, ok := v.Export().(string)
	return s, ok
}

// GetInt retrieves an integer property. JS numbers arrive as float64; only
// exact integers in the 32-bit range convert.
func GetInt(obj *goja.Object, key string) (int, bool) {
	v := prop(obj, key)
	if v == nil {
		return 0, false
	}
	return toInt(v.Export())
}

// GetBool retrieves a boolean property.
func GetBool(obj *goja.Object, key string) (bool, bool) {
	v := prop(obj, key)
	if v == nil {
		return false, false
	}
	b, ok := v.Export().(bool)
	return b, ok
}

// GetObject retrieves an object property.
func GetObject(obj *goja.Object, key string) (*goja.Object, bool) {
	v := prop(obj, key)
	if v == nil {
		return nil, false
	}
	o, ok := v.(*goja.Object)
	return o, ok
}

// GetValue retrieves a raw property value, treating undefined and null as
// absent.
func GetValue(obj *goja.Object, key string) (goja.Value, bool) {
	v := prop(obj, key)
	if v == nil {
		return nil, false
	}
	return v, true
}

// GetStringArray retrieves a string-array property. Non-string elements fail
// the whole read.
func GetStringArray(obj *goja.Object, key string) ([]string, bool) {
	v := prop(obj, key)
	if v == nil {
		return nil, false
	}
	return ToGoStringSlice(v)
}

// prop reads a property, collapsing missing, undefined and null to nil.
func prop(obj *goja.Object, key string) goja.Value {
	if obj == nil {
		return nil
	}
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v
}

// ToGoValue converts a Goja value to a plain Go value. Undefined and null
// become nil.
func ToGoValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

// ToGoStringSlice converts an array-like value to a string slice. The bool
// reports whether the value was array-like with all-string elements.
func ToGoStringSlice(v goja.Value) ([]string, bool) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, false
	}
	o, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	lengthVal := o.Get("length")
	if lengthVal == nil || goja.IsUndefined(lengthVal) {
		return nil, false
	}
	length, ok := toInt(lengthVal.Export())
	if !ok || length < 0 {
		return nil, false
	}
	result := make([]string, 0, length)
	for i := 0; i < length; i++ {
		elem := o.Get(strconv.Itoa(i))
		if elem == nil || goja.IsUndefined(elem) || goja.IsNull(elem) {
			continue
		}
		s, ok := elem.Export().(string)
		if !ok {
			return nil, false
		}
		result = append(result, s)
	}
	return result, true
}

// Call invokes a Goja function with wrapped error handling.
func Call(fn goja.Callable, this goja.Value, args ...goja.Value) (goja.Value, error) {
	if fn == nil {
		return nil, sqerr.New(sqerr.ErrJSExecution, "cannot call nil function")
	}
	result, err := fn(this, args...)
	if err != nil {
		return nil, WrapJSError(err, sqerr.ErrJSExecution)
	}
	return result, nil
}

// WrapJSError wraps a JavaScript error under the given code, surfacing the
// Goja exception text when present.
func WrapJSError(err error, code sqerr.Code) *sqerr.Error {
	if err == nil {
		return nil
	}
	if exception, ok := err.(*goja.Exception); ok {
		return sqerr.Wrap(code, err, exception.String())
	}
	return sqerr.Wrap(code, err, err.Error())
}

// toInt converts the numeric types Goja may export to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		if n >= -2147483648 && n <= 2147483647 && n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
