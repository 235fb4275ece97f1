package jsutil

import (
	"testing"

	"github.com/dop251/goja"
)

// -----------------------------------------------------------------------------
// Test Helpers
// -----------------------------------------------------------------------------

func newVM() *goja.Runtime {
	return goja.New()
}

func createObject(vm *goja.Runtime, data map[string]interface{}) *goja.Object {
	obj := vm.NewObject()
	for k, v := range data {
		_ = obj.Set(k, v)
	}
	return obj
}

// -----------------------------------------------------------------------------
// GetString Tests
// -----------------------------------------------------------------------------

func TestGetString(t *testing.T) {
	vm := newVM()

	tests := []struct {
		name    string
		obj     *goja.Object
		key     string
		wantVal string
		wantOK  bool
	}{
		{
			name:    "existing_string",
			obj:     createObject(vm, map[string]interface{}{"name": "test"}),
			key:     "name",
			wantVal: "test",
			wantOK:  true,
		},
		{
			name:    "missing_key",
			obj:     createObject(vm, map[string]interface{}{"other": "value"}),
			key:     "name",
			wantVal: "",
			wantOK:  false,
		},
		{
			name:    "nil_object",
			obj:     nil,
			key:     "name",
			wantVal: "",
			wantOK:  false,
		},
		{
			name:    "empty_string",
			obj:     createObject(vm, map[string]interface{}{"name": ""}),
			key:     "name",
			wantVal: "",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := GetString(tt.obj, tt.key)
			if val != tt.wantVal {
				t.Errorf("GetString() value = %q, want %q", val, tt.wantVal)
			}
			if ok != tt.wantOK {
				t.Errorf("GetString() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// GetInt Tests
// -----------------------------------------------------------------------------

func TestGetInt(t *testing.T) {
	t.Run("nil_object", func(t *testing.T) {
		val, ok := GetInt(nil, "count")
		if ok {
			t.Error("GetInt() ok = true, want false")
		}
		if val != 0 {
			t.Errorf("GetInt() = %d, want 0", val)
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		vm := newVM()
		obj := createObject(vm, map[string]interface{}{"other": 1})
		val, ok := GetInt(obj, "count")
		if ok {
			t.Error("GetInt() ok = true, want false")
		}
		if val != 0 {
			t.Errorf("GetInt() = %d, want 0", val)
		}
	})

	t.Run("js_number", func(t *testing.T) {
		vm := newVM()
		v, err := vm.RunString(`({ count: 100 })`)
		if err != nil {
			t.Fatal(err)
		}
		val, ok := GetInt(v.(*goja.Object), "count")
		if !ok || val != 100 {
			t.Errorf("GetInt() = %d, %v, want 100, true", val, ok)
		}
	})
}

// -----------------------------------------------------------------------------
// GetBool Tests
// -----------------------------------------------------------------------------

func TestGetBool(t *testing.T) {
	vm := newVM()

	tests := []struct {
		name    string
		obj     *goja.Object
		key     string
		wantVal bool
		wantOK  bool
	}{
		{
			name:    "true_value",
			obj:     createObject(vm, map[string]interface{}{"active": true}),
			key:     "active",
			wantVal: true,
			wantOK:  true,
		},
		{
			name:    "false_value",
			obj:     createObject(vm, map[string]interface{}{"active": false}),
			key:     "active",
			wantVal: false,
			wantOK:  true,
		},
		{
			name:    "missing_key",
			obj:     createObject(vm, map[string]interface{}{"other": true}),
			key:     "active",
			wantVal: false,
			wantOK:  false,
		},
		{
			name:    "nil_object",
			obj:     nil,
			key:     "active",
			wantVal: false,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := GetBool(tt.obj, tt.key)
			if val != tt.wantVal {
				t.Errorf("GetBool() value = %v, want %v", val, tt.wantVal)
			}
			if ok != tt.wantOK {
				t.Errorf("GetBool() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// GetObject Tests
// -----------------------------------------------------------------------------

func TestGetObject(t *testing.T) {
	vm := newVM()

	t.Run("existing_object", func(t *testing.T) {
		inner := createObject(vm, map[string]interface{}{"key": "value"})
		outer := createObject(vm, map[string]interface{}{"nested": inner})

		obj, ok := GetObject(outer, "nested")
		if !ok {
			t.Error("GetObject() ok = false, want true")
		}
		if obj == nil {
			t.Error("GetObject() returned nil object")
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		obj := createObject(vm, map[string]interface{}{"other": "value"})

		result, ok := GetObject(obj, "nested")
		if ok {
			t.Error("GetObject() ok = true, want false")
		}
		if result != nil {
			t.Error("GetObject() should return nil for missing key")
		}
	})

	t.Run("nil_object", func(t *testing.T) {
		result, ok := GetObject(nil, "key")
		if ok {
			t.Error("GetObject() ok = true, want false for nil input")
		}
		if result != nil {
			t.Error("GetObject() should return nil for nil input")
		}
	})
}

// -----------------------------------------------------------------------------
// GetValue Tests
// -----------------------------------------------------------------------------

func TestGetValue(t *testing.T) {
	vm := newVM()

	t.Run("present", func(t *testing.T) {
		obj := createObject(vm, map[string]interface{}{"x": 1})
		if _, ok := GetValue(obj, "x"); !ok {
			t.Error("GetValue() ok = false, want true")
		}
	})

	t.Run("null_is_absent", func(t *testing.T) {
		v, err := vm.RunString(`({ x: null })`)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := GetValue(v.(*goja.Object), "x"); ok {
			t.Error("GetValue() should treat null as absent")
		}
	})
}

// -----------------------------------------------------------------------------
// GetStringArray Tests
// -----------------------------------------------------------------------------

func TestGetStringArray(t *testing.T) {
	t.Run("nil_object", func(t *testing.T) {
		result, ok := GetStringArray(nil, "items")
		if ok {
			t.Error("GetStringArray() ok = true, want false")
		}
		if result != nil {
			t.Error("GetStringArray() should return nil for nil input")
		}
	})

	t.Run("js_array", func(t *testing.T) {
		vm := newVM()
		v, err := vm.RunString(`({ items: ["a", "b", "c"] })`)
		if err != nil {
			t.Fatal(err)
		}
		result, ok := GetStringArray(v.(*goja.Object), "items")
		if !ok || len(result) != 3 || result[0] != "a" || result[2] != "c" {
			t.Errorf("GetStringArray() = %v, %v", result, ok)
		}
	})

	t.Run("mixed_array_fails", func(t *testing.T) {
		vm := newVM()
		v, err := vm.RunString(`({ items: ["a", 1] })`)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := GetStringArray(v.(*goja.Object), "items"); ok {
			t.Error("GetStringArray() should reject non-string elements")
		}
	})
}

// -----------------------------------------------------------------------------
// Call Tests
// -----------------------------------------------------------------------------

func TestCall(t *testing.T) {
	t.Run("nil_function", func(t *testing.T) {
		_, err := Call(nil, goja.Undefined())
		if err == nil {
			t.Error("Call() expected error for nil function")
		}
	})

	t.Run("js_function", func(t *testing.T) {
		vm := newVM()
		v, err := vm.RunString(`(function(x) { return x + 1; })`)
		if err != nil {
			t.Fatal(err)
		}
		fn, ok := goja.AssertFunction(v)
		if !ok {
			t.Fatal("value is not callable")
		}
		result, err := Call(fn, goja.Undefined(), vm.ToValue(41))
		if err != nil {
			t.Fatalf("Call() error: %v", err)
		}
		if result.ToInteger() != 42 {
			t.Errorf("Call() = %v, want 42", result)
		}
	})
}

// -----------------------------------------------------------------------------
// ToGoValue Tests
// -----------------------------------------------------------------------------

func TestToGoValue(t *testing.T) {
	vm := newVM()

	t.Run("string_value", func(t *testing.T) {
		v := vm.ToValue("test")
		result := ToGoValue(v)
		if result != "test" {
			t.Errorf("ToGoValue() = %v, want 'test'", result)
		}
	})

	t.Run("nil_value", func(t *testing.T) {
		if result := ToGoValue(nil); result != nil {
			t.Errorf("ToGoValue() = %v, want nil", result)
		}
	})

	t.Run("undefined_value", func(t *testing.T) {
		if result := ToGoValue(goja.Undefined()); result != nil {
			t.Errorf("ToGoValue() = %v, want nil for undefined", result)
		}
	})

	t.Run("null_value", func(t *testing.T) {
		if result := ToGoValue(goja.Null()); result != nil {
			t.Errorf("ToGoValue() = %v, want nil for null", result)
		}
	})
}

// -----------------------------------------------------------------------------
// toInt Tests
// -----------------------------------------------------------------------------

func TestToInt(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		wantVal int
		wantOK  bool
	}{
		{"int", 42, 42, true},
		{"int64", int64(7), 7, true},
		{"float32", float32(42.0), 42, true},
		{"float64", float64(42.0), 42, true},
		{"float64_with_decimal", float64(42.5), 0, false},
		{"string", "42", 0, false},
		{"nil", nil, 0, false},
		{"negative_int", -10, -10, true},
		{"zero", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := toInt(tt.input)
			if val != tt.wantVal {
				t.Errorf("toInt() value = %d, want %d", val, tt.wantVal)
			}
			if ok != tt.wantOK {
				t.Errorf("toInt() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}
