package loader

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/seqsquash/seqsquash/internal/jsutil"
	"github.com/seqsquash/seqsquash/internal/model"
	"github.com/seqsquash/seqsquash/internal/strutil"
	"github.com/seqsquash/seqsquash/internal/typemap"
)

// Models converts every captured definition into the core representation.
// Conversion problems are recorded as warnings; a malformed attribute drops
// that attribute, never the model, and a malformed model never aborts the
// load.
func (s *Sandbox) Models() ([]*model.Definition, []string) {
	var defs []*model.Definition
	var warnings []string
	seen := make(map[string]bool)

	for _, c := range s.captured {
		if seen[c.Name] {
			warnings = append(warnings,
				fmt.Sprintf("model %q defined more than once, keeping the first definition (%s)", c.Name, c.File))
			continue
		}
		seen[c.Name] = true

		def, warns := s.convertModel(c)
		warnings = append(warnings, warns...)
		defs = append(defs, def)
	}
	return defs, warnings
}

// convertModel builds one core definition from a captured model: attributes
// in declaration order, the derived table name, and the implicit timestamp
// columns unless the model opts out.
func (s *Sandbox) convertModel(c *capturedModel) (*model.Definition, []string) {
	var warnings []string

	def := &model.Definition{
		Name:       c.Name,
		TableName:  tableName(c.Name, c.Options),
		Attributes: make(map[string]*model.AttributeSpec),
	}

	if c.Attrs == nil {
		warnings = append(warnings, fmt.Sprintf("model %q has no attribute object (%s)", c.Name, c.File))
		return def, warnings
	}

	for _, key := range c.Attrs.Keys() {
		spec, warn := s.attributeSpec(def.TableName, key, c.Attrs.Get(key))
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if spec == nil {
			continue
		}
		column := key
		if spec.ColumnName != "" {
			column = spec.ColumnName
		}
		spec.FieldName = key
		if _, dup := def.Attributes[column]; dup {
			warnings = append(warnings,
				fmt.Sprintf("%s.%s: duplicate column name, keeping the first attribute", def.TableName, column))
			continue
		}
		def.Attributes[column] = spec
		def.FieldOrder = append(def.FieldOrder, column)
	}

	addImplicitColumns(def, c.Options)
	return def, warnings
}

// attributeSpec converts one attribute value. Supported shapes are a bare
// type (called or not), a type-name string, and a wrapper object with a type
// property plus column options. Anything else drops the attribute with a
// warning.
func (s *Sandbox) attributeSpec(table, name string, v goja.Value) (*model.AttributeSpec, string) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, fmt.Sprintf("%s.%s: attribute is undefined, skipping field", table, name)
	}

	if str, ok := v.Export().(string); ok {
		return specFromDeclared(str), ""
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, fmt.Sprintf("%s.%s: unrecognized attribute shape, skipping field", table, name)
	}

	// Bare descriptor: name: DataTypes.STRING or DataTypes.STRING(100).
	if dtype, ok := jsutil.GetString(obj, dtypeKey); ok {
		return specFromDescriptor(dtype, descriptorArgs(obj)), ""
	}

	// Wrapper object: { type: ..., allowNull: ..., ... }
	spec := &model.AttributeSpec{}
	if typeVal, ok := jsutil.GetValue(obj, "type"); ok {
		switch tv := typeVal.(type) {
		case *goja.Object:
			if dtype, ok := jsutil.GetString(tv, dtypeKey); ok {
				spec = specFromDescriptor(dtype, descriptorArgs(tv))
			}
		default:
			if str, ok := typeVal.Export().(string); ok {
				spec = specFromDeclared(str)
			}
		}
	}

	applyColumnOptions(spec, obj)

	var warn string
	if dv, ok := jsutil.GetValue(obj, "defaultValue"); ok {
		if lit, ok := literalDefault(dv); ok {
			spec.Default = lit
			spec.DefaultSet = true
		} else {
			warn = fmt.Sprintf("%s.%s: non-literal default value ignored", table, name)
		}
	}

	return spec, warn
}

// applyColumnOptions overlays wrapper-level column options onto the spec.
func applyColumnOptions(spec *model.AttributeSpec, obj *goja.Object) {
	if b, ok := jsutil.GetBool(obj, "allowNull"); ok {
		spec.AllowNull = &b
	}
	if b, ok := jsutil.GetBool(obj, "primaryKey"); ok {
		spec.PrimaryKey = b
	}
	if b, ok := jsutil.GetBool(obj, "autoIncrement"); ok {
		spec.AutoIncrement = b
	}
	if b, ok := jsutil.GetBool(obj, "unique"); ok {
		spec.Unique = b
	}
	if field, ok := jsutil.GetString(obj, "field"); ok {
		spec.ColumnName = field
	}

	// Enum members may live beside the type instead of inside it.
	if spec.Kind == model.KindEnum && len(spec.EnumValues) == 0 {
		if values, ok := jsutil.GetStringArray(obj, "values"); ok {
			spec.EnumValues = values
		}
	}

	if ref, ok := jsutil.GetObject(obj, "references"); ok {
		r := &model.Reference{}
		if target, ok := jsutil.GetString(ref, "model"); ok {
			r.Table = target
		} else if targetObj, ok := jsutil.GetObject(ref, "model"); ok {
			r.Table, _ = jsutil.GetString(targetObj, "tableName")
		}
		r.Key, _ = jsutil.GetString(ref, "key")
		r.OnDelete, _ = jsutil.GetString(obj, "onDelete")
		r.OnUpdate, _ = jsutil.GetString(obj, "onUpdate")
		spec.References = r
	}
}

// descriptorArgs extracts the call arguments recorded on a type descriptor.
func descriptorArgs(obj *goja.Object) []any {
	v, ok := jsutil.GetValue(obj, dtypeArgsKey)
	if !ok {
		return nil
	}
	args, _ := v.Export().([]any)
	return args
}

// specFromDeclared builds a spec from a raw type-name string such as
// "VARCHAR(255)".
func specFromDeclared(declared string) *model.AttributeSpec {
	kind, _ := typemap.KindFromDeclared(declared)
	return &model.AttributeSpec{
		DeclaredType: declared,
		Kind:         kind,
	}
}

// specFromDescriptor builds a spec from a vocabulary descriptor, extracting
// the kind-specific parameters from the call arguments.
func specFromDescriptor(dtype string, args []any) *model.AttributeSpec {
	declared := dtype
	if len(args) > 0 && dtype != "ENUM" {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, fmt.Sprintf("%v", a))
		}
		declared = fmt.Sprintf("%s(%s)", dtype, strings.Join(parts, ", "))
	}

	kind, _ := typemap.KindFromDeclared(declared)
	spec := &model.AttributeSpec{
		DeclaredType: declared,
		Kind:         kind,
	}

	switch kind {
	case model.KindString:
		if len(args) > 0 {
			if n, ok := intArg(args[0]); ok {
				spec.Length = n
			}
		}
	case model.KindDecimal:
		if len(args) > 0 {
			if n, ok := intArg(args[0]); ok {
				spec.Precision = n
			}
		}
		if len(args) > 1 {
			if n, ok := intArg(args[1]); ok {
				spec.Scale = n
				spec.ScaleSet = true
			}
		}
	case model.KindEnum:
		spec.EnumValues = enumArgs(args)
	}

	return spec
}

// enumArgs flattens enum member declarations: either varargs strings or a
// single array argument.
func enumArgs(args []any) []string {
	if len(args) == 1 {
		if arr, ok := args[0].([]any); ok {
			args = arr
		} else if strs, ok := args[0].([]string); ok {
			return strs
		}
	}
	var values []string
	for _, a := range args {
		if s, ok := a.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// literalDefault reports whether a default value is a plain literal the
// generated script can carry. Raw-expression markers and type descriptors
// are not.
func literalDefault(v goja.Value) (any, bool) {
	if _, isObj := v.(*goja.Object); isObj {
		return nil, false
	}
	switch val := v.Export().(type) {
	case string, bool, int, int64, float32, float64:
		return val, true
	default:
		return nil, false
	}
}

// intArg converts a descriptor argument to int. Goja exports JS numbers as
// int64 or float64 depending on value.
func intArg(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Naming and implicit columns
// -----------------------------------------------------------------------------

// tableName derives the table a model maps to: an explicit tableName option
// wins, freezeTableName keeps the model name verbatim, and otherwise the
// snake_cased model name is pluralized.
func tableName(name string, opts *goja.Object) string {
	if t, ok := jsutil.GetString(opts, "tableName"); ok && t != "" {
		return t
	}
	if frozen, ok := jsutil.GetBool(opts, "freezeTableName"); ok && frozen {
		return name
	}
	return pluralize(strutil.ToSnakeCase(name))
}

// pluralize applies the common English pluralization rules the source
// ecosystem's inflection follows for typical model names.
func pluralize(s string) string {
	switch {
	case s == "":
		return s
	case strings.HasSuffix(s, "y") && !hasVowelBeforeY(s):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"), strings.HasSuffix(s, "z"),
		strings.HasSuffix(s, "ch"), strings.HasSuffix(s, "sh"):
		return s + "es"
	default:
		return s + "s"
	}
}

func hasVowelBeforeY(s string) bool {
	if len(s) < 2 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(s[len(s)-2]))
}

// addImplicitColumns appends the bookkeeping columns the ORM maintains:
// createdAt/updatedAt unless timestamps are disabled, and deletedAt for
// paranoid models. Explicitly declared columns are never overwritten.
func addImplicitColumns(def *model.Definition, opts *goja.Object) {
	timestamps := true
	if b, ok := jsutil.GetBool(opts, "timestamps"); ok {
		timestamps = b
	}
	underscored, _ := jsutil.GetBool(opts, "underscored")

	if timestamps {
		f := false
		addTimestamp(def, opts, "createdAt", "created_at", underscored, &f)
		addTimestamp(def, opts, "updatedAt", "updated_at", underscored, &f)
	}
	if paranoid, ok := jsutil.GetBool(opts, "paranoid"); ok && paranoid {
		addTimestamp(def, opts, "deletedAt", "deleted_at", underscored, nil)
	}
}

// addTimestamp adds one bookkeeping column, honoring a per-column rename or
// opt-out in the model options. allowNull nil means nullable.
func addTimestamp(def *model.Definition, opts *goja.Object, key, snake string, underscored bool, nullable *bool) {
	column := key
	if underscored {
		column = snake
	}
	if opts != nil {
		if v, ok := jsutil.GetValue(opts, key); ok {
			switch override := v.Export().(type) {
			case bool:
				if !override {
					return
				}
			case string:
				if override != "" {
					column = override
				}
			}
		}
	}
	if _, exists := def.Attributes[column]; exists {
		return
	}

	var allowNull *bool
	if nullable != nil {
		v := *nullable
		allowNull = &v
	}
	def.Attributes[column] = &model.AttributeSpec{
		DeclaredType: "DATE",
		Kind:         model.KindDateTime,
		AllowNull:    allowNull,
		FieldName:    key,
	}
	def.FieldOrder = append(def.FieldOrder, column)
}
