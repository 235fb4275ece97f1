// Package normalize turns a model's raw attribute map into emission-ready
// column definitions. Per-field problems are recorded and the field skipped;
// normalization itself never fails.
package normalize

import (
	"fmt"

	"github.com/seqsquash/seqsquash/internal/model"
	"github.com/seqsquash/seqsquash/internal/strutil"
	"github.com/seqsquash/seqsquash/internal/typemap"
)

// Defaults applied when decimal precision/scale are unspecified.
const (
	DefaultDecimalPrecision = 10
	DefaultDecimalScale     = 0
)

// Attribute is one normalized, emission-ready column. TypeExpr is the exact
// type expression to emit: either a vocabulary token such as
// Sequelize.STRING(100), or a quoted enum type name such as
// "enum_users_role". It never contains relation or virtual-only metadata and
// never contains the internal unresolved-type marker.
type Attribute struct {
	Name     string
	TypeExpr string
	IsEnum   bool

	AllowNull     bool
	PrimaryKey    bool
	AutoIncrement bool
	Unique        bool
	Default       any
	DefaultSet    bool
}

// Result is the outcome of normalizing one model's attributes.
type Result struct {
	Attributes []Attribute
	Warnings   []string
	HadErrors  bool
}

// warnf records a per-field warning and marks the result degraded.
func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	r.HadErrors = true
}

// Attributes normalizes every field of the given model in declaration order.
// It never returns an error: nil entries, unresolvable types, and enum fields
// without values are dropped with a warning, and the result is flagged as
// degraded so callers can surface an aggregate notice.
func Attributes(def *model.Definition) *Result {
	res := &Result{}

	for _, name := range def.Fields() {
		spec := def.Attributes[name]
		if spec == nil {
			res.warnf("%s.%s: attribute entry is undefined, skipping field", def.TableName, name)
			continue
		}

		// Virtual fields are not persisted columns.
		if spec.Kind == model.KindVirtual {
			continue
		}

		attr, warning, ok := normalizeField(def.TableName, name, spec)
		if warning != "" {
			res.Warnings = append(res.Warnings, warning)
			res.HadErrors = true
		}
		if !ok {
			continue
		}
		res.Attributes = append(res.Attributes, attr)
	}

	return res
}

// normalizeField resolves one field. It reports a warning string when the
// field degraded or was dropped, and ok=false when the field must be dropped.
// Any panic while resolving is caught and converted into a drop; a malformed
// field never aborts the model.
func normalizeField(table, name string, spec *model.AttributeSpec) (attr Attribute, warning string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			warning = fmt.Sprintf("%s.%s: failed to resolve type (%v), skipping field", table, name, r)
			ok = false
		}
	}()

	token, degraded := typemap.Resolve(spec.Kind, typemap.BaseType(spec.DeclaredType))

	attr = Attribute{
		Name:          name,
		PrimaryKey:    spec.PrimaryKey,
		AutoIncrement: spec.AutoIncrement,
		Unique:        spec.Unique,
		Default:       spec.Default,
		DefaultSet:    spec.DefaultSet,
		// Explicit design choice: unspecified nullability means nullable.
		AllowNull: spec.AllowNull == nil || *spec.AllowNull,
	}

	switch spec.Kind {
	case model.KindString:
		if spec.Length > 0 {
			attr.TypeExpr = fmt.Sprintf("%s(%d)", token, spec.Length)
		} else {
			attr.TypeExpr = token
		}
	case model.KindDecimal:
		precision, scale := spec.Precision, spec.Scale
		if precision <= 0 {
			precision = DefaultDecimalPrecision
		}
		if !spec.ScaleSet {
			scale = DefaultDecimalScale
		}
		attr.TypeExpr = fmt.Sprintf("%s(%d, %d)", token, precision, scale)
	case model.KindEnum:
		if len(spec.EnumValues) == 0 {
			return Attribute{}, fmt.Sprintf("%s.%s: enum field has no values, skipping field", table, name), false
		}
		attr.TypeExpr = strutil.QuoteJS(strutil.EnumTypeName(table, name))
		attr.IsEnum = true
	default:
		attr.TypeExpr = token
	}

	if degraded {
		warning = fmt.Sprintf("%s.%s: type is undefined, defaulting to %s", table, name, typemap.FallbackToken)
	}

	// A surviving marker means a type wrapper this generator does not
	// support yet; drop the field rather than emit broken code.
	if attr.TypeExpr == typemap.UnresolvedMarker {
		return Attribute{}, fmt.Sprintf("%s.%s: unsupported type %q, skipping field", table, name, spec.DeclaredType), false
	}

	return attr, warning, true
}
