// Package model defines the in-memory representation of loaded data-model
// definitions: the raw attribute metadata the generator consumes, and the
// closed set of column-type kinds it understands.
package model

import (
	"github.com/seqsquash/seqsquash/internal/sqerr"
)

// -----------------------------------------------------------------------------
// TypeKind - closed column-type variant
// -----------------------------------------------------------------------------

// TypeKind enumerates the column-type kinds the generator supports.
// Raw declared-type strings are parsed into a kind exactly once, at the
// loader boundary; everything downstream switches on the kind.
type TypeKind int

const (
	// KindUnknown marks an absent or undetermined type. The type mapper
	// degrades it to the fallback string type with a warning.
	KindUnknown TypeKind = iota
	KindBoolean
	KindString // variable-length string, optional Length
	KindText   // unbounded text
	KindInteger
	KindBigInt
	KindDecimal // Precision/Scale, defaulting to (10, 0)
	KindFloat
	KindDouble
	KindDateOnly // date without time component
	KindDateTime // timestamp; always emitted timezone-aware
	KindEnum     // EnumValues carries the declared members
	KindJSON
	KindJSONB
	KindBlob
	KindVirtual // computed field, never persisted
	KindOther   // recognized shape but unmapped base type; passes through
)

// String returns the kind name for logs and error context.
func (k TypeKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindBigInt:
		return "bigint"
	case KindDecimal:
		return "decimal"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindDateOnly:
		return "dateonly"
	case KindDateTime:
		return "datetime"
	case KindEnum:
		return "enum"
	case KindJSON:
		return "json"
	case KindJSONB:
		return "jsonb"
	case KindBlob:
		return "blob"
	case KindVirtual:
		return "virtual"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// AttributeSpec - raw per-field metadata
// -----------------------------------------------------------------------------

// Reference holds foreign-key metadata attached to a field. The generator
// records it for diagnostics but always strips it before emission; squashed
// migrations define columns only, never constraints.
type Reference struct {
	Table    string // referenced table
	Key      string // referenced column
	OnDelete string
	OnUpdate string
}

// AttributeSpec is the raw metadata for one model field as supplied by the
// loader. It is read-only to the core.
type AttributeSpec struct {
	DeclaredType string   // raw declared type text, e.g. "VARCHAR(255)"
	Kind         TypeKind // parsed type kind

	// Nullability. Nil means unspecified; the normalizer defaults it to true.
	AllowNull *bool

	// Emittable column properties.
	PrimaryKey    bool
	AutoIncrement bool
	Unique        bool
	Default       any
	DefaultSet    bool

	// Kind-specific parameters.
	Length     int      // string length, 0 = unset
	Precision  int      // decimal precision, 0 = unset
	Scale      int      // decimal scale
	ScaleSet   bool     // distinguishes scale 0 from unset
	EnumValues []string // declared enum members, in order

	// Relation metadata, discarded before emission.
	References *Reference

	// Internal bookkeeping carried by some loaders, always stripped.
	FieldName  string
	ColumnName string
}

// -----------------------------------------------------------------------------
// Definition - one loaded model
// -----------------------------------------------------------------------------

// Definition is one loaded model: a stable name, its table name, and its raw
// attribute map. FieldOrder preserves declaration order so generation is
// deterministic.
type Definition struct {
	Name       string
	TableName  string
	Attributes map[string]*AttributeSpec
	FieldOrder []string
}

// Fields returns the attribute names in declaration order. Names present in
// Attributes but missing from FieldOrder are not returned; the loader owns
// keeping the two in sync.
func (d *Definition) Fields() []string {
	return d.FieldOrder
}

// Validate checks that the definition carries the minimum the core needs.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return sqerr.New(sqerr.ErrModelInvalid, "model name is required")
	}
	if d.TableName == "" {
		return sqerr.New(sqerr.ErrModelInvalid, "model table name is required").
			WithModel(d.Name)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Loader - model discovery boundary
// -----------------------------------------------------------------------------

// Loader supplies the set of model definitions. Implementations may scan a
// directory of JS files, read a registry, or return a fixed collection; the
// core only requires the resulting slice, in a stable load order.
type Loader interface {
	Load() ([]*Definition, error)
}
