// Package typemap maps declared column types to the canonical type tokens
// used in generated migration code.
//
// Parsing happens in two steps: KindFromDeclared turns a raw declared-type
// string into a closed TypeKind (done once, at the loader boundary), and
// Resolve turns a kind back into the canonical token for emission. Unknown
// base types pass through unchanged as their string form.
package typemap

import (
	"regexp"
	"strings"

	"github.com/seqsquash/seqsquash/internal/model"
)

// Prefix is the type-vocabulary handle the generated script receives.
const Prefix = "Sequelize."

// FallbackToken is the generic textual type used when a declared type is
// absent or cannot be resolved. Fields degraded to the fallback are still
// emitted; the degradation is reported as a warning.
const FallbackToken = Prefix + "STRING"

// UnresolvedMarker flags a type expression the generator does not support.
// It must never survive into emitted output; the normalizer drops any field
// whose resolved type still contains it.
const UnresolvedMarker = "<<unresolved>>"

// baseTypeAliases maps known source-ecosystem base-type names to canonical
// base names. Lookup happens after stripping any parenthesized
// parameterization, e.g. "VARCHAR(255)" -> "VARCHAR".
var baseTypeAliases = map[string]string{
	"VARCHAR":                     "STRING",
	"CHARACTER VARYING":           "STRING",
	"CHAR":                        "STRING",
	"STRING":                      "STRING",
	"CITEXT":                      "TEXT",
	"TEXT":                        "TEXT",
	"TINYINT":                     "BOOLEAN",
	"BOOLEAN":                     "BOOLEAN",
	"BOOL":                        "BOOLEAN",
	"INT":                         "INTEGER",
	"INT4":                        "INTEGER",
	"INTEGER":                     "INTEGER",
	"SERIAL":                      "INTEGER",
	"INT8":                        "BIGINT",
	"BIGINT":                      "BIGINT",
	"BIGSERIAL":                   "BIGINT",
	"NUMERIC":                     "DECIMAL",
	"DECIMAL":                     "DECIMAL",
	"FLOAT":                       "FLOAT",
	"REAL":                        "FLOAT",
	"DOUBLE":                      "DOUBLE",
	"DOUBLE PRECISION":            "DOUBLE",
	"DATEONLY":                    "DATEONLY",
	"DATETIME":                    "DATE",
	"DATE":                        "DATE",
	"TIMESTAMP":                   "DATE",
	"TIMESTAMP WITH TIME ZONE":    "DATE",
	"TIMESTAMP WITHOUT TIME ZONE": "DATE",
	"TIMESTAMPTZ":                 "DATE",
	"ENUM":                        "ENUM",
	"JSON":                        "JSON",
	"JSONB":                       "JSONB",
	"BYTEA":                       "BLOB",
	"BLOB":                        "BLOB",
	"VIRTUAL":                     "VIRTUAL",
}

// canonicalKinds maps canonical base names to type kinds.
var canonicalKinds = map[string]model.TypeKind{
	"STRING":   model.KindString,
	"TEXT":     model.KindText,
	"BOOLEAN":  model.KindBoolean,
	"INTEGER":  model.KindInteger,
	"BIGINT":   model.KindBigInt,
	"DECIMAL":  model.KindDecimal,
	"FLOAT":    model.KindFloat,
	"DOUBLE":   model.KindDouble,
	"DATEONLY": model.KindDateOnly,
	"DATE":     model.KindDateTime,
	"ENUM":     model.KindEnum,
	"JSON":     model.KindJSON,
	"JSONB":    model.KindJSONB,
	"BLOB":     model.KindBlob,
	"VIRTUAL":  model.KindVirtual,
}

// validPassthrough matches base-type names that are safe to emit verbatim
// as a token suffix (e.g. UUID -> Sequelize.UUID).
var validPassthrough = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// BaseType strips parenthesized parameterization and normalizes casing.
// Example: "varchar(255)" -> "VARCHAR".
func BaseType(declared string) string {
	s := strings.TrimSpace(declared)
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// KindFromDeclared parses a raw declared-type string into a type kind.
// The second return is the passthrough base name, meaningful only for
// KindOther. An empty declaration yields KindUnknown.
func KindFromDeclared(declared string) (model.TypeKind, string) {
	base := BaseType(declared)
	if base == "" {
		return model.KindUnknown, ""
	}
	canonical, ok := baseTypeAliases[base]
	if !ok {
		return model.KindOther, base
	}
	kind, ok := canonicalKinds[canonical]
	if !ok {
		return model.KindOther, canonical
	}
	return kind, canonical
}

// Resolve maps a type kind to its canonical unparameterized token.
// The returned bool reports whether the resolution degraded to the fallback
// (absent type) so the caller can record a warning. Resolution never fails:
// anything unresolvable degrades rather than propagating an error.
func Resolve(kind model.TypeKind, passthrough string) (string, bool) {
	switch kind {
	case model.KindUnknown:
		return FallbackToken, true
	case model.KindBoolean:
		return Prefix + "BOOLEAN", false
	case model.KindString:
		return Prefix + "STRING", false
	case model.KindText:
		return Prefix + "TEXT", false
	case model.KindInteger:
		return Prefix + "INTEGER", false
	case model.KindBigInt:
		return Prefix + "BIGINT", false
	case model.KindDecimal:
		return Prefix + "DECIMAL", false
	case model.KindFloat:
		return Prefix + "FLOAT", false
	case model.KindDouble:
		return Prefix + "DOUBLE", false
	case model.KindDateOnly, model.KindDateTime:
		// Deliberate upgrade: all date flavors emit the timezone-aware
		// timestamp type.
		return Prefix + "DATE", false
	case model.KindJSON:
		return Prefix + "JSON", false
	case model.KindJSONB:
		return Prefix + "JSONB", false
	case model.KindBlob:
		return Prefix + "BLOB", false
	case model.KindEnum:
		return Prefix + "ENUM", false
	case model.KindVirtual:
		return Prefix + "VIRTUAL", false
	case model.KindOther:
		if validPassthrough.MatchString(passthrough) {
			return Prefix + strings.ToUpper(passthrough), false
		}
		return UnresolvedMarker, false
	default:
		return FallbackToken, true
	}
}
