// Package enumreg collects the enumerated types referenced by a model set
// and produces idempotent create/drop SQL for each.
package enumreg

import (
	"fmt"
	"strings"

	"github.com/seqsquash/seqsquash/internal/model"
	"github.com/seqsquash/seqsquash/internal/strutil"
)

// Definition is one database enum type derived from a (table, field) pair.
type Definition struct {
	Name   string // derived type name, enum_<table>_<field>
	Table  string
	Field  string
	Values []string // declared members, in original order
}

// Collect scans every model's attributes in load order and returns the enum
// definitions in first-seen order, deduplicated by derived name. When two
// (table, field) pairs derive the same name, the first occurrence wins and a
// warning names both pairs; enum fields without values are skipped with a
// warning since there is nothing to create.
func Collect(models []*model.Definition) ([]*Definition, []string) {
	var defs []*Definition
	var warnings []string
	seen := make(map[string]*Definition)

	for _, m := range models {
		for _, field := range m.Fields() {
			spec := m.Attributes[field]
			if spec == nil || spec.Kind != model.KindEnum {
				continue
			}
			if len(spec.EnumValues) == 0 {
				warnings = append(warnings,
					fmt.Sprintf("%s.%s: enum field has no values, no type created", m.TableName, field))
				continue
			}

			name := strutil.EnumTypeName(m.TableName, field)
			if first, ok := seen[name]; ok {
				if first.Table != m.TableName || first.Field != field {
					warnings = append(warnings,
						fmt.Sprintf("enum type %s derived by both %s.%s and %s.%s; keeping the first",
							name, first.Table, first.Field, m.TableName, field))
				}
				continue
			}

			def := &Definition{
				Name:   name,
				Table:  m.TableName,
				Field:  field,
				Values: spec.EnumValues,
			}
			seen[name] = def
			defs = append(defs, def)
		}
	}

	return defs, warnings
}

// DropNames re-scans the models and returns the deduplicated enum type names
// that need a drop statement at teardown, in first-seen order. The set is
// derived independently of Collect so drops cover every enum referenced by
// any surviving model, even when creation was skipped.
func DropNames(models []*model.Definition) []string {
	var names []string
	seen := make(map[string]bool)

	for _, m := range models {
		for _, field := range m.Fields() {
			spec := m.Attributes[field]
			if spec == nil || spec.Kind != model.KindEnum {
				continue
			}
			name := strutil.EnumTypeName(m.TableName, field)
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

// CreateSQL returns the idempotent creation statement for the enum type.
// The duplicate_object guard makes re-running against a partially migrated
// database safe.
func (d *Definition) CreateSQL() string {
	var b strings.Builder
	b.WriteString("DO $$ BEGIN CREATE TYPE ")
	b.WriteString(strutil.QuoteSQLIdent(d.Name))
	b.WriteString(" AS ENUM (")
	for i, v := range d.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strutil.QuoteSQLLiteral(v))
	}
	b.WriteString("); EXCEPTION WHEN duplicate_object THEN null; END $$;")
	return b.String()
}

// DropSQL returns the guarded drop statement for an enum type name.
func DropSQL(name string) string {
	return "DROP TYPE IF EXISTS " + strutil.QuoteSQLIdent(name) + ";"
}
