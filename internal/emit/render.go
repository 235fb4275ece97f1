package emit

import (
	"fmt"
	"strings"

	"github.com/seqsquash/seqsquash/internal/enumreg"
	"github.com/seqsquash/seqsquash/internal/strutil"
)

// Render pretty-prints the script as a CommonJS migration module exposing
// up and down entry points. The module is executed later by a separate
// migration runner; this tool only writes it.
func Render(s *Script) string {
	var b strings.Builder

	b.WriteString("\"use strict\";\n\n")
	b.WriteString("module.exports = {\n")

	b.WriteString("  up: async (queryInterface, Sequelize) => {\n")
	writeStatements(&b, s.Up)
	b.WriteString("  },\n\n")

	b.WriteString("  down: async (queryInterface, Sequelize) => {\n")
	writeStatements(&b, s.Down)
	b.WriteString("  },\n")

	b.WriteString("};\n")
	return b.String()
}

func writeStatements(b *strings.Builder, stmts []Statement) {
	for _, stmt := range stmts {
		switch st := stmt.(type) {
		case *CreateEnum:
			writeRawQuery(b, st.Enum.CreateSQL())
		case *CreateTable:
			writeCreateTable(b, st)
		case *DropTable:
			fmt.Fprintf(b, "    await queryInterface.dropTable(%s);\n", strutil.QuoteJS(st.Table))
		case *DropEnum:
			writeRawQuery(b, enumreg.DropSQL(st.Name))
		}
	}
}

// writeRawQuery emits a raw SQL statement through the schema-mutation handle.
func writeRawQuery(b *strings.Builder, sql string) {
	fmt.Fprintf(b, "    await queryInterface.sequelize.query(%s);\n", strutil.QuoteJS(sql))
}

func writeCreateTable(b *strings.Builder, st *CreateTable) {
	fmt.Fprintf(b, "    await queryInterface.createTable(%s, {\n", strutil.QuoteJS(st.Table))
	for _, col := range st.Columns {
		fmt.Fprintf(b, "      %s: {\n", propertyKey(col.Name))
		fmt.Fprintf(b, "        type: %s,\n", col.TypeExpr)
		fmt.Fprintf(b, "        allowNull: %t,\n", col.AllowNull)
		if col.PrimaryKey {
			b.WriteString("        primaryKey: true,\n")
		}
		if col.AutoIncrement {
			b.WriteString("        autoIncrement: true,\n")
		}
		if col.Unique {
			b.WriteString("        unique: true,\n")
		}
		if col.DefaultSet {
			fmt.Fprintf(b, "        defaultValue: %s,\n", jsValue(col.Default))
		}
		b.WriteString("      },\n")
	}
	b.WriteString("    });\n")
}

// identLike matches names usable as bare JS object keys.
var identLike = func(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// propertyKey renders a field name as an object key, quoting only when needed.
func propertyKey(name string) string {
	if identLike(name) {
		return name
	}
	return strutil.QuoteJS(name)
}

// jsValue renders a default value as a JavaScript literal.
func jsValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strutil.QuoteJS(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int32, int64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%v", val)
	default:
		return strutil.QuoteJS(fmt.Sprintf("%v", val))
	}
}
