// Package strutil provides string utilities for case conversion, enum-type
// naming, and JS/SQL quoting used throughout the seqsquash codebase.
package strutil

import (
	"strings"
	"unicode"
)

// -----------------------------------------------------------------------------
// Case Conversion
// -----------------------------------------------------------------------------

// ToSnakeCase converts a string to snake_case.
// Examples: userName -> user_name, UserName -> user_name, HTTPServer -> http_server
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s) + 4)

	for i, r := range s {
		if unicode.IsUpper(r) {
			// Underscore before an uppercase rune when the previous rune is
			// lowercase, or when the next rune is lowercase ("HTTPServer").
			if i > 0 {
				prev := rune(s[i-1])
				if unicode.IsLower(prev) {
					result.WriteByte('_')
				} else if i+1 < len(s) && unicode.IsLower(rune(s[i+1])) {
					result.WriteByte('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '-' || r == ' ' {
			result.WriteByte('_')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// -----------------------------------------------------------------------------
// Enum Naming
// -----------------------------------------------------------------------------

// EnumTypeName derives the database enum type name for a (table, field) pair.
// Example: EnumTypeName("users", "role") -> "enum_users_role"
func EnumTypeName(table, field string) string {
	return "enum_" + table + "_" + field
}

// -----------------------------------------------------------------------------
// Quoting
// -----------------------------------------------------------------------------

// QuoteJS quotes a string as a double-quoted JavaScript string literal,
// escaping backslashes, quotes, and newlines.
func QuoteJS(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteSQLIdent quotes a SQL identifier with double quotes, escaping embedded quotes.
func QuoteSQLIdent(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

// QuoteSQLLiteral quotes a SQL string literal with single quotes, escaping
// embedded single quotes by doubling them.
func QuoteSQLLiteral(s string) string {
	escaped := strings.ReplaceAll(s, `'`, `''`)
	return `'` + escaped + `'`
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
