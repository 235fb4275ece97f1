package strutil

import (
	"testing"
)

// -----------------------------------------------------------------------------
// ToSnakeCase Tests
// -----------------------------------------------------------------------------

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Basic cases
		{"", ""},
		{"user", "user"},
		{"User", "user"},

		// CamelCase
		{"userName", "user_name"},
		{"UserName", "user_name"},
		{"OrderItem", "order_item"},

		// Consecutive uppercase (acronyms)
		{"HTTPServer", "http_server"},
		{"userID", "user_id"},
		{"APIKey", "api_key"},

		// Already snake_case
		{"already_snake", "already_snake"},
		{"user_name", "user_name"},

		// Dashes and spaces
		{"user-name", "user_name"},
		{"user name", "user_name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToSnakeCase(tt.input); got != tt.want {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// EnumTypeName Tests
// -----------------------------------------------------------------------------

func TestEnumTypeName(t *testing.T) {
	tests := []struct {
		table string
		field string
		want  string
	}{
		{"users", "role", "enum_users_role"},
		{"orders", "status", "enum_orders_status"},
		{"", "status", "enum__status"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := EnumTypeName(tt.table, tt.field); got != tt.want {
				t.Errorf("EnumTypeName(%q, %q) = %q, want %q", tt.table, tt.field, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Quoting Tests
// -----------------------------------------------------------------------------

func TestQuoteJS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"users", `"users"`},
		{`with "quotes"`, `"with \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
		{"multi\nline", `"multi\nline"`},
		{"tab\there", `"tab\there"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := QuoteJS(tt.input); got != tt.want {
				t.Errorf("QuoteJS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuoteSQLIdent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"enum_users_role", `"enum_users_role"`},
		{`odd"name`, `"odd""name"`},
	}

	for _, tt := range tests {
		if got := QuoteSQLIdent(tt.input); got != tt.want {
			t.Errorf("QuoteSQLIdent(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestQuoteSQLLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"admin", "'admin'"},
		{"it's", "'it''s'"},
		{"", "''"},
	}

	for _, tt := range tests {
		if got := QuoteSQLLiteral(tt.input); got != tt.want {
			t.Errorf("QuoteSQLLiteral(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// -----------------------------------------------------------------------------
// Indent Tests
// -----------------------------------------------------------------------------

func TestIndent(t *testing.T) {
	got := Indent("a\n\nb", 2)
	want := "  a\n\n  b"
	if got != want {
		t.Errorf("Indent() = %q, want %q", got, want)
	}
}
