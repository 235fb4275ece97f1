package enumreg

import (
	"strings"
	"testing"

	"github.com/seqsquash/seqsquash/internal/model"
)

func modelWithEnums(table string, fields map[string][]string, order ...string) *model.Definition {
	attrs := make(map[string]*model.AttributeSpec)
	for field, values := range fields {
		attrs[field] = &model.AttributeSpec{Kind: model.KindEnum, EnumValues: values}
	}
	return &model.Definition{
		Name:       table,
		TableName:  table,
		Attributes: attrs,
		FieldOrder: order,
	}
}

// -----------------------------------------------------------------------------
// Collect Tests
// -----------------------------------------------------------------------------

func TestCollectDerivesNames(t *testing.T) {
	models := []*model.Definition{
		modelWithEnums("users", map[string][]string{"role": {"admin", "member"}}, "role"),
		modelWithEnums("orders", map[string][]string{"status": {"open", "paid", "void"}}, "status"),
	}

	defs, warnings := Collect(models)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}
	if defs[0].Name != "enum_users_role" || defs[1].Name != "enum_orders_status" {
		t.Errorf("names = %q, %q", defs[0].Name, defs[1].Name)
	}
	if len(defs[1].Values) != 3 || defs[1].Values[0] != "open" {
		t.Errorf("values out of order: %v", defs[1].Values)
	}
}

func TestCollectIgnoresNonEnumFields(t *testing.T) {
	m := &model.Definition{
		Name:      "users",
		TableName: "users",
		Attributes: map[string]*model.AttributeSpec{
			"name": {Kind: model.KindString},
			"role": {Kind: model.KindEnum, EnumValues: []string{"a"}},
		},
		FieldOrder: []string{"name", "role"},
	}

	defs, _ := Collect([]*model.Definition{m})
	if len(defs) != 1 || defs[0].Field != "role" {
		t.Errorf("Collect() = %v, want only the enum field", defs)
	}
}

func TestCollectDeduplicatesByName(t *testing.T) {
	// Two models mapped to the same table produce a name collision; the
	// first occurrence wins and the collision is reported.
	first := modelWithEnums("users", map[string][]string{"role": {"admin"}}, "role")
	second := modelWithEnums("users", map[string][]string{"role": {"other"}}, "role")

	defs, warnings := Collect([]*model.Definition{first, second})
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}
	if defs[0].Values[0] != "admin" {
		t.Errorf("first occurrence should win, got %v", defs[0].Values)
	}
	// Identical (table, field) pairs are a plain re-scan, not a collision.
	if len(warnings) != 0 {
		t.Errorf("same pair should not warn: %v", warnings)
	}
}

func TestCollectWarnsOnCrossFieldCollision(t *testing.T) {
	// "a_b" + "c" and "a" + "b_c" both derive enum_a_b_c.
	first := modelWithEnums("a_b", map[string][]string{"c": {"x"}}, "c")
	second := modelWithEnums("a", map[string][]string{"b_c": {"y"}}, "b_c")

	defs, warnings := Collect([]*model.Definition{first, second})
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "enum_a_b_c") {
		t.Errorf("collision should warn: %v", warnings)
	}
}

func TestCollectSkipsEmptyEnums(t *testing.T) {
	m := modelWithEnums("users", map[string][]string{"role": nil}, "role")

	defs, warnings := Collect([]*model.Definition{m})
	if len(defs) != 0 {
		t.Errorf("empty enum should create nothing: %v", defs)
	}
	if len(warnings) != 1 {
		t.Errorf("empty enum should warn: %v", warnings)
	}
}

// -----------------------------------------------------------------------------
// DropNames Tests
// -----------------------------------------------------------------------------

func TestDropNamesCoversSkippedCreates(t *testing.T) {
	// Creation is skipped for the valueless enum, but the drop set still
	// includes it: the type may exist from an earlier run.
	models := []*model.Definition{
		modelWithEnums("users", map[string][]string{"role": nil}, "role"),
		modelWithEnums("orders", map[string][]string{"status": {"open"}}, "status"),
	}

	names := DropNames(models)
	want := []string{"enum_users_role", "enum_orders_status"}
	if len(names) != len(want) {
		t.Fatalf("DropNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("DropNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDropNamesDeduplicates(t *testing.T) {
	models := []*model.Definition{
		modelWithEnums("users", map[string][]string{"role": {"a"}}, "role"),
		modelWithEnums("users", map[string][]string{"role": {"b"}}, "role"),
	}

	names := DropNames(models)
	if len(names) != 1 || names[0] != "enum_users_role" {
		t.Errorf("DropNames() = %v, want one deduplicated name", names)
	}
}

// -----------------------------------------------------------------------------
// SQL Rendering Tests
// -----------------------------------------------------------------------------

func TestCreateSQL(t *testing.T) {
	def := &Definition{
		Name:   "enum_users_role",
		Values: []string{"admin", "it's complicated"},
	}

	got := def.CreateSQL()
	wants := []string{
		`DO $$ BEGIN CREATE TYPE "enum_users_role" AS ENUM (`,
		`'admin', 'it''s complicated'`,
		`EXCEPTION WHEN duplicate_object THEN null; END $$;`,
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("CreateSQL() = %q, missing %q", got, want)
		}
	}
}

func TestDropSQL(t *testing.T) {
	got := DropSQL("enum_users_role")
	want := `DROP TYPE IF EXISTS "enum_users_role";`
	if got != want {
		t.Errorf("DropSQL() = %q, want %q", got, want)
	}
}
