// Package emit assembles the squashed migration script. Generation goes
// through a small statement IR rather than direct text concatenation: the
// emitter builds an ordered statement list and the renderer pretty-prints it,
// so tests can assert on structure instead of generated text.
package emit

import (
	"github.com/seqsquash/seqsquash/internal/enumreg"
	"github.com/seqsquash/seqsquash/internal/normalize"
)

// Statement is one schema-mutation step in the generated script.
type Statement interface {
	isStatement()
}

// CreateEnum creates an enumerated type. Idempotent: guarded against the
// type already existing.
type CreateEnum struct {
	Enum *enumreg.Definition
}

// CreateTable creates one table with its normalized columns.
type CreateTable struct {
	Model   string // source model name, for diagnostics
	Table   string
	Columns []normalize.Attribute
}

// DropTable drops one table.
type DropTable struct {
	Table string
}

// DropEnum drops an enumerated type, guarded with IF EXISTS.
type DropEnum struct {
	Name string
}

func (*CreateEnum) isStatement()  {}
func (*CreateTable) isStatement() {}
func (*DropTable) isStatement()   {}
func (*DropEnum) isStatement()    {}

// Script is the assembled migration: an up direction and its structural
// inverse. Warnings carry every per-field and per-model problem hit during
// assembly; Degraded is set when any occurred.
type Script struct {
	Up       []Statement
	Down     []Statement
	Warnings []string
	Degraded bool
}
