package emit

import (
	"fmt"

	"github.com/seqsquash/seqsquash/internal/enumreg"
	"github.com/seqsquash/seqsquash/internal/model"
	"github.com/seqsquash/seqsquash/internal/normalize"
)

// Emit assembles the squashed migration script for the loaded models.
//
// The up direction is all enum creations followed by one create-table per
// model, in load order. The down direction is the structural inverse: table
// drops in reverse creation order, then a guarded drop for every enum type
// any model references. Per-model failures (zero usable attributes, invalid
// definitions) skip that model's table and degrade the run; they never abort
// generation.
func Emit(models []*model.Definition) *Script {
	script := &Script{}

	enums, enumWarnings := enumreg.Collect(models)
	script.Warnings = append(script.Warnings, enumWarnings...)

	for _, e := range enums {
		script.Up = append(script.Up, &CreateEnum{Enum: e})
	}

	var created []string // table names in creation order
	for _, m := range models {
		if err := m.Validate(); err != nil {
			script.Warnings = append(script.Warnings,
				fmt.Sprintf("model %q: invalid definition, skipping table: %v", m.Name, err))
			continue
		}

		res := normalize.Attributes(m)
		script.Warnings = append(script.Warnings, res.Warnings...)

		if len(res.Attributes) == 0 {
			script.Warnings = append(script.Warnings,
				fmt.Sprintf("model %q: no usable attributes, skipping table %s", m.Name, m.TableName))
			continue
		}

		script.Up = append(script.Up, &CreateTable{
			Model:   m.Name,
			Table:   m.TableName,
			Columns: res.Attributes,
		})
		created = append(created, m.TableName)
	}

	// Drop tables in reverse creation order so later tables (the ones more
	// likely to reference earlier ones) go first.
	for i := len(created) - 1; i >= 0; i-- {
		script.Down = append(script.Down, &DropTable{Table: created[i]})
	}

	// The drop set comes from a fresh scan of all models, not from the
	// creation pass: drops must cover every referenced enum even when its
	// creation was skipped.
	for _, name := range enumreg.DropNames(models) {
		script.Down = append(script.Down, &DropEnum{Name: name})
	}

	script.Degraded = len(script.Warnings) > 0
	return script
}
