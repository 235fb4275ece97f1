package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqsquash/seqsquash/internal/emit"
	"github.com/seqsquash/seqsquash/internal/loader"
	"github.com/seqsquash/seqsquash/internal/ui"
)

// checkCmd evaluates model files and reports every problem generation would
// have to work around.
func checkCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate model files and report problems",
		Long: `Run the full generation pipeline without writing anything and report every
warning it would produce: unreadable files, unknown types, enum fields without
values, models that would be skipped.

Exits non-zero when any problem is found, so it can gate CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			l := loader.NewDirLoader(cfg.ModelsDir)
			defs, err := l.Load()
			if err != nil {
				if jsonOutput {
					outputJSON(map[string]any{"valid": false, "error": err.Error()})
				} else if !exitWithLoadHelp(cfg, err) {
					fmt.Fprintln(os.Stderr, ui.Error("error")+": "+err.Error())
				}
				os.Exit(1)
			}

			script := emit.Emit(defs)
			warnings := append(l.Warnings(), script.Warnings...)

			if jsonOutput {
				outputJSON(map[string]any{
					"valid":    len(warnings) == 0,
					"models":   len(defs),
					"warnings": warnings,
				})
				if len(warnings) > 0 {
					os.Exit(1)
				}
				return nil
			}

			if len(warnings) > 0 {
				fmt.Println(ui.RenderWarningPanel(
					TitleCheckDegraded,
					strings.Join(warnings, "\n"),
				))
				os.Exit(1)
			}

			tables, enums := countStatements(script)
			ui.ShowSuccess(
				TitleCheckPassed,
				fmt.Sprintf("%s, %s, %s",
					ui.FormatCount(len(defs), "model", "models"),
					ui.FormatCount(tables, "table", "tables"),
					ui.FormatCount(enums, "enum type", "enum types"),
				),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, FlagDescJSON)

	return cmd
}

// outputJSON writes a JSON object to stdout.
func outputJSON(data map[string]any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}
