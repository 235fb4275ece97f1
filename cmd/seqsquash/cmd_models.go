package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seqsquash/seqsquash/internal/loader"
	"github.com/seqsquash/seqsquash/internal/ui"
)

// modelsCmd lists the models the generator would squash, in load order.
func modelsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models that would be squashed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			l := loader.NewDirLoader(cfg.ModelsDir)
			defs, err := l.Load()
			if err != nil {
				if !exitWithLoadHelp(cfg, err) {
					fmt.Fprintln(os.Stderr, ui.Error("error")+": "+err.Error())
				}
				os.Exit(1)
			}

			if jsonOutput {
				models := make([]map[string]any, 0, len(defs))
				for _, d := range defs {
					models = append(models, map[string]any{
						"name":   d.Name,
						"table":  d.TableName,
						"fields": len(d.FieldOrder),
					})
				}
				outputJSON(map[string]any{"models": models})
				return nil
			}

			fmt.Println(ui.RenderTitle("Models"))
			fmt.Println()

			width := 0
			for _, d := range defs {
				if len(d.Name) > width {
					width = len(d.Name)
				}
			}
			for _, d := range defs {
				fmt.Printf("  %-*s  %s %s\n",
					width, d.Name,
					ui.Dim("→ "+d.TableName),
					ui.Dim("("+ui.FormatCount(len(d.FieldOrder), "field", "fields")+")"),
				)
			}
			fmt.Println()
			fmt.Println(ui.FormatKeyValue("Total", ui.FormatCount(len(defs), "model", "models")))

			if warnings := l.Warnings(); len(warnings) > 0 {
				fmt.Println()
				for _, w := range warnings {
					fmt.Println(ui.Warning(w))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, FlagDescJSON)

	return cmd
}
