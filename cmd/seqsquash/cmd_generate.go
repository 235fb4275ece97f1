package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/seqsquash/seqsquash/internal/conn"
	"github.com/seqsquash/seqsquash/internal/emit"
	"github.com/seqsquash/seqsquash/internal/loader"
	"github.com/seqsquash/seqsquash/internal/sqerr"
	"github.com/seqsquash/seqsquash/internal/ui"
	"github.com/seqsquash/seqsquash/internal/writer"
)

// generateCmd writes the consolidated migration script.
func generateCmd() *cobra.Command {
	var out string
	var dryRun, watch bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the consolidated migration script",
		Long: `Evaluate every model definition and write one migration script whose up
direction recreates all enum types and tables from scratch, and whose down
direction removes them again in reverse order.

Per-model problems degrade the run instead of aborting it: the affected field
or table is skipped with a warning and the script is still written.`,
		Example: `  # Preview the script without writing it
  seqsquash generate --dry-run

  # Write into the configured migrations directory
  seqsquash generate

  # Regenerate on every model change
  seqsquash generate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if watch {
				return runWatch(cfg, out)
			}
			return runGenerate(cfg, out, dryRun)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", FlagDescOut)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, FlagDescDryRun)
	cmd.Flags().BoolVar(&watch, "watch", false, FlagDescWatch)

	return cmd
}

func runGenerate(cfg *Config, out string, dryRun bool) error {
	if out == "" {
		out = cfg.MigrationsDir
	}

	// When a database is configured, verify it is reachable before touching
	// any file. The teardown is checked too: a failed close is fatal.
	var handle *conn.Handle
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		h, err := conn.Open(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			return err
		}
		handle = h
	}

	content, script, warnings, err := buildScript(cfg)
	if err != nil {
		_ = handle.Close()
		if exitWithLoadHelp(cfg, err) {
			os.Exit(1)
		}
		return err
	}

	if dryRun {
		fmt.Print(content)
		reportWarnings(warnings)
		return handle.Close()
	}

	w := writer.New(out)
	path, err := w.Write(content)
	if err != nil {
		_ = handle.Close()
		return err
	}

	if err := handle.Close(); err != nil {
		return err
	}

	tables, enums := countStatements(script)
	ui.ShowSuccess(
		TitleGenerateComplete,
		fmt.Sprintf("%s, %s\nScript: %s",
			ui.FormatCount(tables, "table", "tables"),
			ui.FormatCount(enums, "enum type", "enum types"),
			ui.Primary(path),
		),
	)
	reportWarnings(warnings)
	return nil
}

// buildScript loads the models and renders the migration script.
func buildScript(cfg *Config) (string, *emit.Script, []string, error) {
	l := loader.NewDirLoader(cfg.ModelsDir)
	defs, err := l.Load()
	if err != nil {
		return "", nil, nil, err
	}

	script := emit.Emit(defs)
	warnings := append(l.Warnings(), script.Warnings...)
	return emit.Render(script), script, warnings, nil
}

// countStatements tallies the create statements in the up direction.
func countStatements(script *emit.Script) (tables, enums int) {
	for _, st := range script.Up {
		switch st.(type) {
		case *emit.CreateTable:
			tables++
		case *emit.CreateEnum:
			enums++
		}
	}
	return tables, enums
}

// reportWarnings prints the aggregate degraded-run notice. Warnings never
// change the exit code of generate; the script was still produced.
func reportWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, ui.RenderWarningPanel(
		TitleGenerateDegraded,
		strings.Join(warnings, "\n"),
	))
}

// exitWithLoadHelp prints a structured help message for well-known load
// failures. Returns true when a message was printed.
func exitWithLoadHelp(cfg *Config, err error) bool {
	switch {
	case sqerr.Is(err, sqerr.ErrModelNotFound):
		printHelp("models_dir_not_found", cfg.ModelsDir)
		return true
	case sqerr.Is(err, sqerr.ErrModelEmpty):
		printHelp("no_models_found")
		return true
	}
	return false
}

// runWatch regenerates the script whenever a model file changes. Events are
// debounced so editors that write in bursts trigger one regeneration.
func runWatch(cfg *Config, out string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file watcher failed: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.ModelsDir); err != nil {
		if exitWithLoadHelp(cfg, sqerr.Wrap(sqerr.ErrModelNotFound, err, "cannot watch models directory")) {
			os.Exit(1)
		}
		return err
	}

	generate := func() {
		if err := runGenerate(cfg, out, false); err != nil {
			fmt.Fprintln(os.Stderr, ui.Error("error")+": "+err.Error())
		}
	}

	fmt.Println(ui.Info("Watching " + cfg.ModelsDir + " (ctrl+c to stop)"))
	generate()

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !loader.IsModelFile(filepath.Base(event.Name)) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(250*time.Millisecond, generate)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, ui.Warning("watcher: "+err.Error()))
		}
	}
}
