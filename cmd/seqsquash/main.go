// Package main provides the seqsquash CLI, a tool that inspects a directory
// of JavaScript data-model definitions and produces one consolidated
// schema-migration script recreating every table and enum type from scratch.
//
// Usage:
//
//	seqsquash init        # Create models/ and migrations/ dirs plus config
//	seqsquash check       # Evaluate model files and report problems
//	seqsquash models      # List the models that would be squashed
//	seqsquash generate    # Write the consolidated migration script
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	databaseURL   string
	configFile    string
	modelsDir     string
	migrationsDir string
)

// customHelp displays a styled help message for the root command.
func customHelp(cmd *cobra.Command) {
	categories := []CommandCategory{
		{
			Title: "Setup",
			Commands: []CommandInfo{
				{"init", "Initialize project structure (models/, migrations/)"},
			},
		},
		{
			Title: "Inspection",
			Commands: []CommandInfo{
				{"check", "Evaluate model files and report problems"},
				{"models", "List the models that would be squashed"},
			},
		},
		{
			Title: "Generation",
			Commands: []CommandInfo{
				{"generate", "Write the consolidated migration script"},
			},
		},
	}

	flags := []struct{ flag, desc string }{
		{"-c, --config", "Path to config file (default: " + DefaultConfigFile + ")"},
		{"-d, --database-url", "Database connection URL"},
		{"    --models-dir", "Directory containing model definition files"},
		{"    --migrations-dir", "Directory receiving the generated script"},
		{"-h, --help", "Show help information"},
		{"-v, --version", "Show version information"},
	}

	renderCategoryHelp(MainTitle, MainSummary, categories, flags)
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "seqsquash",
		Short:   "Squash data-model definitions into one migration script",
		Long:    `Seqsquash evaluates a directory of JavaScript data-model definitions and emits a single consolidated migration script that recreates every table and enum type from scratch.`,
		Version: version,
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		customHelp(cmd)
	})

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&databaseURL, "database-url", "d", "", "Database connection URL")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", DefaultConfigFile, "Path to config file")
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "", "Directory containing model definition files")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "Directory receiving the generated script")

	rootCmd.AddCommand(
		initCmd(),
		checkCmd(),
		modelsCmd(),
		generateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
