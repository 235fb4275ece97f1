package main

// File permissions for consistent file/directory creation across the CLI.
const (
	// DirPerm is the permission mode for created directories (rwxr-xr-x).
	DirPerm = 0755

	// FilePerm is the permission mode for created files (rw-r--r--).
	FilePerm = 0644
)

// DB URL display configuration.
const (
	// DBURLMaskLength is the max characters shown before masking with "...".
	DBURLMaskLength = 40
)

const (
	MainTitle   = "⛁ Seqsquash"
	MainSummary = "★  Many models: one migration"
)

// Default directory and file names.
const (
	// DefaultModelsDir is the default location of model definition files.
	DefaultModelsDir = "./models"

	// DefaultMigrationsDir is the default output directory.
	DefaultMigrationsDir = "./migrations"

	// DefaultConfigFile is the default configuration filename.
	DefaultConfigFile = "seqsquash.yaml"
)

// Panel titles for success/warning messages.
const (
	// TitleGenerateComplete is the success title after generation.
	TitleGenerateComplete = "Migration Script Generated"

	// TitleGenerateDegraded is the warning title for a degraded run.
	TitleGenerateDegraded = "Generated With Warnings"

	// TitleCheckPassed is the success title after a clean check.
	TitleCheckPassed = "Model Check Passed"

	// TitleCheckDegraded is the warning title after a degraded check.
	TitleCheckDegraded = "Model Check Found Problems"

	// TitleProjectInitialized is the success title after init.
	TitleProjectInitialized = "Project Initialized"
)

// Flag descriptions for consistent CLI flag help text.
const (
	// FlagDescDryRun is the description for --dry-run.
	FlagDescDryRun = "Print the script without writing it"

	// FlagDescOut is the description for --out.
	FlagDescOut = "Output directory (overrides migrations dir)"

	// FlagDescWatch is the description for --watch.
	FlagDescWatch = "Regenerate whenever a model file changes"

	// FlagDescJSON is the description for --json.
	FlagDescJSON = "Output as JSON for CI/CD"
)

// MaskDatabaseURL truncates a database URL for display.
func MaskDatabaseURL(url string) string {
	if len(url) > DBURLMaskLength {
		return url[:DBURLMaskLength] + "..."
	}
	return url
}
