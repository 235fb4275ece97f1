package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seqsquash/seqsquash/internal/ui"
)

// exampleModel seeds a new project with one working model definition.
const exampleModel = `module.exports = (sequelize, DataTypes) => {
  const User = sequelize.define("User", {
    id: {
      type: DataTypes.INTEGER,
      primaryKey: true,
      autoIncrement: true,
      allowNull: false,
    },
    email: {
      type: DataTypes.STRING(255),
      allowNull: false,
      unique: true,
    },
    role: {
      type: DataTypes.ENUM("admin", "member"),
      defaultValue: "member",
    },
  });
  return User;
};
`

// initCmd creates the models/ and migrations/ directories plus the config.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize project structure (creates models/, migrations/ dirs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dirs := []string{cfg.ModelsDir, cfg.MigrationsDir}
			for _, dir := range dirs {
				if err := os.MkdirAll(dir, DirPerm); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
				fmt.Printf("Created %s/\n", dir)
			}
			// Create .gitkeep to ensure empty directories are tracked by git
			for _, dir := range dirs {
				gitkeepPath := filepath.Join(dir, ".gitkeep")
				if _, err := os.Stat(gitkeepPath); os.IsNotExist(err) {
					if err := os.WriteFile(gitkeepPath, []byte{}, FilePerm); err != nil {
						return fmt.Errorf("failed to create %s: %w", gitkeepPath, err)
					}
				}
			}

			// Create seqsquash.yaml if it doesn't exist
			if _, err := os.Stat(configFile); os.IsNotExist(err) {
				content := `# seqsquash.yaml
# database_url supports ${VAR} interpolation, e.g. ${DATABASE_URL}
database_url: sqlite://sqlite.db

models_dir: ` + cfg.ModelsDir + `
migrations_dir: ` + cfg.MigrationsDir + `
`
				if err := os.WriteFile(configFile, []byte(content), FilePerm); err != nil {
					return fmt.Errorf("failed to create config file: %w", err)
				}
				fmt.Printf("Created %s\n", configFile)
			}

			// Seed an example model when the models directory is empty
			examplePath := filepath.Join(cfg.ModelsDir, "user.js")
			if _, err := os.Stat(examplePath); os.IsNotExist(err) {
				if err := os.WriteFile(examplePath, []byte(exampleModel), FilePerm); err != nil {
					return fmt.Errorf("failed to create example model: %w", err)
				}
				fmt.Printf("Created %s\n", examplePath)
			}

			ui.ShowSuccess(
				TitleProjectInitialized,
				fmt.Sprintf("Models:     %s\nMigrations: %s\nConfig:     %s",
					cfg.ModelsDir, cfg.MigrationsDir, configFile),
			)
			return nil
		},
	}
}
