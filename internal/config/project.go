package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
)

// ProjectFileName is the optional per-project configuration file
const ProjectFileName = "notify.toml"

// LoadEnvFiles loads .env and .env.local from the project root.
// Variables already present in the process environment win.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProjectFile parses notify.toml. A missing file is not an error and yields nil.
func LoadProjectFile(projectRoot string) (*config.ProjectFile, error) {
	path := filepath.Join(projectRoot, ProjectFileName)

	var project config.ProjectFile
	if _, err := toml.DecodeFile(path, &project); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	return &project, nil
}
