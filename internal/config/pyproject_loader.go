package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// PyprojectToml represents the parts of pyproject.toml read by pydocscan
type PyprojectToml struct {
	Tool struct {
		Pydocscan *PydocscanTomlConfig `toml:"pydocscan"`
	} `toml:"tool"`
}

// findPyprojectToml walks up the directory tree to find a pyproject.toml
// that carries a [tool.pydocscan] table.
func findPyprojectToml(startDir string) (string, error) {
	path, err := findUpwards(startDir, "pyproject.toml")
	if err != nil {
		return "", err
	}
	pyproject, err := readPyproject(path)
	if err != nil || pyproject.Tool.Pydocscan == nil {
		return "", os.ErrNotExist
	}
	return path, nil
}

func readPyproject(path string) (*PyprojectToml, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pyproject PyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &pyproject, nil
}

// loadFromPyproject loads configuration from the [tool.pydocscan] table
func loadFromPyproject(path string) (*Config, error) {
	pyproject, err := readPyproject(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if pyproject.Tool.Pydocscan != nil {
		mergeTomlConfig(cfg, pyproject.Tool.Pydocscan)
	}
	return cfg, nil
}
