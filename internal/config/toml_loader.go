package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectConfigFile is the name of the dedicated configuration file.
const ProjectConfigFile = ".pydocscan.toml"

// PydocscanTomlConfig is the on-disk shape of .pydocscan.toml and of the
// [tool.pydocscan] table. Pointer fields distinguish unset from zero.
type PydocscanTomlConfig struct {
	Parser struct {
		Dedent   *bool `toml:"dedent"`
		MaxItems *int  `toml:"max_items"`
	} `toml:"parser"`

	Input struct {
		Recursive       *bool    `toml:"recursive"`
		IncludePatterns []string `toml:"include_patterns"`
		ExcludePatterns []string `toml:"exclude_patterns"`
	} `toml:"input"`

	Output struct {
		Format      string `toml:"format"`
		ShowDetails *bool  `toml:"show_details"`
	} `toml:"output"`

	Check struct {
		RequireSummary *bool `toml:"require_summary"`
	} `toml:"check"`

	Performance struct {
		MaxGoroutines  int  `toml:"max_goroutines"`
		TimeoutSeconds *int `toml:"timeout_seconds"`
	} `toml:"performance"`
}

// TomlConfigLoader discovers and loads TOML configuration
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML config loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig searches upwards from startDir, trying .pydocscan.toml before
// pyproject.toml. Without either file the defaults are returned.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	if startDir == "" {
		startDir = "."
	}
	if info, err := os.Stat(startDir); err == nil && !info.IsDir() {
		startDir = filepath.Dir(startDir)
	}

	if path, err := findUpwards(startDir, ProjectConfigFile); err == nil {
		return l.loadFromFile(path)
	}
	if path, err := findPyprojectToml(startDir); err == nil {
		return loadFromPyproject(path)
	}
	return DefaultConfig(), nil
}

// FindConfigFile returns the configuration file LoadConfig would use, or
// an empty string.
func (l *TomlConfigLoader) FindConfigFile(startDir string) string {
	if path, err := findUpwards(startDir, ProjectConfigFile); err == nil {
		return path
	}
	if path, err := findPyprojectToml(startDir); err == nil {
		return path
	}
	return ""
}

func (l *TomlConfigLoader) loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var tomlCfg PydocscanTomlConfig
	if err := toml.Unmarshal(data, &tomlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	mergeTomlConfig(cfg, &tomlCfg)
	return cfg, nil
}

// mergeTomlConfig copies every value set in src over dst.
func mergeTomlConfig(dst *Config, src *PydocscanTomlConfig) {
	if src.Parser.Dedent != nil {
		dst.Parser.Dedent = *src.Parser.Dedent
	}
	if src.Parser.MaxItems != nil {
		dst.Parser.MaxItems = *src.Parser.MaxItems
	}

	if src.Input.Recursive != nil {
		dst.Input.Recursive = *src.Input.Recursive
	}
	if len(src.Input.IncludePatterns) > 0 {
		dst.Input.IncludePatterns = src.Input.IncludePatterns
	}
	if src.Input.ExcludePatterns != nil {
		dst.Input.ExcludePatterns = src.Input.ExcludePatterns
	}

	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.ShowDetails != nil {
		dst.Output.ShowDetails = *src.Output.ShowDetails
	}

	if src.Check.RequireSummary != nil {
		dst.Check.RequireSummary = *src.Check.RequireSummary
	}

	if src.Performance.MaxGoroutines > 0 {
		dst.Performance.MaxGoroutines = src.Performance.MaxGoroutines
	}
	if src.Performance.TimeoutSeconds != nil {
		dst.Performance.TimeoutSeconds = *src.Performance.TimeoutSeconds
	}
}

// findUpwards walks from startDir to the filesystem root looking for name.
func findUpwards(startDir, name string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
