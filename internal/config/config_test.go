package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pydocscan/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Parser.Dedent)
	assert.Equal(t, domain.DefaultMaxItems, cfg.Parser.MaxItems)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "settings.toml",
			content: `[output]
format = "json"
[parser]
max_items = 5000
[input]
include_patterns = ["docs/**/*.txt"]
`,
		},
		{
			name: "yaml",
			file: "settings.yaml",
			content: `output:
  format: json
parser:
  max_items: 5000
input:
  include_patterns:
    - docs/**/*.txt
`,
		},
		{
			name:    "json",
			file:    "settings.json",
			content: `{"output": {"format": "json"}, "parser": {"max_items": 5000}, "input": {"include_patterns": ["docs/**/*.txt"]}}`,
		},
		{
			name: "pyproject",
			file: "pyproject.toml",
			content: `[project]
name = "demo"

[tool.pydocscan.output]
format = "json"
[tool.pydocscan.parser]
max_items = 5000
[tool.pydocscan.input]
include_patterns = ["docs/**/*.txt"]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			cfg, err := LoadConfig(path)
			require.NoError(t, err)

			assert.Equal(t, "json", cfg.Output.Format)
			assert.Equal(t, 5000, cfg.Parser.MaxItems)
			assert.Equal(t, []string{"docs/**/*.txt"}, cfg.Input.IncludePatterns)
			// Unset keys keep their defaults.
			assert.True(t, cfg.Parser.Dedent)
			assert.Equal(t, domain.DefaultMaxGoroutines, cfg.Performance.MaxGoroutines)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	path := writeFile(t, dir, "bad.toml", "[output]\nformat = \"html\"\n")
	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output.format")

	path = writeFile(t, dir, "pattern.toml", "[input]\ninclude_patterns = [\"[\"]\n")
	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		msg    string
	}{
		{"negative max items", func(c *Config) { c.Parser.MaxItems = -1 }, "parser.max_items"},
		{"empty include", func(c *Config) { c.Input.IncludePatterns = nil }, "include_patterns cannot be empty"},
		{"no goroutines", func(c *Config) { c.Performance.MaxGoroutines = 0 }, "max_goroutines"},
		{"negative timeout", func(c *Config) { c.Performance.TimeoutSeconds = -5 }, "timeout_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestTomlConfigLoaderDiscovery(t *testing.T) {
	t.Run("project file found from nested directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, ProjectConfigFile, "[check]\nrequire_summary = true\n[performance]\nmax_goroutines = 2\n")
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		cfg, err := NewTomlConfigLoader().LoadConfig(nested)
		require.NoError(t, err)
		assert.True(t, cfg.Check.RequireSummary)
		assert.Equal(t, 2, cfg.Performance.MaxGoroutines)
	})

	t.Run("project file wins over pyproject", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, ProjectConfigFile, "[output]\nformat = \"yaml\"\n")
		writeFile(t, root, "pyproject.toml", "[tool.pydocscan.output]\nformat = \"json\"\n")

		loader := NewTomlConfigLoader()
		cfg, err := loader.LoadConfig(root)
		require.NoError(t, err)
		assert.Equal(t, "yaml", cfg.Output.Format)
		assert.Equal(t, filepath.Join(root, ProjectConfigFile), loader.FindConfigFile(root))
	})

	t.Run("pyproject without table is ignored", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "pyproject.toml", "[project]\nname = \"demo\"\n")

		cfg, err := NewTomlConfigLoader().LoadConfig(root)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file target uses its directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, ProjectConfigFile, "[parser]\ndedent = false\n")
		target := writeFile(t, root, "doc.txt", "Summary.")

		cfg, err := LoadConfigWithTarget("", target)
		require.NoError(t, err)
		assert.False(t, cfg.Parser.Dedent)
	})

	t.Run("invalid discovered file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, ProjectConfigFile, "[output]\nformat = \"csv\"\n")
		_, err := LoadConfigWithTarget("", root)
		assert.Error(t, err)
	})
}

func TestDefaultConfigTemplate(t *testing.T) {
	rendered, err := GenerateDefaultConfigTOML()
	require.NoError(t, err)
	assert.Contains(t, rendered, "[parser]")
	assert.Contains(t, rendered, `"**/*.docstring"`)

	cfg, err := LoadDefaultConfigFromTOML()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestMerge(t *testing.T) {
	flags := map[string]bool{"format": true, "include": true, "exclude": true}

	assert.Equal(t, "json", Merge("text", "json", "format", flags))
	assert.Equal(t, 4, Merge(4, 8, "jobs", flags))
	assert.Equal(t, false, Merge(false, true, "dedent", nil))
	assert.Equal(t, []string{"*.txt"}, MergeStringSlice([]string{"**/*"}, []string{"*.txt"}, "include", flags))
	assert.Equal(t, []string{"**/*"}, MergeStringSlice([]string{"**/*"}, nil, "exclude", flags))
}

func TestFlagTracker(t *testing.T) {
	ft := NewFlagTrackerWithFlags(map[string]bool{"format": true})
	ft.Set("max-items")
	assert.True(t, ft.WasSet("format"))
	assert.True(t, ft.WasSet("max-items"))
	assert.False(t, ft.WasSet("details"))

	all := ft.GetAll()
	assert.Equal(t, map[string]bool{"format": true, "max-items": true}, all)
	all["details"] = true
	assert.False(t, ft.WasSet("details"), "GetAll returns a copy")
}
