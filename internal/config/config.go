package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/pydocscan/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Parser holds docstring parser options
	Parser ParserConfig `mapstructure:"parser" yaml:"parser" toml:"parser"`

	// Input holds file collection options
	Input InputConfig `mapstructure:"input" yaml:"input" toml:"input"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Check holds the rules applied by the check command
	Check CheckConfig `mapstructure:"check" yaml:"check" toml:"check"`

	// Performance holds concurrency limits
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance" toml:"performance"`
}

// ParserConfig holds docstring parser options
type ParserConfig struct {
	// Dedent strips indentation copied along with the docstring from source
	Dedent bool `mapstructure:"dedent" yaml:"dedent" toml:"dedent"`

	// MaxItems bounds the chart size per docstring, 0 means unbounded
	MaxItems int `mapstructure:"max_items" yaml:"max_items" toml:"max_items"`
}

// InputConfig holds file collection options
type InputConfig struct {
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// ShowDetails prints every parsed section in text output
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details" toml:"show_details"`
}

// CheckConfig holds the rules applied by the check command
type CheckConfig struct {
	RequireSummary bool `mapstructure:"require_summary" yaml:"require_summary" toml:"require_summary"`
}

// PerformanceConfig holds concurrency limits
type PerformanceConfig struct {
	MaxGoroutines  int `mapstructure:"max_goroutines" yaml:"max_goroutines" toml:"max_goroutines"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Dedent:   domain.DefaultDedent,
			MaxItems: domain.DefaultMaxItems,
		},
		Input: InputConfig{
			Recursive:       true,
			IncludePatterns: domain.DefaultIncludePatterns(),
			ExcludePatterns: domain.DefaultExcludePatterns(),
		},
		Output: OutputConfig{
			Format: string(domain.OutputFormatText),
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  domain.DefaultMaxGoroutines,
			TimeoutSeconds: domain.DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from any file format viper understands
// (TOML, YAML, JSON). An empty path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	// Keys under [tool.pydocscan] are accepted so a pyproject.toml can be
	// passed explicitly.
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if sub := v.Sub("tool.pydocscan"); sub != nil {
		v = sub
	}

	setDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigWithTarget resolves configuration for a run: an explicit path
// wins, otherwise .pydocscan.toml or pyproject.toml is searched from the
// target upwards.
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}

	config, err := NewTomlConfigLoader().LoadConfig(targetPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("parser.dedent", d.Parser.Dedent)
	v.SetDefault("parser.max_items", d.Parser.MaxItems)
	v.SetDefault("input.recursive", d.Input.Recursive)
	v.SetDefault("input.include_patterns", d.Input.IncludePatterns)
	v.SetDefault("input.exclude_patterns", d.Input.ExcludePatterns)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.show_details", d.Output.ShowDetails)
	v.SetDefault("check.require_summary", d.Check.RequireSummary)
	v.SetDefault("performance.max_goroutines", d.Performance.MaxGoroutines)
	v.SetDefault("performance.timeout_seconds", d.Performance.TimeoutSeconds)
}

var validFormats = map[string]bool{
	string(domain.OutputFormatText): true,
	string(domain.OutputFormatJSON): true,
	string(domain.OutputFormatYAML): true,
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Parser.MaxItems < 0 {
		return fmt.Errorf("parser.max_items must be >= 0, got %d", c.Parser.MaxItems)
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	if len(c.Input.IncludePatterns) == 0 {
		return fmt.Errorf("input.include_patterns cannot be empty")
	}
	for _, pattern := range append(append([]string{}, c.Input.IncludePatterns...), c.Input.ExcludePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern '%s'", pattern)
		}
	}

	if c.Performance.MaxGoroutines < 1 {
		return fmt.Errorf("performance.max_goroutines must be >= 1, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// ToRequest converts the configuration into a parse request
func (c *Config) ToRequest() *domain.ParseRequest {
	return &domain.ParseRequest{
		OutputFormat:    domain.OutputFormat(strings.ToLower(c.Output.Format)),
		ShowDetails:     c.Output.ShowDetails,
		Dedent:          c.Parser.Dedent,
		MaxItems:        c.Parser.MaxItems,
		RequireSummary:  c.Check.RequireSummary,
		Recursive:       c.Input.Recursive,
		IncludePatterns: append([]string(nil), c.Input.IncludePatterns...),
		ExcludePatterns: append([]string(nil), c.Input.ExcludePatterns...),
		MaxConcurrency:  c.Performance.MaxGoroutines,
		TimeoutSeconds:  c.Performance.TimeoutSeconds,
	}
}
