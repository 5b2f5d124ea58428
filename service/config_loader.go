package service

import (
	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path. An empty path
// discovers a configuration file from the working directory.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ParseRequest, error) {
	return c.LoadConfigForTarget(path, ".")
}

// LoadConfigForTarget loads an explicit configuration file or, when path is
// empty, the one discovered from target upwards.
func (c *ConfigurationLoaderImpl) LoadConfigForTarget(path, target string) (*domain.ParseRequest, error) {
	cfg, err := config.LoadConfigWithTarget(path, target)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	req := cfg.ToRequest()
	req.ConfigPath = path
	if path == "" {
		req.ConfigPath = config.NewTomlConfigLoader().FindConfigFile(target)
	}
	return req, nil
}

// LoadDefaultConfig returns the built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.ParseRequest {
	return config.DefaultConfig().ToRequest()
}

// MergeConfig overlays the request built from CLI flags onto the file
// configuration. Paths, writers and input always come from the override;
// settings only when their flag was set explicitly.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.ParseRequest, override *domain.ParseRequest) *domain.ParseRequest {
	merged := *base
	flags := override.ExplicitFlags

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.Input != nil {
		merged.Input = override.Input
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	merged.OutputFormat = config.Merge(base.OutputFormat, override.OutputFormat, "format", flags)
	merged.ShowDetails = config.Merge(base.ShowDetails, override.ShowDetails, "details", flags)
	merged.Dedent = config.Merge(base.Dedent, override.Dedent, "dedent", flags)
	merged.MaxItems = config.Merge(base.MaxItems, override.MaxItems, "max-items", flags)
	merged.RequireSummary = config.Merge(base.RequireSummary, override.RequireSummary, "require-summary", flags)
	merged.Recursive = config.Merge(base.Recursive, override.Recursive, "recursive", flags)
	merged.IncludePatterns = config.MergeStringSlice(base.IncludePatterns, override.IncludePatterns, "include", flags)
	merged.ExcludePatterns = config.MergeStringSlice(base.ExcludePatterns, override.ExcludePatterns, "exclude", flags)
	merged.MaxConcurrency = config.Merge(base.MaxConcurrency, override.MaxConcurrency, "jobs", flags)
	merged.TimeoutSeconds = config.Merge(base.TimeoutSeconds, override.TimeoutSeconds, "timeout", flags)
	merged.ExplicitFlags = flags

	return &merged
}
