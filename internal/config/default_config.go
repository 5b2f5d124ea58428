package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/pydocscan/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package.
type DefaultConfigValues struct {
	Dedent          bool
	MaxItems        int
	IncludePatterns string
	ExcludePatterns string
	Format          string
	MaxGoroutines   int
	TimeoutSeconds  int
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		Dedent:          domain.DefaultDedent,
		MaxItems:        domain.DefaultMaxItems,
		IncludePatterns: tomlStringList(domain.DefaultIncludePatterns()),
		ExcludePatterns: tomlStringList(domain.DefaultExcludePatterns()),
		Format:          string(domain.OutputFormatText),
		MaxGoroutines:   domain.DefaultMaxGoroutines,
		TimeoutSeconds:  domain.DefaultTimeoutSeconds,
	}
}

func tomlStringList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template back into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	var tomlCfg PydocscanTomlConfig
	if err := toml.Unmarshal([]byte(configTOML), &tomlCfg); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	mergeTomlConfig(cfg, &tomlCfg)
	return cfg, nil
}
