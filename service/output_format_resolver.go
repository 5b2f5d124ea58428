package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/pydocscan/domain"
)

// OutputFormatResolver picks the report format from CLI input.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine resolves the format. An explicit --format wins; otherwise the
// extension of the output path decides (.json, .yaml, .yml); otherwise the
// configured fallback is used.
func (r *OutputFormatResolver) Determine(flagValue, outputPath string, fallback domain.OutputFormat) (domain.OutputFormat, error) {
	if flagValue != "" {
		return parseOutputFormat(flagValue)
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".json":
		return domain.OutputFormatJSON, nil
	case ".yaml", ".yml":
		return domain.OutputFormatYAML, nil
	}

	if fallback == "" {
		return domain.OutputFormatText, nil
	}
	return parseOutputFormat(string(fallback))
}

func parseOutputFormat(value string) (domain.OutputFormat, error) {
	switch format := domain.OutputFormat(strings.ToLower(strings.TrimSpace(value))); format {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml): %w",
			value, domain.NewUnsupportedFormatError(value))
	}
}
