package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/pydocscan/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	var b strings.Builder
	if err := WriteYAML(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

const (
	HeaderWidth    = 40
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes
const (
	ColorReset = "\x1b[0m"
	ColorRed   = "\x1b[31m"
	ColorGreen = "\x1b[32m"
	ColorBold  = "\x1b[1m"
)

// FormatUtils provides shared formatting for text reports
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates format utilities; color enables ANSI escapes.
func NewFormatUtils(color bool) *FormatUtils {
	return &FormatUtils{color: color}
}

func (f *FormatUtils) paint(code, s string) string {
	if !f.color {
		return s
	}
	return code + s + ColorReset
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	return f.paint(ColorBold, title) + "\n" + strings.Repeat("=", HeaderWidth) + "\n\n"
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	return strings.ToUpper(title) + "\n" + strings.Repeat("-", len(title)) + "\n"
}

func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatStatus renders a pass/fail marker.
func (f *FormatUtils) FormatStatus(ok bool) string {
	if ok {
		return f.paint(ColorGreen, "OK  ")
	}
	return f.paint(ColorRed, "FAIL")
}

// FormatListSection renders a titled list, or nothing when items is empty.
func (f *FormatUtils) FormatListSection(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader(title))
	for _, item := range items {
		builder.WriteString(strings.Repeat(" ", SectionPadding) + "- " + item + "\n")
	}
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// IndentBlock prefixes every non-empty line of text with n spaces.
func IndentBlock(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
