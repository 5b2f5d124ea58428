package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseRequest represents a request to parse docstring files
type ParseRequest struct {
	// Input files or directories. "-" reads a single docstring from Input.
	Paths []string
	Input io.Reader

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	ShowDetails  bool

	// Parser options
	Dedent   bool
	MaxItems int

	// Check options
	RequireSummary bool

	// Configuration
	ConfigPath string

	// ExplicitFlags records the CLI flags the user set, so that only those
	// override configuration file values.
	ExplicitFlags map[string]bool

	// Collection options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Performance
	MaxConcurrency int
	TimeoutSeconds int
}

// StdinPath is the path that selects standard input.
const StdinPath = "-"

// ArgRecord is the serializable form of a documented argument
type ArgRecord struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// ResultRecord is the serializable form of a Returns or Yields section
type ResultRecord struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// RaiseRecord is the serializable form of a documented exception
type RaiseRecord struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// DocstringRecord is the parsed docstring as it appears in reports
type DocstringRecord struct {
	Summary     string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Args        []ArgRecord   `json:"args,omitempty" yaml:"args,omitempty"`
	Returns     *ResultRecord `json:"returns,omitempty" yaml:"returns,omitempty"`
	Yields      *ResultRecord `json:"yields,omitempty" yaml:"yields,omitempty"`
	Raises      []RaiseRecord `json:"raises,omitempty" yaml:"raises,omitempty"`
	Alias       string        `json:"alias,omitempty" yaml:"alias,omitempty"`
	Examples    string        `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// FailureKind classifies why a file could not be parsed
type FailureKind string

const (
	FailureLexical   FailureKind = "lexical"
	FailureSyntax    FailureKind = "syntax"
	FailureBudget    FailureKind = "budget"
	FailureInvalid   FailureKind = "invalid"
	FailureIO        FailureKind = "io"
	FailureCancelled FailureKind = "cancelled"
	FailureInternal  FailureKind = "internal"
)

// ParseFailure describes a docstring that did not parse
type ParseFailure struct {
	Kind     FailureKind `json:"kind" yaml:"kind"`
	Message  string      `json:"message" yaml:"message"`
	Line     int         `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int         `json:"column,omitempty" yaml:"column,omitempty"`
	Expected []string    `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// FileResult is the outcome for a single input
type FileResult struct {
	FilePath  string           `json:"file_path" yaml:"file_path"`
	Docstring *DocstringRecord `json:"docstring,omitempty" yaml:"docstring,omitempty"`
	Failure   *ParseFailure    `json:"failure,omitempty" yaml:"failure,omitempty"`

	// Issues lists check findings for a successfully parsed docstring.
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// OK reports whether the file parsed and has no check findings.
func (r FileResult) OK() bool {
	return r.Failure == nil && len(r.Issues) == 0
}

// ParseSummary represents aggregate statistics
type ParseSummary struct {
	TotalFiles  int `json:"total_files" yaml:"total_files"`
	ParsedFiles int `json:"parsed_files" yaml:"parsed_files"`
	FailedFiles int `json:"failed_files" yaml:"failed_files"`
	IssueCount  int `json:"issue_count" yaml:"issue_count"`

	// SectionCounts counts parsed docstrings per present section.
	SectionCounts map[string]int `json:"section_counts" yaml:"section_counts"`
}

// ParseResponse represents the complete parse result
type ParseResponse struct {
	RunID   string       `json:"run_id" yaml:"run_id"`
	Files   []FileResult `json:"files" yaml:"files"`
	Summary ParseSummary `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// DocstringService defines the core business logic for parsing docstring files
type DocstringService interface {
	// Parse parses every file selected by the request
	Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error)

	// ParseText parses an in-memory docstring body
	ParseText(ctx context.Context, name, text string, req ParseRequest) FileResult
}

// FileReader defines the interface for reading and collecting docstring files
type FileReader interface {
	// CollectDocstringFiles finds all docstring files in the given paths
	CollectDocstringFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting parse results
type OutputFormatter interface {
	// Format formats the response according to the specified format
	Format(response *ParseResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *ParseResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*ParseRequest, error)

	// LoadConfigForTarget loads path, or when it is empty the configuration
	// discovered from target upwards
	LoadConfigForTarget(path, target string) (*ParseRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *ParseRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *ParseRequest, override *ParseRequest) *ParseRequest
}
