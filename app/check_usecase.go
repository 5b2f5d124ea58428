package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/pydocscan/domain"
)

// CheckResult is the outcome of a check run.
type CheckResult struct {
	Response   *domain.ParseResponse
	IssueCount int
}

// Passed reports whether no file failed to parse and no check fired.
func (r *CheckResult) Passed() bool { return r.IssueCount == 0 }

// CheckUseCase parses docstring files and reports every file that does not
// parse, along with check findings such as a missing summary. Text output
// is one line per finding; json and yaml write the full response.
type CheckUseCase struct {
	service      domain.DocstringService
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(
	service domain.DocstringService,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
	configLoader domain.ConfigurationLoader,
) *CheckUseCase {
	return &CheckUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute runs the check. Findings are not errors: the caller inspects the
// returned result. An error means the check itself could not run.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.ParseRequest) (*CheckResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	finalReq, err := loadAndMergeConfig(uc.configLoader, req)
	if err != nil {
		return nil, err
	}

	response, err := runParse(ctx, uc.service, uc.fileReader, finalReq)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Response: response, IssueCount: response.Summary.IssueCount}

	if finalReq.OutputWriter != nil {
		if err := uc.writeFindings(finalReq, response); err != nil {
			return nil, domain.NewOutputError("failed to write check results", err)
		}
	}
	return result, nil
}

func (uc *CheckUseCase) writeFindings(req domain.ParseRequest, response *domain.ParseResponse) error {
	switch req.OutputFormat {
	case domain.OutputFormatJSON, domain.OutputFormatYAML:
		return uc.formatter.Write(response, req.OutputFormat, req.OutputWriter)
	}
	return WriteFindings(req.OutputWriter, response)
}

// WriteFindings writes one line per finding in the compiler-style
// "path:line:column: kind: message" form.
func WriteFindings(w io.Writer, response *domain.ParseResponse) error {
	for _, file := range response.Files {
		if f := file.Failure; f != nil {
			var err error
			if f.Line > 0 {
				_, err = fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", file.FilePath, f.Line, f.Column, f.Kind, f.Message)
			} else {
				_, err = fmt.Fprintf(w, "%s: %s: %s\n", file.FilePath, f.Kind, f.Message)
			}
			if err != nil {
				return err
			}
			continue
		}
		for _, issue := range file.Issues {
			if _, err := fmt.Fprintf(w, "%s: check: %s\n", file.FilePath, issue); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckUseCaseBuilder provides a builder pattern for creating CheckUseCase
type CheckUseCaseBuilder struct {
	service      domain.DocstringService
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
}

// NewCheckUseCaseBuilder creates a new builder
func NewCheckUseCaseBuilder() *CheckUseCaseBuilder {
	return &CheckUseCaseBuilder{}
}

func (b *CheckUseCaseBuilder) WithService(service domain.DocstringService) *CheckUseCaseBuilder {
	b.service = service
	return b
}

func (b *CheckUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *CheckUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

func (b *CheckUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *CheckUseCaseBuilder {
	b.formatter = formatter
	return b
}

func (b *CheckUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *CheckUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// Build creates the CheckUseCase with the configured dependencies
func (b *CheckUseCaseBuilder) Build() (*CheckUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("docstring service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewCheckUseCase(b.service, b.fileReader, b.formatter, b.configLoader), nil
}
