package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/pydocscan/domain"
)

// ParseUseCase orchestrates the parse workflow: validate the request, merge
// configuration, collect files, parse them and write the report.
type ParseUseCase struct {
	service      domain.DocstringService
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	reportWriter domain.ReportWriter
}

// NewParseUseCase creates a new parse use case
func NewParseUseCase(
	service domain.DocstringService,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
	configLoader domain.ConfigurationLoader,
	reportWriter domain.ReportWriter,
) *ParseUseCase {
	return &ParseUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		reportWriter: reportWriter,
	}
}

// Execute runs the workflow and returns the response that was written.
func (uc *ParseUseCase) Execute(ctx context.Context, req domain.ParseRequest) (*domain.ParseResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	finalReq, err := loadAndMergeConfig(uc.configLoader, req)
	if err != nil {
		return nil, err
	}

	if d, ok := uc.formatter.(detailSetter); ok {
		d.SetShowDetails(finalReq.ShowDetails)
	}

	response, err := runParse(ctx, uc.service, uc.fileReader, finalReq)
	if err != nil {
		return nil, err
	}

	write := func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	}
	if uc.reportWriter != nil {
		err = uc.reportWriter.Write(finalReq.OutputWriter, finalReq.OutputPath, write)
	} else {
		err = write(finalReq.OutputWriter)
	}
	if err != nil {
		return nil, domain.NewOutputError("failed to write output", err)
	}

	return response, nil
}

// detailSetter is implemented by formatters whose text report can include
// the rendered docstring of every parsed file.
type detailSetter interface {
	SetShowDetails(show bool)
}

// runParse resolves the request paths and parses them.
func runParse(ctx context.Context, service domain.DocstringService, fileReader domain.FileReader, req domain.ParseRequest) (*domain.ParseResponse, error) {
	files, err := ResolveFilePaths(fileReader, req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no docstring files found in the specified paths", nil)
	}
	req.Paths = files

	response, err := service.Parse(ctx, req)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeParseError, "docstring parsing failed", err)
	}
	return response, nil
}

func validateRequest(req domain.ParseRequest) error {
	if len(req.Paths) == 0 {
		return domain.NewValidationError("no input paths specified")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewValidationError("output writer is required")
	}
	if req.MaxItems < 0 {
		return domain.NewValidationError("max items cannot be negative")
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, "":
	default:
		return domain.NewValidationError(fmt.Sprintf("unsupported output format: %s", req.OutputFormat))
	}
	return nil
}

// loadAndMergeConfig loads the configuration for the request's first path
// and overlays the request on it. Without a loader the request is used as
// is.
func loadAndMergeConfig(loader domain.ConfigurationLoader, req domain.ParseRequest) (domain.ParseRequest, error) {
	if loader == nil {
		return req, nil
	}

	target := "."
	if len(req.Paths) > 0 && req.Paths[0] != domain.StdinPath {
		target = req.Paths[0]
	}

	configReq, err := loader.LoadConfigForTarget(req.ConfigPath, target)
	if err != nil {
		return req, err
	}
	return *loader.MergeConfig(configReq, &req), nil
}

// ParseUseCaseBuilder provides a builder pattern for creating ParseUseCase
type ParseUseCaseBuilder struct {
	service      domain.DocstringService
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	reportWriter domain.ReportWriter
}

// NewParseUseCaseBuilder creates a new builder
func NewParseUseCaseBuilder() *ParseUseCaseBuilder {
	return &ParseUseCaseBuilder{}
}

func (b *ParseUseCaseBuilder) WithService(service domain.DocstringService) *ParseUseCaseBuilder {
	b.service = service
	return b
}

func (b *ParseUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *ParseUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

func (b *ParseUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *ParseUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader; it is optional.
func (b *ParseUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *ParseUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithReportWriter sets the report writer; it is optional.
func (b *ParseUseCaseBuilder) WithReportWriter(reportWriter domain.ReportWriter) *ParseUseCaseBuilder {
	b.reportWriter = reportWriter
	return b
}

// Build creates the ParseUseCase with the configured dependencies
func (b *ParseUseCaseBuilder) Build() (*ParseUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("docstring service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewParseUseCase(b.service, b.fileReader, b.formatter, b.configLoader, b.reportWriter), nil
}
