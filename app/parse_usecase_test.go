package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pydocscan/domain"
)

type mockDocstringService struct {
	mock.Mock
}

func (m *mockDocstringService) Parse(ctx context.Context, req domain.ParseRequest) (*domain.ParseResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResponse), args.Error(1)
}

func (m *mockDocstringService) ParseText(ctx context.Context, name, text string, req domain.ParseRequest) domain.FileResult {
	args := m.Called(ctx, name, text, req)
	return args.Get(0).(domain.FileResult)
}

type mockOutputFormatter struct {
	mock.Mock
}

func (m *mockOutputFormatter) Format(response *domain.ParseResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockOutputFormatter) Write(response *domain.ParseResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockConfigurationLoader struct {
	mock.Mock
}

func (m *mockConfigurationLoader) LoadConfig(path string) (*domain.ParseRequest, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseRequest), args.Error(1)
}

func (m *mockConfigurationLoader) LoadConfigForTarget(path, target string) (*domain.ParseRequest, error) {
	args := m.Called(path, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseRequest), args.Error(1)
}

func (m *mockConfigurationLoader) LoadDefaultConfig() *domain.ParseRequest {
	args := m.Called()
	return args.Get(0).(*domain.ParseRequest)
}

func (m *mockConfigurationLoader) MergeConfig(base *domain.ParseRequest, override *domain.ParseRequest) *domain.ParseRequest {
	args := m.Called(base, override)
	return args.Get(0).(*domain.ParseRequest)
}

type mockReportWriter struct {
	mock.Mock
}

func (m *mockReportWriter) Write(writer io.Writer, outputPath string, writeFunc func(io.Writer) error) error {
	args := m.Called(writer, outputPath, writeFunc)
	if err := args.Error(0); err != nil {
		return err
	}
	return writeFunc(writer)
}

func createValidParseRequest(w io.Writer) domain.ParseRequest {
	return domain.ParseRequest{
		Paths:           []string{"docs"},
		OutputWriter:    w,
		OutputFormat:    domain.OutputFormatText,
		Dedent:          true,
		MaxItems:        domain.DefaultMaxItems,
		Recursive:       true,
		IncludePatterns: []string{"**/*.txt"},
	}
}

func createParseResponse() *domain.ParseResponse {
	return &domain.ParseResponse{
		RunID: "run",
		Files: []domain.FileResult{
			{FilePath: "docs/a.txt", Docstring: &domain.DocstringRecord{Summary: "A."}},
			{FilePath: "docs/b.txt", Failure: &domain.ParseFailure{Kind: domain.FailureSyntax, Message: "unexpected token", Line: 2, Column: 1}},
		},
		Summary: domain.ParseSummary{TotalFiles: 2, ParsedFiles: 1, FailedFiles: 1, IssueCount: 1},
	}
}

func withPaths(paths ...string) interface{} {
	return mock.MatchedBy(func(req domain.ParseRequest) bool {
		return assert.ObjectsAreEqual(paths, req.Paths)
	})
}

func TestParseUseCase_Execute(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*mockDocstringService, *MockFileReader, *mockOutputFormatter)
		modify      func(*domain.ParseRequest)
		expectError bool
		errorCode   string
	}{
		{
			name: "successful parse",
			setupMocks: func(service *mockDocstringService, reader *MockFileReader, formatter *mockOutputFormatter) {
				reader.On("FileExists", "docs").Return(false, nil)
				reader.On("CollectDocstringFiles", []string{"docs"}, true, []string{"**/*.txt"}, []string(nil)).
					Return([]string{"docs/a.txt", "docs/b.txt"}, nil)
				service.On("Parse", mock.Anything, withPaths("docs/a.txt", "docs/b.txt")).
					Return(createParseResponse(), nil)
				formatter.On("Write", mock.Anything, domain.OutputFormatText, mock.Anything).Return(nil)
			},
		},
		{
			name:        "no paths",
			setupMocks:  func(*mockDocstringService, *MockFileReader, *mockOutputFormatter) {},
			modify:      func(req *domain.ParseRequest) { req.Paths = nil },
			expectError: true,
			errorCode:   domain.ErrCodeInvalidInput,
		},
		{
			name:        "negative max items",
			setupMocks:  func(*mockDocstringService, *MockFileReader, *mockOutputFormatter) {},
			modify:      func(req *domain.ParseRequest) { req.MaxItems = -1 },
			expectError: true,
			errorCode:   domain.ErrCodeInvalidInput,
		},
		{
			name:        "unknown format",
			setupMocks:  func(*mockDocstringService, *MockFileReader, *mockOutputFormatter) {},
			modify:      func(req *domain.ParseRequest) { req.OutputFormat = "html" },
			expectError: true,
			errorCode:   domain.ErrCodeInvalidInput,
		},
		{
			name: "nothing collected",
			setupMocks: func(service *mockDocstringService, reader *MockFileReader, formatter *mockOutputFormatter) {
				reader.On("FileExists", "docs").Return(false, nil)
				reader.On("CollectDocstringFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return([]string{}, nil)
			},
			expectError: true,
			errorCode:   domain.ErrCodeInvalidInput,
		},
		{
			name: "service failure",
			setupMocks: func(service *mockDocstringService, reader *MockFileReader, formatter *mockOutputFormatter) {
				reader.On("FileExists", "docs").Return(true, nil)
				service.On("Parse", mock.Anything, mock.Anything).Return(nil, errors.New("parallel execution cancelled"))
			},
			expectError: true,
			errorCode:   domain.ErrCodeParseError,
		},
		{
			name: "formatter failure",
			setupMocks: func(service *mockDocstringService, reader *MockFileReader, formatter *mockOutputFormatter) {
				reader.On("FileExists", "docs").Return(true, nil)
				service.On("Parse", mock.Anything, mock.Anything).Return(createParseResponse(), nil)
				formatter.On("Write", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))
			},
			expectError: true,
			errorCode:   domain.ErrCodeOutputError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockDocstringService{}
			reader := &MockFileReader{}
			formatter := &mockOutputFormatter{}
			tt.setupMocks(service, reader, formatter)

			useCase := NewParseUseCase(service, reader, formatter, nil, nil)
			req := createValidParseRequest(&bytes.Buffer{})
			if tt.modify != nil {
				tt.modify(&req)
			}

			response, err := useCase.Execute(context.Background(), req)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, response)
				assert.True(t, domain.IsDomainError(err, tt.errorCode), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 2, response.Summary.TotalFiles)
			}
			service.AssertExpectations(t)
			reader.AssertExpectations(t)
			formatter.AssertExpectations(t)
		})
	}
}

func TestParseUseCase_ConfigMerge(t *testing.T) {
	service := &mockDocstringService{}
	reader := &MockFileReader{}
	formatter := &mockOutputFormatter{}
	loader := &mockConfigurationLoader{}

	var out bytes.Buffer
	req := createValidParseRequest(&out)
	req.ConfigPath = "custom.toml"

	fileConfig := &domain.ParseRequest{OutputFormat: domain.OutputFormatYAML, MaxItems: 99}
	merged := req
	merged.OutputFormat = domain.OutputFormatYAML
	merged.MaxItems = 99

	loader.On("LoadConfigForTarget", "custom.toml", "docs").Return(fileConfig, nil)
	loader.On("MergeConfig", fileConfig, mock.Anything).Return(&merged)
	reader.On("FileExists", "docs").Return(true, nil)
	service.On("Parse", mock.Anything, mock.MatchedBy(func(r domain.ParseRequest) bool {
		return r.MaxItems == 99
	})).Return(createParseResponse(), nil)
	formatter.On("Write", mock.Anything, domain.OutputFormatYAML, &out).Return(nil)

	useCase, err := NewParseUseCaseBuilder().
		WithService(service).
		WithFileReader(reader).
		WithFormatter(formatter).
		WithConfigLoader(loader).
		Build()
	require.NoError(t, err)

	_, err = useCase.Execute(context.Background(), req)
	require.NoError(t, err)

	loader.AssertExpectations(t)
	service.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestParseUseCase_ConfigError(t *testing.T) {
	loader := &mockConfigurationLoader{}
	loader.On("LoadConfigForTarget", "", ".").Return(nil, domain.NewConfigError("bad toml", nil))

	useCase := NewParseUseCase(&mockDocstringService{}, &MockFileReader{}, &mockOutputFormatter{}, loader, nil)
	req := createValidParseRequest(&bytes.Buffer{})
	req.Paths = []string{domain.StdinPath}

	_, err := useCase.Execute(context.Background(), req)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConfigError))
	loader.AssertExpectations(t)
}

func TestParseUseCase_ReportWriter(t *testing.T) {
	service := &mockDocstringService{}
	reader := &MockFileReader{}
	formatter := &mockOutputFormatter{}
	reportWriter := &mockReportWriter{}

	var out bytes.Buffer
	req := createValidParseRequest(&out)
	req.OutputPath = "report.json"
	req.OutputFormat = domain.OutputFormatJSON

	reader.On("FileExists", "docs").Return(true, nil)
	service.On("Parse", mock.Anything, mock.Anything).Return(createParseResponse(), nil)
	reportWriter.On("Write", &out, "report.json", mock.Anything).Return(nil)
	formatter.On("Write", mock.Anything, domain.OutputFormatJSON, &out).Return(nil)

	useCase := NewParseUseCase(service, reader, formatter, nil, reportWriter)
	_, err := useCase.Execute(context.Background(), req)

	require.NoError(t, err)
	reportWriter.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestParseUseCaseBuilder(t *testing.T) {
	_, err := NewParseUseCaseBuilder().Build()
	assert.EqualError(t, err, "docstring service is required")

	_, err = NewParseUseCaseBuilder().WithService(&mockDocstringService{}).Build()
	assert.EqualError(t, err, "file reader is required")

	_, err = NewParseUseCaseBuilder().
		WithService(&mockDocstringService{}).
		WithFileReader(&MockFileReader{}).
		Build()
	assert.EqualError(t, err, "output formatter is required")
}
