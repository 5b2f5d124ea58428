package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pydocscan/domain"
)

func TestCheckUseCase_Execute(t *testing.T) {
	tests := []struct {
		name       string
		format     domain.OutputFormat
		response   *domain.ParseResponse
		wantIssues int
		wantOutput string
	}{
		{
			name:       "failures and issues are listed",
			format:     domain.OutputFormatText,
			response:   createCheckResponse(),
			wantIssues: 3,
			wantOutput: "docs/b.txt:2:1: syntax: unexpected token\n" +
				"docs/c.txt: io: permission denied\n" +
				"docs/d.txt: check: missing summary line\n",
		},
		{
			name:   "clean run prints nothing",
			format: domain.OutputFormatText,
			response: &domain.ParseResponse{
				Files:   []domain.FileResult{{FilePath: "docs/a.txt", Docstring: &domain.DocstringRecord{Summary: "A."}}},
				Summary: domain.ParseSummary{TotalFiles: 1, ParsedFiles: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockDocstringService{}
			reader := &MockFileReader{}
			formatter := &mockOutputFormatter{}

			reader.On("FileExists", "docs").Return(true, nil)
			service.On("Parse", mock.Anything, mock.Anything).Return(tt.response, nil)

			var out bytes.Buffer
			req := createValidParseRequest(&out)
			req.OutputFormat = tt.format

			result, err := NewCheckUseCase(service, reader, formatter, nil).Execute(context.Background(), req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantIssues, result.IssueCount)
			assert.Equal(t, tt.wantIssues == 0, result.Passed())
			assert.Equal(t, tt.wantOutput, out.String())
			formatter.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCheckUseCase_StructuredOutput(t *testing.T) {
	service := &mockDocstringService{}
	reader := &MockFileReader{}
	formatter := &mockOutputFormatter{}

	var out bytes.Buffer
	req := createValidParseRequest(&out)
	req.OutputFormat = domain.OutputFormatJSON
	response := createCheckResponse()

	reader.On("FileExists", "docs").Return(true, nil)
	service.On("Parse", mock.Anything, mock.Anything).Return(response, nil)
	formatter.On("Write", response, domain.OutputFormatJSON, &out).Return(nil)

	result, err := NewCheckUseCase(service, reader, formatter, nil).Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Same(t, response, result.Response)
	formatter.AssertExpectations(t)
}

func TestCheckUseCase_Errors(t *testing.T) {
	t.Run("invalid request", func(t *testing.T) {
		req := createValidParseRequest(nil)
		_, err := NewCheckUseCase(&mockDocstringService{}, &MockFileReader{}, &mockOutputFormatter{}, nil).
			Execute(context.Background(), req)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidInput))
	})

	t.Run("service error", func(t *testing.T) {
		service := &mockDocstringService{}
		reader := &MockFileReader{}
		reader.On("FileExists", "docs").Return(true, nil)
		service.On("Parse", mock.Anything, mock.Anything).Return(nil, context.Canceled)

		_, err := NewCheckUseCase(service, reader, &mockOutputFormatter{}, nil).
			Execute(context.Background(), createValidParseRequest(&bytes.Buffer{}))
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeParseError))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("write error", func(t *testing.T) {
		service := &mockDocstringService{}
		reader := &MockFileReader{}
		reader.On("FileExists", "docs").Return(true, nil)
		service.On("Parse", mock.Anything, mock.Anything).Return(createCheckResponse(), nil)

		req := createValidParseRequest(failingWriter{})
		_, err := NewCheckUseCase(service, reader, &mockOutputFormatter{}, nil).Execute(context.Background(), req)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeOutputError))
	})
}

func TestCheckUseCaseBuilder(t *testing.T) {
	_, err := NewCheckUseCaseBuilder().WithFileReader(&MockFileReader{}).Build()
	assert.EqualError(t, err, "docstring service is required")

	useCase, err := NewCheckUseCaseBuilder().
		WithService(&mockDocstringService{}).
		WithFileReader(&MockFileReader{}).
		WithFormatter(&mockOutputFormatter{}).
		WithConfigLoader(&mockConfigurationLoader{}).
		Build()
	require.NoError(t, err)
	assert.NotNil(t, useCase)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func createCheckResponse() *domain.ParseResponse {
	return &domain.ParseResponse{
		Files: []domain.FileResult{
			{FilePath: "docs/a.txt", Docstring: &domain.DocstringRecord{Summary: "A."}},
			{FilePath: "docs/b.txt", Failure: &domain.ParseFailure{Kind: domain.FailureSyntax, Message: "unexpected token", Line: 2, Column: 1}},
			{FilePath: "docs/c.txt", Failure: &domain.ParseFailure{Kind: domain.FailureIO, Message: "permission denied"}},
			{FilePath: "docs/d.txt", Docstring: &domain.DocstringRecord{}, Issues: []string{"missing summary line"}},
		},
		Summary: domain.ParseSummary{TotalFiles: 4, ParsedFiles: 2, FailedFiles: 2, IssueCount: 3},
	}
}
