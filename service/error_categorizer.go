package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/pydocscan/domain"
)

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// Patterns are tried in order; the first category with a matching pattern
// wins.
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"timed out",
			"deadline",
			"context canceled",
			"cancelled",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"toml",
			"invalid glob pattern",
			"max_items",
			"max_goroutines",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no docstring files",
			"file not found",
			"cannot access",
			"permission denied",
			"stdin",
			"no such file",
		}},
		{domain.ErrorCategoryOutput, []string{
			"output",
			"unsupported format",
			"failed to write",
			"cannot create",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"syntax error",
			"lexical error",
			"chart exceeded",
			"grammar",
			"check",
		}},
	}
}

// Categorize determines the category of an error. Domain error codes are
// consulted before message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := ec.categoryFromCode(err)
	if category == "" {
		errMsg := strings.ToLower(err.Error())
		for _, cp := range ec.patterns {
			if containsAnyPattern(errMsg, cp.patterns) {
				category = cp.category
				break
			}
		}
	}
	if category == "" {
		return &domain.CategorizedError{
			Category: domain.ErrorCategoryUnknown,
			Message:  err.Error(),
			Original: err,
		}
	}

	return &domain.CategorizedError{
		Category: category,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categoryFromCode(err error) domain.ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrorCategoryTimeout
	}

	var de domain.DomainError
	if !errors.As(err, &de) {
		return ""
	}
	switch de.Code {
	case domain.ErrCodeInvalidInput, domain.ErrCodeFileNotFound:
		return domain.ErrorCategoryInput
	case domain.ErrCodeConfigError:
		return domain.ErrorCategoryConfig
	case domain.ErrCodeOutputError, domain.ErrCodeUnsupportedFormat:
		return domain.ErrorCategoryOutput
	case domain.ErrCodeParseError, domain.ErrCodeCheckError:
		return domain.ErrorCategoryProcessing
	}
	return ""
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the paths exist and contain .txt or .docstring files",
			"Use --include to select files with other extensions",
			"Pass - to read a single docstring from stdin",
		},
		domain.ErrorCategoryConfig: {
			"Verify the values in .pydocscan.toml or [tool.pydocscan] in pyproject.toml",
			"Try: pydocscan init to generate a valid config file",
		},
		domain.ErrorCategoryTimeout: {
			"Increase performance.timeout_seconds or pass --timeout",
			"Lower parser.max_items to fail fast on pathological docstrings",
		},
		domain.ErrorCategoryOutput: {
			"Use --format text, json or yaml",
			"Ensure the output directory is writable",
		},
		domain.ErrorCategoryProcessing: {
			"Run pydocscan parse on the file for the failing line and column",
			"Check that section headers are a keyword followed by a colon",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input files or directories",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Parsing timed out or was cancelled",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while parsing docstrings",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
