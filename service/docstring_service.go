package service

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/internal/docstring"
	"github.com/ludo-technologies/pydocscan/internal/version"
)

// StdinName is the file path reported for a docstring read from stdin.
const StdinName = "<stdin>"

// IssueMissingSummary is reported by check runs that require a summary.
const IssueMissingSummary = "missing summary line"

// DocstringServiceImpl implements the DocstringService interface
type DocstringServiceImpl struct {
	reader   domain.FileReader
	progress domain.ProgressManager
	log      *logrus.Entry
}

// NewDocstringService creates a docstring service. A nil progress manager
// disables progress output.
func NewDocstringService(reader domain.FileReader, progress domain.ProgressManager) *DocstringServiceImpl {
	if reader == nil {
		reader = NewFileReader()
	}
	if progress == nil {
		progress = NoOpProgressManager{}
	}
	return &DocstringServiceImpl{
		reader:   reader,
		progress: progress,
		log:      logrus.WithField("pkg", "service"),
	}
}

// newParser builds a parser for the request's options; MaxItems 0 means
// unbounded. The compiled grammar is shared process-wide.
func (s *DocstringServiceImpl) newParser(req domain.ParseRequest) (*docstring.Parser, error) {
	p, err := docstring.NewParser(
		docstring.WithDedent(req.Dedent),
		docstring.WithMaxItems(req.MaxItems),
		docstring.WithTrace(func(format string, args ...interface{}) {
			s.log.Debugf(format, args...)
		}),
	)
	if err != nil {
		return nil, domain.NewParseError("grammar", err)
	}
	return p, nil
}

// Parse parses every path in the request concurrently. The paths are
// expected to be files already; "-" alone reads one docstring from
// req.Input. Per-file failures are reported in the response, so an error
// is returned only when the run itself could not complete.
func (s *DocstringServiceImpl) Parse(ctx context.Context, req domain.ParseRequest) (*domain.ParseResponse, error) {
	runID := uuid.NewString()
	log := s.log.WithField("run_id", runID)

	p, err := s.newParser(req)
	if err != nil {
		return nil, err
	}

	var results []domain.FileResult
	if len(req.Paths) == 1 && req.Paths[0] == domain.StdinPath {
		result, err := s.parseStdin(ctx, p, req)
		if err != nil {
			return nil, err
		}
		results = []domain.FileResult{result}
	} else {
		results, err = s.parseFiles(ctx, p, req, log)
		if err != nil {
			return nil, err
		}
	}

	resp := &domain.ParseResponse{
		RunID:       runID,
		Files:       results,
		Summary:     summarize(results),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
	for _, r := range results {
		if r.Failure != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("[%s] %s", r.FilePath, r.Failure.Message))
		}
	}
	if len(results) == 0 {
		resp.Warnings = append(resp.Warnings, "no docstring files found")
	}

	log.WithFields(logrus.Fields{
		"files":  resp.Summary.TotalFiles,
		"failed": resp.Summary.FailedFiles,
		"issues": resp.Summary.IssueCount,
	}).Debug("parse run finished")
	return resp, nil
}

// ParseText parses an in-memory docstring body.
func (s *DocstringServiceImpl) ParseText(ctx context.Context, name, text string, req domain.ParseRequest) domain.FileResult {
	p, err := s.newParser(req)
	if err != nil {
		return domain.FileResult{FilePath: name, Failure: FailureFromError(err)}
	}
	return s.parseOne(ctx, p, name, text, req)
}

func (s *DocstringServiceImpl) parseStdin(ctx context.Context, p *docstring.Parser, req domain.ParseRequest) (domain.FileResult, error) {
	if req.Input == nil {
		return domain.FileResult{}, domain.NewInvalidInputError("no input reader for stdin", nil)
	}
	data, err := io.ReadAll(req.Input)
	if err != nil {
		return domain.FileResult{}, domain.NewInvalidInputError("failed to read stdin", err)
	}
	return s.parseOne(ctx, p, StdinName, string(data), req), nil
}

func (s *DocstringServiceImpl) parseFiles(ctx context.Context, p *docstring.Parser, req domain.ParseRequest, log *logrus.Entry) ([]domain.FileResult, error) {
	results := make([]domain.FileResult, len(req.Paths))
	if len(req.Paths) == 0 {
		return results, nil
	}

	executor := NewParallelExecutor()
	if req.MaxConcurrency > 0 {
		executor.SetMaxConcurrency(req.MaxConcurrency)
	}
	if req.TimeoutSeconds > 0 {
		executor.SetTimeout(time.Duration(req.TimeoutSeconds) * time.Second)
	}

	s.progress.Initialize(len(req.Paths))
	s.progress.Start()

	var done int32
	tasks := make([]domain.ExecutableTask, len(req.Paths))
	for i, path := range req.Paths {
		tasks[i] = NewSimpleTask(path, true, func(ctx context.Context) (interface{}, error) {
			results[i] = s.parseFile(ctx, p, path, req)
			s.progress.Update(int(atomic.AddInt32(&done, 1)), len(req.Paths))
			return nil, nil
		})
	}

	log.WithField("files", len(tasks)).Debug("parsing docstring files")
	if err := executor.Execute(ctx, tasks); err != nil {
		s.progress.Complete(false)
		return nil, fmt.Errorf("docstring parsing did not finish: %w", err)
	}
	s.progress.Complete(true)
	return results, nil
}

func (s *DocstringServiceImpl) parseFile(ctx context.Context, p *docstring.Parser, path string, req domain.ParseRequest) domain.FileResult {
	content, err := s.reader.ReadFile(path)
	if err != nil {
		return domain.FileResult{
			FilePath: path,
			Failure:  &domain.ParseFailure{Kind: domain.FailureIO, Message: err.Error()},
		}
	}
	return s.parseOne(ctx, p, path, string(content), req)
}

func (s *DocstringServiceImpl) parseOne(ctx context.Context, p *docstring.Parser, name, text string, req domain.ParseRequest) domain.FileResult {
	result := domain.FileResult{FilePath: name}

	doc, err := p.ParseContext(ctx, text)
	if err != nil {
		result.Failure = FailureFromError(err)
		s.log.WithFields(logrus.Fields{
			"file": name,
			"kind": result.Failure.Kind,
		}).Debug(err)
		return result
	}

	if err := doc.Validate(); err != nil {
		result.Failure = FailureFromError(err)
		return result
	}
	result.Docstring = ToRecord(doc)
	if req.RequireSummary && doc.Summary == "" {
		result.Issues = append(result.Issues, IssueMissingSummary)
	}
	return result
}

func summarize(results []domain.FileResult) domain.ParseSummary {
	summary := domain.ParseSummary{
		TotalFiles:    len(results),
		SectionCounts: make(map[string]int),
	}
	for _, r := range results {
		if r.Failure != nil {
			summary.FailedFiles++
			summary.IssueCount++
			continue
		}
		summary.ParsedFiles++
		summary.IssueCount += len(r.Issues)
		for _, section := range FromRecord(r.Docstring).Sections() {
			summary.SectionCounts[section.String()]++
		}
	}
	return summary
}
