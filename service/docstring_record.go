package service

import (
	"context"
	"errors"

	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/internal/docstring"
)

// ToRecord converts a parsed docstring into its report form.
func ToRecord(doc *docstring.Docstring) *domain.DocstringRecord {
	if doc == nil {
		return nil
	}

	rec := &domain.DocstringRecord{
		Summary:     doc.Summary,
		Description: doc.Description,
		Alias:       doc.Alias,
		Examples:    doc.Examples,
	}
	for _, a := range doc.Args {
		rec.Args = append(rec.Args, domain.ArgRecord{Name: a.Name, Type: a.Type, Description: a.Description})
	}
	for _, r := range doc.Raises {
		rec.Raises = append(rec.Raises, domain.RaiseRecord{Type: r.Type, Description: r.Description})
	}
	if doc.Returns != nil {
		rec.Returns = &domain.ResultRecord{Type: doc.Returns.Type, Description: doc.Returns.Description}
	}
	if doc.Yields != nil {
		rec.Yields = &domain.ResultRecord{Type: doc.Yields.Type, Description: doc.Yields.Description}
	}
	return rec
}

// FromRecord is the inverse of ToRecord. A nil record yields an empty
// docstring.
func FromRecord(rec *domain.DocstringRecord) *docstring.Docstring {
	if rec == nil {
		return &docstring.Docstring{}
	}

	doc := &docstring.Docstring{
		Summary:     rec.Summary,
		Description: rec.Description,
		Alias:       rec.Alias,
		Examples:    rec.Examples,
	}
	for _, a := range rec.Args {
		doc.Args = append(doc.Args, docstring.Arg{Name: a.Name, Type: a.Type, Description: a.Description})
	}
	for _, r := range rec.Raises {
		doc.Raises = append(doc.Raises, docstring.Raise{Type: r.Type, Description: r.Description})
	}
	if rec.Returns != nil {
		doc.Returns = &docstring.Result{Type: rec.Returns.Type, Description: rec.Returns.Description}
	}
	if rec.Yields != nil {
		doc.Yields = &docstring.Result{Type: rec.Yields.Type, Description: rec.Yields.Description}
	}
	return doc
}

// FailureFromError classifies a parse error. Errors outside the parser's
// taxonomy are reported as internal failures.
func FailureFromError(err error) *domain.ParseFailure {
	if err == nil {
		return nil
	}

	failure := &domain.ParseFailure{Message: err.Error()}

	var lexErr *docstring.LexError
	var synErr *docstring.SyntaxError
	var budgetErr *docstring.BudgetError

	switch {
	case errors.As(err, &lexErr):
		failure.Kind = domain.FailureLexical
		failure.Line, failure.Column = lexErr.Line, lexErr.Column
	case errors.As(err, &synErr):
		failure.Kind = domain.FailureSyntax
		failure.Line, failure.Column = synErr.Line, synErr.Column
		failure.Expected = append([]string(nil), synErr.Expected...)
	case errors.As(err, &budgetErr):
		failure.Kind = domain.FailureBudget
		failure.Line = budgetErr.Line
	case errors.Is(err, docstring.ErrInvalidDocstring):
		failure.Kind = domain.FailureInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		failure.Kind = domain.FailureCancelled
	default:
		failure.Kind = domain.FailureInternal
	}
	return failure
}
