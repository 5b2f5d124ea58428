package docstring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDocstring is wrapped by every error returned from Docstring.Validate.
var ErrInvalidDocstring = errors.New("invalid docstring")

// LexError reports input that no token pattern accepts.
type LexError struct {
	Line   int
	Column int
	Char   rune
	Msg    string
}

func (e *LexError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("lexical error at line %d, column %d: %s %q", e.Line, e.Column, e.Msg, e.Char)
	}
	return fmt.Sprintf("lexical error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// SyntaxError reports the first token at which no derivation of the grammar
// can continue.
type SyntaxError struct {
	Line     int
	Column   int
	Found    string
	Expected []string
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error at line %d, column %d: unexpected %s", e.Line, e.Column, e.Found)
	}
	return fmt.Sprintf("syntax error at line %d, column %d: unexpected %s; expected one of: %s",
		e.Line, e.Column, e.Found, strings.Join(e.Expected, ", "))
}

// BudgetError is returned when parsing an input would exceed the configured
// chart size.
type BudgetError struct {
	Limit int
	Line  int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("parse aborted near line %d: chart exceeded %d items", e.Line, e.Limit)
}

// GrammarError reports an inconsistent grammar definition. It is only
// produced while a grammar is being built.
type GrammarError struct {
	Symbol string
	Msg    string
}

func (e *GrammarError) Error() string {
	if e.Symbol == "" {
		return "grammar error: " + e.Msg
	}
	return fmt.Sprintf("grammar error: %s: %s", e.Symbol, e.Msg)
}
