package docstring

import (
	"context"
	"fmt"
)

type options struct {
	dedent   bool
	maxItems int
	trace    func(format string, args ...interface{})
}

// Option configures a Parser.
type Option func(*options)

// WithDedent strips source indentation (see Dedent) before tokenizing.
func WithDedent(enabled bool) Option {
	return func(o *options) { o.dedent = enabled }
}

// WithMaxItems bounds the chart size of a single parse. n <= 0 removes the
// bound.
func WithMaxItems(n int) Option {
	return func(o *options) { o.maxItems = n }
}

// WithTrace installs a debug hook that receives parser diagnostics, such as
// discarded duplicate sections.
func WithTrace(fn func(format string, args ...interface{})) Option {
	return func(o *options) { o.trace = fn }
}

// Parser parses Google-style docstrings. It holds only the compiled
// grammar and its options, so one Parser may be shared between goroutines.
type Parser struct {
	grammar *Grammar
	opts    options
}

// NewParser returns a Parser for the Google grammar. An error means the
// grammar itself is inconsistent.
func NewParser(opts ...Option) (*Parser, error) {
	g, err := GoogleGrammar()
	if err != nil {
		return nil, err
	}
	o := options{maxItems: DefaultMaxItems}
	for _, opt := range opts {
		opt(&o)
	}
	return &Parser{grammar: g, opts: o}, nil
}

// MustNewParser is like NewParser but panics on a grammar error.
func MustNewParser(opts ...Option) *Parser {
	p, err := NewParser(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

var defaultParser = MustNewParser()

// Parse parses text with the default parser.
func Parse(text string) (*Docstring, error) {
	return defaultParser.Parse(text)
}

// Parse parses a docstring body. Exactly one of the results is non-nil; a
// malformed body yields a *LexError, *SyntaxError or *BudgetError.
func (p *Parser) Parse(text string) (*Docstring, error) {
	return p.ParseContext(context.Background(), text)
}

// ParseContext is like Parse but stops early when ctx is done.
func (p *Parser) ParseContext(ctx context.Context, text string) (*Docstring, error) {
	if p.opts.dedent {
		text = Dedent(text)
	}

	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	tree, err := p.grammar.Parse(ctx, tokens, p.opts.maxItems)
	if err != nil {
		return nil, err
	}

	fragments, err := Transform(tree)
	if err != nil {
		return nil, fmt.Errorf("transform parse tree: %w", err)
	}

	var onDuplicate func(Section)
	if p.opts.trace != nil {
		onDuplicate = func(s Section) {
			p.opts.trace("discarding duplicate %s section", s)
		}
		p.opts.trace("parsed %d tokens into %d sections", len(tokens), len(fragments))
	}
	return Assemble(fragments, onDuplicate), nil
}
