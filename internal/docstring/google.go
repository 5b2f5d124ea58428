package docstring

import (
	"strconv"
	"sync"
)

// Section slots in grammar order. The result slot holds either Returns or
// Yields, never both.
var sectionSlots = []string{
	"summary",
	"description",
	"args",
	"result",
	"raises",
	"alias",
	"examples",
}

var (
	googleOnce    sync.Once
	googleGrammar *Grammar
	googleErr     error
)

// GoogleGrammar returns the compiled Google-style docstring grammar. It is
// built once per process.
func GoogleGrammar() (*Grammar, error) {
	googleOnce.Do(func() {
		googleGrammar, googleErr = buildGoogleGrammar()
	})
	return googleGrammar, googleErr
}

func keyword(word string) func(Token) bool {
	return func(t Token) bool {
		return t.Kind.Has(KindKeyword) && t.Text == word
	}
}

func kind(k Kind) func(Token) bool {
	return func(t Token) bool { return t.Kind.Has(k) }
}

func indentLevel(level int) func(Token) bool {
	return func(t Token) bool {
		return t.Kind.Has(KindIndent) && t.Level == level
	}
}

func buildGoogleGrammar() (*Grammar, error) {
	b := NewGrammarBuilder()

	b.Terminal("NEWLINE", "NEWLINE", RoleStructural, kind(KindNewline)).
		Terminal("INDENT", "INDENT", RoleStructural, indentLevel(1)).
		Terminal("CONT_INDENT", "CONTINUATION_INDENT", RoleStructural, indentLevel(2)).
		Terminal("WORD", "WORD", RoleWord, kind(KindWord)).
		Terminal("NAME", "NAME", RoleName, kind(KindName)).
		Terminal("TYPE", "TYPE", RoleType, kind(KindType)).
		Terminal("COLON", "':'", RoleStructural, kind(KindColon)).
		Terminal("LPAREN", "'('", RoleStructural, kind(KindLParen)).
		Terminal("RPAREN", "')'", RoleStructural, kind(KindRParen)).
		Terminal("ARGS", strconv.Quote(KeywordArgs), RoleStructural, keyword(KeywordArgs)).
		Terminal("RETURNS", strconv.Quote(KeywordReturns), RoleStructural, keyword(KeywordReturns)).
		Terminal("YIELDS", strconv.Quote(KeywordYields), RoleStructural, keyword(KeywordYields)).
		Terminal("RAISES", strconv.Quote(KeywordRaises), RoleStructural, keyword(KeywordRaises)).
		Terminal("ALIAS", strconv.Quote(KeywordAlias), RoleStructural, keyword(KeywordAlias)).
		Terminal("EXAMPLES", strconv.Quote(KeywordExamples), RoleStructural, keyword(KeywordExamples))

	// Words at the start of a level-0 line. A line consisting of a keyword
	// and a colon is always a header, so prose lines are split by whether
	// they start with a keyword and what follows it.
	b.Terminal("PLAIN_WORD", "WORD", RoleWord, func(t Token) bool {
		return t.Kind.Has(KindWord) && !t.Kind.Has(KindKeyword)
	}).
		Terminal("KEYWORD_WORD", "WORD", RoleWord, kind(KindKeyword)).
		Terminal("NON_COLON_WORD", "WORD", RoleWord, func(t Token) bool {
			return t.Kind.Has(KindWord) && !t.Kind.Has(KindColon)
		}).
		Terminal("COLON_WORD", "':'", RoleWord, kind(KindColon))

	// Free text and indented bodies.
	b.Rule("text", "WORD").
		Rule("text", "text", "WORD").
		Rule("blanks", "NEWLINE").
		Rule("blanks", "blanks", "NEWLINE").
		Rule("cont", "CONT_INDENT", "text", "NEWLINE").
		Rule("conts", "cont").
		Rule("conts", "conts", "cont").
		Rule("body_line", "INDENT", "text", "NEWLINE").
		Rule("body_line", "INDENT", "text", "NEWLINE", "conts").
		Rule("body", "body_line").
		Rule("body", "body", "body_line").
		Rule("item_desc", "text", "NEWLINE").
		Rule("item_desc", "text", "NEWLINE", "conts").
		Rule("item_desc", "NEWLINE", "conts")

	// Level-0 prose.
	b.Rule("plain_head", "PLAIN_WORD").
		Rule("plain_head", "PLAIN_WORD", "text").
		Rule("plain_head", "KEYWORD_WORD").
		Rule("plain_head", "KEYWORD_WORD", "NON_COLON_WORD").
		Rule("plain_head", "KEYWORD_WORD", "NON_COLON_WORD", "text").
		Rule("plain_head", "KEYWORD_WORD", "COLON_WORD", "text").
		Rule("plain_line", "plain_head", "NEWLINE").
		Rule("paragraph", "plain_line").
		Rule("paragraph", "paragraph", "plain_line").
		Rule("paragraphs", "paragraph").
		Rule("paragraphs", "paragraphs", "blanks", "paragraph")

	// Sections.
	b.Rule("summary", "plain_line").Tag("summary", TagSummary).
		Rule("description", "paragraphs").Tag("description", TagDescription).
		Rule("args", "ARGS", "COLON", "NEWLINE", "arg_list").Tag("args", TagArgs).
		Rule("arg_list", "arg").
		Rule("arg_list", "arg_list", "arg").
		Rule("arg", "INDENT", "arg_head", "COLON", "item_desc").Tag("arg", TagArg).
		Rule("arg_head", "NAME").
		Rule("arg_head", "NAME", "LPAREN", "TYPE", "RPAREN").
		Rule("typed_item", "INDENT", "TYPE", "COLON", "item_desc").
		Rule("typed_item", "INDENT", "item_desc").
		Rule("returns", "RETURNS", "COLON", "NEWLINE", "typed_item").Tag("returns", TagReturns).
		Rule("yields", "YIELDS", "COLON", "NEWLINE", "typed_item").Tag("yields", TagYields).
		Rule("result", "returns").
		Rule("result", "yields").
		Rule("raises", "RAISES", "COLON", "NEWLINE", "error_list").Tag("raises", TagRaises).
		Rule("error_list", "error").
		Rule("error_list", "error_list", "error").
		Rule("error", "INDENT", "TYPE", "COLON", "item_desc").Tag("error", TagError).
		Rule("alias", "ALIAS", "COLON", "NEWLINE", "body").Tag("alias", TagAlias).
		Rule("examples", "EXAMPLES", "COLON", "NEWLINE", "example_body").Tag("examples", TagExamples).
		Rule("example_body", "body_line").
		Rule("example_body", "example_body", "body_line").
		Rule("example_body", "example_body", "blanks", "body_line")

	addSectionChain(b)

	return b.Build("docstring")
}

// addSectionChain encodes "summary? description? args? result? raises?
// alias? examples?" with blank-line separators. tail_i derives a non-empty
// ordered run of sections whose first section is slot i. Summary and
// description must be separated by a blank line; any other pair may be
// separated by zero or more.
func addSectionChain(b *GrammarBuilder) {
	tail := func(i int) string { return "tail_" + sectionSlots[i] }

	for i, slot := range sectionSlots {
		b.Rule(tail(i), slot)
		for j := i + 1; j < len(sectionSlots); j++ {
			if i == 0 && j == 1 {
				b.Rule(tail(i), slot, "blanks", tail(j))
				continue
			}
			b.Rule(tail(i), slot, tail(j))
			b.Rule(tail(i), slot, "blanks", tail(j))
		}
	}

	// Earlier alternatives win on ambiguous input: a one-line first
	// paragraph followed by a blank line is a summary.
	for i := range sectionSlots {
		b.Rule("docstring", tail(i))
	}
	b.Rule("docstring")
}
