package docstring

import (
	"regexp"
	"strings"
)

// Kind is a set of lexical roles. A single lexeme such as "arg1" is at the
// same time a word, a parameter name and a type name; the grammar decides
// which role it plays.
type Kind uint16

const (
	KindNewline Kind = 1 << iota
	KindIndent
	KindWord
	KindName
	KindType
	KindKeyword
	KindColon
	KindLParen
	KindRParen
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindNewline, "NEWLINE"},
	{KindIndent, "INDENT"},
	{KindWord, "WORD"},
	{KindName, "NAME"},
	{KindType, "TYPE"},
	{KindKeyword, "KEYWORD"},
	{KindColon, "COLON"},
	{KindLParen, "LPAREN"},
	{KindRParen, "RPAREN"},
}

// Has reports whether k includes any role of other.
func (k Kind) Has(other Kind) bool {
	return k&other != 0
}

func (k Kind) String() string {
	var parts []string
	for _, kn := range kindNames {
		if k.Has(kn.kind) {
			parts = append(parts, kn.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Section keywords recognized in headers.
const (
	KeywordArgs     = "Args"
	KeywordReturns  = "Returns"
	KeywordYields   = "Yields"
	KeywordRaises   = "Raises"
	KeywordAlias    = "Alias"
	KeywordExamples = "Examples"
)

var sectionKeywords = map[string]bool{
	KeywordArgs:     true,
	KeywordReturns:  true,
	KeywordYields:   true,
	KeywordRaises:   true,
	KeywordAlias:    true,
	KeywordExamples: true,
}

// Token is one lexical unit. Indentation tokens carry their level (1 for a
// section body line, 2 for a continuation line); newline tokens end every
// physical line, including blank ones.
type Token struct {
	Kind   Kind
	Text   string
	Level  int
	Line   int
	Column int

	// Glued is set when the token was split off a larger run without any
	// whitespace before it, e.g. the ":" of "arg1:".
	Glued bool
}

// Describe returns a short human-readable form used in error messages.
func (t Token) Describe() string {
	switch {
	case t.Kind.Has(KindNewline):
		return "end of line"
	case t.Kind.Has(KindIndent):
		if t.Level >= 2 {
			return "continuation indentation"
		}
		return "indentation"
	default:
		return "\"" + t.Text + "\""
	}
}

var (
	nameRe  = regexp.MustCompile(`^\*{0,2}[_a-zA-Z][_a-zA-Z0-9]*$`)
	typeRe  = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9_.]*(\[[_a-zA-Z0-9_.,\[\]]*\])?$`)
	parenRe = regexp.MustCompile(`^([^()]*)\(([^()]*)\)$`)
)

// isWordRune reports whether r may appear inside a word.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(".,`>=()[]/:_*\"'-", r)
}

// Tokenize converts a docstring body into tokens. Leading and trailing blank
// lines are dropped; every remaining line ends with a newline token.
func Tokenize(text string) ([]Token, error) {
	lines := splitLines(text)
	unit, err := detectIndentUnit(lines)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for _, ln := range lines {
		if ln.blank() {
			tokens = append(tokens, Token{Kind: KindNewline, Line: ln.number, Column: len(ln.text) + 1})
			continue
		}

		level, width, err := unit.measure(ln)
		if err != nil {
			return nil, err
		}
		if level > 0 {
			tokens = append(tokens, Token{
				Kind:   KindIndent,
				Text:   ln.text[:width],
				Level:  level,
				Line:   ln.number,
				Column: 1,
			})
		}

		content, err := lexContent(ln.text[width:], ln.number, width+1)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, content...)
		tokens = append(tokens, Token{Kind: KindNewline, Line: ln.number, Column: len(ln.text) + 1})
	}
	return tokens, nil
}

// lexContent splits the text after the indentation into word tokens.
func lexContent(s string, line, column int) ([]Token, error) {
	var tokens []Token
	start := -1
	for i, r := range s {
		switch {
		case r == ' ' || r == '\t':
			if start >= 0 {
				tokens = append(tokens, splitRun(s[start:i], line, column+start)...)
				start = -1
			}
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		default:
			return nil, &LexError{Line: line, Column: column + i, Char: r, Msg: "unexpected character"}
		}
	}
	if start >= 0 {
		tokens = append(tokens, splitRun(s[start:], line, column+start)...)
	}
	return tokens, nil
}

// splitRun breaks a whitespace-delimited run into tokens. A trailing colon
// and a parenthesized suffix become tokens of their own so that headers,
// "name (type):" and "type:" heads are visible to the grammar.
func splitRun(run string, line, column int) []Token {
	body := run
	colon := false
	if len(run) > 1 && strings.HasSuffix(run, ":") {
		body = run[:len(run)-1]
		colon = true
	}

	var tokens []Token
	add := func(text string, offset int) {
		tokens = append(tokens, Token{
			Kind:   classify(text),
			Text:   text,
			Line:   line,
			Column: column + offset,
			Glued:  offset > 0,
		})
	}

	if m := parenRe.FindStringSubmatch(body); m != nil {
		prefix, inner := m[1], m[2]
		if prefix != "" {
			add(prefix, 0)
		}
		add("(", len(prefix))
		if inner != "" {
			add(inner, len(prefix)+1)
		}
		add(")", len(body)-1)
	} else {
		add(body, 0)
	}
	if colon {
		add(":", len(body))
	}
	return tokens
}

func classify(text string) Kind {
	kind := KindWord
	switch text {
	case ":":
		kind |= KindColon
	case "(":
		kind |= KindLParen
	case ")":
		kind |= KindRParen
	}
	if nameRe.MatchString(text) {
		kind |= KindName
	}
	if typeRe.MatchString(text) {
		kind |= KindType
	}
	if sectionKeywords[text] {
		kind |= KindKeyword
	}
	return kind
}

type sourceLine struct {
	text   string
	number int
}

func (l sourceLine) blank() bool {
	return strings.TrimLeft(l.text, " \t") == ""
}

// splitLines splits text into physical lines, keeping original 1-based line
// numbers and dropping blank lines at both ends.
func splitLines(text string) []sourceLine {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")

	lines := make([]sourceLine, 0, len(raw))
	for i, r := range raw {
		lines = append(lines, sourceLine{text: strings.TrimRight(r, " \t\r"), number: i + 1})
	}

	for len(lines) > 0 && lines[0].blank() {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1].blank() {
		lines = lines[:len(lines)-1]
	}
	return lines
}
