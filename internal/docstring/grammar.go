package docstring

import (
	"fmt"
	"slices"
	"strings"
)

// Symbol identifies a terminal or nonterminal of a compiled grammar.
type Symbol int

// Role is how the transformer interprets the text of a scanned token.
type Role uint8

const (
	RoleStructural Role = iota
	RoleWord
	RoleName
	RoleType
)

// Tag marks the nonterminals the transformer folds into fragments.
type Tag uint8

const (
	TagNone Tag = iota
	TagSummary
	TagDescription
	TagArgs
	TagArg
	TagReturns
	TagYields
	TagRaises
	TagError
	TagAlias
	TagExamples
)

var tagNames = [...]string{
	TagNone:        "none",
	TagSummary:     "summary",
	TagDescription: "description",
	TagArgs:        "args",
	TagArg:         "arg",
	TagReturns:     "returns",
	TagYields:      "yields",
	TagRaises:      "raises",
	TagError:       "error",
	TagAlias:       "alias",
	TagExamples:    "examples",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", t)
}

// Terminal matches a single token.
type Terminal struct {
	// Display is the name shown in syntax errors. Several terminals may
	// share a display name.
	Display string
	Role    Role
	Match   func(Token) bool
}

// Rule is a single production LHS -> RHS.
type Rule struct {
	LHS Symbol
	RHS []Symbol
}

// Grammar is an immutable compiled context-free grammar. Alternatives of a
// nonterminal keep their declaration order, which is also their priority
// when an input has more than one derivation.
type Grammar struct {
	start     Symbol
	names     []string
	terminals []*Terminal
	tags      []Tag
	rules     []Rule
	byLHS     [][]int
	nullable  []bool
}

// Name returns the declared name of a symbol.
func (g *Grammar) Name(s Symbol) string {
	return g.names[s]
}

// Terminal returns the terminal for s, or nil when s is a nonterminal.
func (g *Grammar) Terminal(s Symbol) *Terminal {
	return g.terminals[s]
}

// Rules returns the number of productions.
func (g *Grammar) Rules() int {
	return len(g.rules)
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(g.names[r.LHS])
		b.WriteString(" ->")
		if len(r.RHS) == 0 {
			b.WriteString(" ε")
		}
		for _, s := range r.RHS {
			b.WriteByte(' ')
			b.WriteString(g.names[s])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type ruleSpec struct {
	lhs string
	rhs []string
}

// GrammarBuilder collects terminals and productions by name and compiles
// them into a Grammar.
type GrammarBuilder struct {
	terminals map[string]*Terminal
	termOrder []string
	rules     []ruleSpec
	tags      map[string]Tag
	errs      []error
}

// NewGrammarBuilder creates an empty builder.
func NewGrammarBuilder() *GrammarBuilder {
	return &GrammarBuilder{
		terminals: make(map[string]*Terminal),
		tags:      make(map[string]Tag),
	}
}

// Terminal declares a terminal symbol.
func (b *GrammarBuilder) Terminal(name, display string, role Role, match func(Token) bool) *GrammarBuilder {
	if _, dup := b.terminals[name]; dup {
		b.errs = append(b.errs, &GrammarError{Symbol: name, Msg: "terminal declared twice"})
		return b
	}
	if match == nil {
		b.errs = append(b.errs, &GrammarError{Symbol: name, Msg: "terminal has no matcher"})
		return b
	}
	if display == "" {
		display = name
	}
	b.terminals[name] = &Terminal{Display: display, Role: role, Match: match}
	b.termOrder = append(b.termOrder, name)
	return b
}

// Rule adds the production lhs -> rhs. An empty rhs derives the empty string.
func (b *GrammarBuilder) Rule(lhs string, rhs ...string) *GrammarBuilder {
	b.rules = append(b.rules, ruleSpec{lhs: lhs, rhs: rhs})
	return b
}

// Tag attaches a transformer tag to a nonterminal.
func (b *GrammarBuilder) Tag(nonterminal string, tag Tag) *GrammarBuilder {
	if prev, ok := b.tags[nonterminal]; ok && prev != tag {
		b.errs = append(b.errs, &GrammarError{
			Symbol: nonterminal,
			Msg:    fmt.Sprintf("conflicting tags %s and %s", prev, tag),
		})
		return b
	}
	b.tags[nonterminal] = tag
	return b
}

// Build compiles and validates the grammar. Any inconsistency is reported
// as a *GrammarError.
func (b *GrammarBuilder) Build(start string) (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	g := &Grammar{}
	ids := make(map[string]Symbol)
	declare := func(name string, t *Terminal) Symbol {
		id := Symbol(len(g.names))
		ids[name] = id
		g.names = append(g.names, name)
		g.terminals = append(g.terminals, t)
		g.tags = append(g.tags, TagNone)
		return id
	}

	for _, name := range b.termOrder {
		declare(name, b.terminals[name])
	}
	for _, r := range b.rules {
		if _, isTerm := b.terminals[r.lhs]; isTerm {
			return nil, &GrammarError{Symbol: r.lhs, Msg: "terminal used as the left-hand side of a production"}
		}
		if _, ok := ids[r.lhs]; !ok {
			declare(r.lhs, nil)
		}
	}

	for name, tag := range b.tags {
		id, ok := ids[name]
		if !ok {
			return nil, &GrammarError{Symbol: name, Msg: "tag on undefined nonterminal"}
		}
		if g.terminals[id] != nil {
			return nil, &GrammarError{Symbol: name, Msg: "tag on terminal"}
		}
		g.tags[id] = tag
	}

	startID, ok := ids[start]
	if !ok || g.terminals[startID] != nil {
		return nil, &GrammarError{Symbol: start, Msg: "start symbol has no productions"}
	}
	g.start = startID

	g.byLHS = make([][]int, len(g.names))
	seen := make(map[string]bool)
	for _, r := range b.rules {
		key := r.lhs + " -> " + strings.Join(r.rhs, " ")
		if seen[key] {
			return nil, &GrammarError{Symbol: r.lhs, Msg: "duplicate production " + key}
		}
		seen[key] = true

		rule := Rule{LHS: ids[r.lhs], RHS: make([]Symbol, 0, len(r.rhs))}
		for _, name := range r.rhs {
			id, ok := ids[name]
			if !ok {
				return nil, &GrammarError{Symbol: name, Msg: "undefined symbol in production for " + r.lhs}
			}
			rule.RHS = append(rule.RHS, id)
		}
		g.byLHS[rule.LHS] = append(g.byLHS[rule.LHS], len(g.rules))
		g.rules = append(g.rules, rule)
	}

	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// validate checks productivity, reachability and derivation cycles, and
// computes the nullable set.
func (g *Grammar) validate() error {
	n := len(g.names)

	productive := make([]bool, n)
	g.nullable = make([]bool, n)
	for s := range g.terminals {
		productive[s] = g.terminals[s] != nil
	}
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			allProductive, allNullable := true, true
			for _, s := range r.RHS {
				allProductive = allProductive && productive[s]
				allNullable = allNullable && g.nullable[s]
			}
			if allProductive && !productive[r.LHS] {
				productive[r.LHS] = true
				changed = true
			}
			if allNullable && !g.nullable[r.LHS] {
				g.nullable[r.LHS] = true
				changed = true
			}
		}
	}
	for s, ok := range productive {
		if !ok {
			return &GrammarError{Symbol: g.names[s], Msg: "nonterminal derives no terminal string"}
		}
	}

	reachable := make([]bool, n)
	stack := []Symbol{g.start}
	reachable[g.start] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ri := range g.byLHS[s] {
			for _, c := range g.rules[ri].RHS {
				if !reachable[c] {
					reachable[c] = true
					stack = append(stack, c)
				}
			}
		}
	}
	for s, ok := range reachable {
		if !ok {
			return &GrammarError{Symbol: g.names[s], Msg: "symbol is unreachable from the start symbol"}
		}
	}

	return g.checkCycles()
}

// checkCycles rejects grammars where a nonterminal derives itself through
// productions whose other symbols are all nullable (A =>+ A). Such
// grammars have infinitely many parse trees for some inputs.
func (g *Grammar) checkCycles() error {
	edges := make([][]Symbol, len(g.names))
	for _, r := range g.rules {
		for i, s := range r.RHS {
			if g.terminals[s] != nil {
				continue
			}
			others := true
			for j, o := range r.RHS {
				if j != i && !g.nullable[o] {
					others = false
					break
				}
			}
			if others && !slices.Contains(edges[r.LHS], s) {
				edges[r.LHS] = append(edges[r.LHS], s)
			}
		}
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make([]int, len(g.names))
	var visit func(s Symbol) error
	visit = func(s Symbol) error {
		state[s] = active
		for _, c := range edges[s] {
			switch state[c] {
			case active:
				return &GrammarError{Symbol: g.names[c], Msg: "cyclic derivation"}
			case unvisited:
				if err := visit(c); err != nil {
					return err
				}
			}
		}
		state[s] = done
		return nil
	}
	for s := range edges {
		if state[s] == unvisited {
			if err := visit(Symbol(s)); err != nil {
				return err
			}
		}
	}
	return nil
}
