package docstring

import (
	"context"
	"fmt"
	"sort"
)

// DefaultMaxItems bounds the number of Earley items a single parse may
// create.
const DefaultMaxItems = 1 << 20

// item is an Earley item: a production, a position inside it and the token
// index where recognition of the production started.
type item struct {
	rule   int32
	dot    int32
	origin int32
}

type itemSet struct {
	items   []item
	index   map[item]struct{}
	waiting map[Symbol][]int
}

func newItemSet() *itemSet {
	return &itemSet{
		index:   make(map[item]struct{}),
		waiting: make(map[Symbol][]int),
	}
}

// chart is the per-call state of one parse.
type chart struct {
	g      *Grammar
	tokens []Token
	sets   []*itemSet
	size   int
	limit  int
}

func (g *Grammar) newChart(tokens []Token, limit int) *chart {
	sets := make([]*itemSet, len(tokens)+1)
	for i := range sets {
		sets[i] = newItemSet()
	}
	return &chart{g: g, tokens: tokens, sets: sets, limit: limit}
}

func (c *chart) next(it item) (Symbol, bool) {
	rhs := c.g.rules[it.rule].RHS
	if int(it.dot) >= len(rhs) {
		return 0, false
	}
	return rhs[it.dot], true
}

func (c *chart) has(set int, it item) bool {
	_, ok := c.sets[set].index[it]
	return ok
}

func (c *chart) add(set int, it item) error {
	s := c.sets[set]
	if _, ok := s.index[it]; ok {
		return nil
	}
	c.size++
	if c.limit > 0 && c.size > c.limit {
		return &BudgetError{Limit: c.limit, Line: c.lineAt(set)}
	}
	s.index[it] = struct{}{}
	s.items = append(s.items, it)
	if sym, ok := c.next(it); ok {
		s.waiting[sym] = append(s.waiting[sym], len(s.items)-1)
	}
	return nil
}

// Parse recognizes tokens and returns one parse tree. maxItems <= 0 means
// no limit.
func (g *Grammar) Parse(ctx context.Context, tokens []Token, maxItems int) (*Node, error) {
	c := g.newChart(tokens, maxItems)
	if err := c.recognize(ctx); err != nil {
		return nil, err
	}
	return c.tree()
}

func (c *chart) recognize(ctx context.Context) error {
	for _, r := range c.g.byLHS[c.g.start] {
		if err := c.add(0, item{rule: int32(r)}); err != nil {
			return err
		}
	}

	n := len(c.tokens)
	for i := 0; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		s := c.sets[i]
		for k := 0; k < len(s.items); k++ {
			it := s.items[k]
			sym, ok := c.next(it)
			if !ok {
				if err := c.complete(i, it); err != nil {
					return err
				}
				continue
			}

			if t := c.g.terminals[sym]; t != nil {
				if i < n && t.Match(c.tokens[i]) {
					if err := c.add(i+1, item{it.rule, it.dot + 1, it.origin}); err != nil {
						return err
					}
				}
				continue
			}

			for _, r := range c.g.byLHS[sym] {
				if err := c.add(i, item{rule: int32(r), origin: int32(i)}); err != nil {
					return err
				}
			}
			// Aycock-Horspool: a nullable nonterminal may be skipped at
			// prediction time, which covers completions at the same position.
			if c.g.nullable[sym] {
				if err := c.add(i, item{it.rule, it.dot + 1, it.origin}); err != nil {
					return err
				}
			}
		}

		if i < n && len(c.sets[i+1].items) == 0 {
			return c.syntaxError(i)
		}
	}

	if !c.accepted() {
		return c.syntaxError(n)
	}
	return nil
}

func (c *chart) complete(i int, it item) error {
	lhs := c.g.rules[it.rule].LHS
	origin := c.sets[it.origin]
	for _, w := range origin.waiting[lhs] {
		parent := origin.items[w]
		if err := c.add(i, item{parent.rule, parent.dot + 1, parent.origin}); err != nil {
			return err
		}
	}
	return nil
}

func (c *chart) accepted() bool {
	n := len(c.tokens)
	for _, r := range c.g.byLHS[c.g.start] {
		if c.has(n, c.completed(r, 0)) {
			return true
		}
	}
	return false
}

func (c *chart) completed(rule, origin int) item {
	return item{rule: int32(rule), dot: int32(len(c.g.rules[rule].RHS)), origin: int32(origin)}
}

// syntaxError describes the failure at token position pos: the token found
// there and every terminal some live derivation could have scanned instead.
func (c *chart) syntaxError(pos int) error {
	expected := make(map[string]bool)
	for sym := range c.sets[pos].waiting {
		if t := c.g.terminals[sym]; t != nil {
			expected[t.Display] = true
		}
	}
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	if pos < len(c.tokens) {
		tok := c.tokens[pos]
		return &SyntaxError{Line: tok.Line, Column: tok.Column, Found: tok.Describe(), Expected: names}
	}
	return &SyntaxError{Line: c.lineAt(pos), Column: 1, Found: "end of input", Expected: names}
}

func (c *chart) lineAt(pos int) int {
	if pos < len(c.tokens) {
		return c.tokens[pos].Line
	}
	if len(c.tokens) == 0 {
		return 1
	}
	return c.tokens[len(c.tokens)-1].Line + 1
}

// Node is a parse tree node. Leaves carry the token they matched and the
// role of the terminal that scanned it.
type Node struct {
	Symbol   Symbol
	Name     string
	Tag      Tag
	Role     Role
	Token    *Token
	Children []*Node

	// Start and End delimit the token span [Start, End).
	Start int
	End   int
}

// IsLeaf reports whether the node matched a single token.
func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

// Walk visits n and its descendants depth-first, left to right. Returning
// false from fn skips the children of the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

type spanKey struct {
	rule  int32
	start int32
	end   int32
}

// tree extracts one derivation of the accepted input. Alternatives are
// tried in declaration order and, within an alternative, the prefix before
// the last child takes the longest span available.
func (c *chart) tree() (*Node, error) {
	n := len(c.tokens)
	b := &treeBuilder{c: c, memo: make(map[spanKey]*Node)}
	for _, r := range c.g.byLHS[c.g.start] {
		if c.has(n, c.completed(r, 0)) {
			return b.node(r, 0, n)
		}
	}
	return nil, fmt.Errorf("no derivation spans the input")
}

type treeBuilder struct {
	c    *chart
	memo map[spanKey]*Node
}

func (b *treeBuilder) node(rule, start, end int) (*Node, error) {
	key := spanKey{int32(rule), int32(start), int32(end)}
	if n, ok := b.memo[key]; ok {
		return n, nil
	}

	g := b.c.g
	r := g.rules[rule]
	node := &Node{
		Symbol:   r.LHS,
		Name:     g.names[r.LHS],
		Tag:      g.tags[r.LHS],
		Children: make([]*Node, len(r.RHS)),
		Start:    start,
		End:      end,
	}

	dot := len(r.RHS)
	for dot > 0 {
		sym := r.RHS[dot-1]
		if t := g.terminals[sym]; t != nil {
			tok := &b.c.tokens[end-1]
			node.Children[dot-1] = &Node{
				Symbol: sym,
				Name:   g.names[sym],
				Role:   t.Role,
				Token:  tok,
				Start:  end - 1,
				End:    end,
			}
			end--
			dot--
			continue
		}

		child, mid, err := b.split(rule, dot, start, end, sym)
		if err != nil {
			return nil, err
		}
		node.Children[dot-1] = child
		end = mid
		dot--
	}

	b.memo[key] = node
	return node, nil
}

// split finds the boundary between the prefix RHS[:dot-1] and the
// nonterminal RHS[dot-1] ending at end. An empty prefix only exists in the
// set where the production started, so the first symbol splits at start.
func (b *treeBuilder) split(rule, dot, start, end int, sym Symbol) (*Node, int, error) {
	c := b.c
	prefix := item{rule: int32(rule), dot: int32(dot - 1), origin: int32(start)}
	hi := end
	if dot == 1 {
		hi = start
	}
	for mid := hi; mid >= start; mid-- {
		if !c.has(mid, prefix) {
			continue
		}
		for _, alt := range c.g.byLHS[sym] {
			if c.has(end, c.completed(alt, mid)) {
				child, err := b.node(alt, mid, end)
				if err != nil {
					return nil, 0, err
				}
				return child, mid, nil
			}
		}
	}
	return nil, 0, fmt.Errorf("no derivation of %s ends at token %d", c.g.names[sym], end)
}
