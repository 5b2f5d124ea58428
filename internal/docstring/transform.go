package docstring

import (
	"fmt"
	"sort"
	"strings"
)

// folded is what a subtree contributes while the transformer walks the
// tree bottom-up: finished section fragments plus items that the enclosing
// section collects.
type folded struct {
	fragments []Fragment
	args      []Arg
	raises    []Raise
}

func (f *folded) merge(other folded) {
	f.fragments = append(f.fragments, other.fragments...)
	f.args = append(f.args, other.args...)
	f.raises = append(f.raises, other.raises...)
}

// Transform folds a parse tree produced by the Google grammar into section
// fragments, in the order they appear.
func Transform(root *Node) ([]Fragment, error) {
	out, err := fold(root)
	if err != nil {
		return nil, err
	}
	return out.fragments, nil
}

func fold(n *Node) (folded, error) {
	var out folded
	if n == nil || n.IsLeaf() {
		return out, nil
	}
	for _, child := range n.Children {
		sub, err := fold(child)
		if err != nil {
			return out, err
		}
		out.merge(sub)
	}

	switch n.Tag {
	case TagNone:
	case TagSummary:
		out.fragments = append(out.fragments, &SummaryFragment{Text: joinRole(n, RoleWord)})
	case TagDescription:
		out.fragments = append(out.fragments, &DescriptionFragment{Text: joinRole(n, RoleWord)})
	case TagArg:
		out.args = append(out.args, Arg{
			Name:        joinRole(n, RoleName),
			Type:        joinRole(n, RoleType),
			Description: joinRole(n, RoleWord),
		})
	case TagArgs:
		out.fragments = append(out.fragments, &ArgsFragment{Args: out.args})
		out.args = nil
	case TagReturns:
		out.fragments = append(out.fragments, &ReturnsFragment{Result: resultOf(n)})
	case TagYields:
		out.fragments = append(out.fragments, &YieldsFragment{Result: resultOf(n)})
	case TagError:
		out.raises = append(out.raises, Raise{
			Type:        joinRole(n, RoleType),
			Description: joinRole(n, RoleWord),
		})
	case TagRaises:
		out.fragments = append(out.fragments, &RaisesFragment{Raises: out.raises})
		out.raises = nil
	case TagAlias:
		out.fragments = append(out.fragments, &AliasFragment{Text: joinRole(n, RoleWord)})
	case TagExamples:
		out.fragments = append(out.fragments, &ExamplesFragment{Text: joinRole(n, RoleWord)})
	default:
		return out, fmt.Errorf("unhandled production tag %s", n.Tag)
	}
	return out, nil
}

func resultOf(n *Node) Result {
	return Result{Type: joinRole(n, RoleType), Description: joinRole(n, RoleWord)}
}

// joinRole concatenates the leaves under n that were scanned with the given
// role. Leaves are separated by one space unless the token was glued to its
// predecessor in the source.
func joinRole(n *Node, role Role) string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if !c.IsLeaf() || c.Role != role {
			return true
		}
		if b.Len() > 0 && !c.Token.Glued {
			b.WriteByte(' ')
		}
		b.WriteString(c.Token.Text)
		return true
	})
	return b.String()
}

// assembler merges fragments into a Docstring. The first fragment of each
// section wins; later duplicates are reported and dropped.
type assembler struct {
	doc       Docstring
	seen      map[Section]bool
	duplicate func(Section)
}

// Assemble merges fragments in grammar order and normalizes the alias.
// onDuplicate, when non-nil, is called for every discarded fragment.
func Assemble(fragments []Fragment, onDuplicate func(Section)) *Docstring {
	ordered := make([]Fragment, len(fragments))
	copy(ordered, fragments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Section() < ordered[j].Section()
	})

	a := &assembler{seen: make(map[Section]bool), duplicate: onDuplicate}
	for _, f := range ordered {
		if a.seen[f.Section()] {
			if a.duplicate != nil {
				a.duplicate(f.Section())
			}
			continue
		}
		a.seen[f.Section()] = true
		f.Accept(a)
	}

	if a.doc.Alias != "" {
		a.doc.Alias = NormalizeAlias(a.doc.Alias)
	}
	doc := a.doc
	return &doc
}

func (a *assembler) VisitSummary(f *SummaryFragment)         { a.doc.Summary = f.Text }
func (a *assembler) VisitDescription(f *DescriptionFragment) { a.doc.Description = f.Text }
func (a *assembler) VisitAlias(f *AliasFragment)             { a.doc.Alias = f.Text }
func (a *assembler) VisitExamples(f *ExamplesFragment)       { a.doc.Examples = f.Text }

func (a *assembler) VisitArgs(f *ArgsFragment) {
	a.doc.Args = append([]Arg(nil), f.Args...)
}

func (a *assembler) VisitRaises(f *RaisesFragment) {
	a.doc.Raises = append([]Raise(nil), f.Raises...)
}

// Returns and Yields share one grammar slot; should both ever arrive, the
// one earlier in grammar order is kept.
func (a *assembler) VisitReturns(f *ReturnsFragment) {
	r := f.Result
	a.doc.Returns = &r
}

func (a *assembler) VisitYields(f *YieldsFragment) {
	if a.doc.Returns != nil {
		if a.duplicate != nil {
			a.duplicate(SectionYields)
		}
		return
	}
	r := f.Result
	a.doc.Yields = &r
}
