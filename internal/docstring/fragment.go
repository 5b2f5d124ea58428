package docstring

// Section enumerates docstring sections in grammar order.
type Section int

const (
	SectionSummary Section = iota
	SectionDescription
	SectionArgs
	SectionReturns
	SectionYields
	SectionRaises
	SectionAlias
	SectionExamples
)

var sectionNames = [...]string{
	SectionSummary:     "summary",
	SectionDescription: "description",
	SectionArgs:        "args",
	SectionReturns:     "returns",
	SectionYields:      "yields",
	SectionRaises:      "raises",
	SectionAlias:       "alias",
	SectionExamples:    "examples",
}

func (s Section) String() string {
	if s >= 0 && int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return "unknown"
}

// Fragment is the typed result of folding one section of the parse tree.
// The set of implementations is closed; code that needs to handle every
// section implements FragmentVisitor.
type Fragment interface {
	Section() Section
	Accept(v FragmentVisitor)
}

// FragmentVisitor has one method per fragment variant.
type FragmentVisitor interface {
	VisitSummary(f *SummaryFragment)
	VisitDescription(f *DescriptionFragment)
	VisitArgs(f *ArgsFragment)
	VisitReturns(f *ReturnsFragment)
	VisitYields(f *YieldsFragment)
	VisitRaises(f *RaisesFragment)
	VisitAlias(f *AliasFragment)
	VisitExamples(f *ExamplesFragment)
}

type SummaryFragment struct{ Text string }

type DescriptionFragment struct{ Text string }

type ArgsFragment struct{ Args []Arg }

type ReturnsFragment struct{ Result Result }

type YieldsFragment struct{ Result Result }

type RaisesFragment struct{ Raises []Raise }

// AliasFragment holds the alias body before normalization.
type AliasFragment struct{ Text string }

type ExamplesFragment struct{ Text string }

func (*SummaryFragment) Section() Section     { return SectionSummary }
func (*DescriptionFragment) Section() Section { return SectionDescription }
func (*ArgsFragment) Section() Section        { return SectionArgs }
func (*ReturnsFragment) Section() Section     { return SectionReturns }
func (*YieldsFragment) Section() Section      { return SectionYields }
func (*RaisesFragment) Section() Section      { return SectionRaises }
func (*AliasFragment) Section() Section       { return SectionAlias }
func (*ExamplesFragment) Section() Section    { return SectionExamples }

func (f *SummaryFragment) Accept(v FragmentVisitor)     { v.VisitSummary(f) }
func (f *DescriptionFragment) Accept(v FragmentVisitor) { v.VisitDescription(f) }
func (f *ArgsFragment) Accept(v FragmentVisitor)        { v.VisitArgs(f) }
func (f *ReturnsFragment) Accept(v FragmentVisitor)     { v.VisitReturns(f) }
func (f *YieldsFragment) Accept(v FragmentVisitor)      { v.VisitYields(f) }
func (f *RaisesFragment) Accept(v FragmentVisitor)      { v.VisitRaises(f) }
func (f *AliasFragment) Accept(v FragmentVisitor)       { v.VisitAlias(f) }
func (f *ExamplesFragment) Accept(v FragmentVisitor)    { v.VisitExamples(f) }
