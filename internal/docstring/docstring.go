package docstring

import (
	"fmt"
	"slices"
	"strings"
)

// Arg is one entry of the Args section. Type is empty when the argument
// declares no parenthesized type.
type Arg struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// Result is the body of a Returns or Yields section. Type is empty when the
// body is plain text.
type Result struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// Raise is one entry of the Raises section.
type Raise struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// Docstring is the parsed form of a docstring body. Absent sections are
// left at their zero value; a present text section always holds at least
// one word. Every field is a single line.
type Docstring struct {
	Summary     string  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Args        []Arg   `json:"args,omitempty" yaml:"args,omitempty"`
	Returns     *Result `json:"returns,omitempty" yaml:"returns,omitempty"`
	Yields      *Result `json:"yields,omitempty" yaml:"yields,omitempty"`
	Raises      []Raise `json:"raises,omitempty" yaml:"raises,omitempty"`
	Alias       string  `json:"alias,omitempty" yaml:"alias,omitempty"`
	Examples    string  `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Sections lists the sections present in d, in grammar order.
func (d *Docstring) Sections() []Section {
	var out []Section
	if d.Summary != "" {
		out = append(out, SectionSummary)
	}
	if d.Description != "" {
		out = append(out, SectionDescription)
	}
	if len(d.Args) > 0 {
		out = append(out, SectionArgs)
	}
	if d.Returns != nil {
		out = append(out, SectionReturns)
	}
	if d.Yields != nil {
		out = append(out, SectionYields)
	}
	if len(d.Raises) > 0 {
		out = append(out, SectionRaises)
	}
	if d.Alias != "" {
		out = append(out, SectionAlias)
	}
	if d.Examples != "" {
		out = append(out, SectionExamples)
	}
	return out
}

// IsEmpty reports whether no section is present.
func (d *Docstring) IsEmpty() bool {
	return len(d.Sections()) == 0
}

// Equal reports value equality.
func (d *Docstring) Equal(other *Docstring) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Summary == other.Summary &&
		d.Description == other.Description &&
		slices.Equal(d.Args, other.Args) &&
		equalResult(d.Returns, other.Returns) &&
		equalResult(d.Yields, other.Yields) &&
		slices.Equal(d.Raises, other.Raises) &&
		d.Alias == other.Alias &&
		d.Examples == other.Examples
}

func equalResult(a, b *Result) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Validate checks the invariants every parsed Docstring satisfies.
func (d *Docstring) Validate() error {
	if d.Returns != nil && d.Yields != nil {
		return fmt.Errorf("%w: both returns and yields are set", ErrInvalidDocstring)
	}

	fields := []struct {
		name  string
		value string
	}{
		{"summary", d.Summary},
		{"description", d.Description},
		{"alias", d.Alias},
		{"examples", d.Examples},
	}
	for i, a := range d.Args {
		if a.Name == "" {
			return fmt.Errorf("%w: args[%d] has no name", ErrInvalidDocstring, i)
		}
		fields = append(fields,
			struct{ name, value string }{fmt.Sprintf("args[%d].description", i), a.Description},
			struct{ name, value string }{fmt.Sprintf("args[%d].type", i), a.Type})
	}
	for i, r := range d.Raises {
		if r.Type == "" {
			return fmt.Errorf("%w: raises[%d] has no exception type", ErrInvalidDocstring, i)
		}
		fields = append(fields, struct{ name, value string }{fmt.Sprintf("raises[%d].description", i), r.Description})
	}
	for _, res := range []*Result{d.Returns, d.Yields} {
		if res != nil {
			fields = append(fields, struct{ name, value string }{"result.description", res.Description})
		}
	}

	for _, f := range fields {
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidDocstring, f.name)
		}
	}
	if d.Alias != NormalizeAlias(d.Alias) {
		return fmt.Errorf("%w: alias %q is not normalized", ErrInvalidDocstring, d.Alias)
	}
	return nil
}

// FormatIndent is the indentation Format uses for section bodies.
const FormatIndent = "    "

// Format renders d as canonical docstring text. Parsing the result yields
// a Docstring equal to d.
func (d *Docstring) Format() string {
	var blocks []string

	if d.Summary != "" {
		blocks = append(blocks, d.Summary)
	}
	if d.Description != "" {
		desc := d.Description
		// Without a summary a one-line paragraph would read back as one.
		if d.Summary == "" {
			desc = wrapDescription(desc)
		}
		blocks = append(blocks, desc)
	}
	if len(d.Args) > 0 {
		var b strings.Builder
		b.WriteString(KeywordArgs + ":")
		for _, a := range d.Args {
			b.WriteString("\n" + FormatIndent + a.Name)
			if a.Type != "" {
				b.WriteString(" (" + a.Type + ")")
			}
			b.WriteString(": " + a.Description)
		}
		blocks = append(blocks, b.String())
	}
	if d.Returns != nil {
		blocks = append(blocks, formatResult(KeywordReturns, d.Returns))
	}
	if d.Yields != nil {
		blocks = append(blocks, formatResult(KeywordYields, d.Yields))
	}
	if len(d.Raises) > 0 {
		var b strings.Builder
		b.WriteString(KeywordRaises + ":")
		for _, r := range d.Raises {
			b.WriteString("\n" + FormatIndent + r.Type + ": " + r.Description)
		}
		blocks = append(blocks, b.String())
	}
	if d.Alias != "" {
		blocks = append(blocks, KeywordAlias+":\n"+FormatIndent+d.Alias)
	}
	if d.Examples != "" {
		blocks = append(blocks, KeywordExamples+":\n"+FormatIndent+d.Examples)
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func formatResult(header string, r *Result) string {
	if r.Type == "" {
		return header + ":\n" + FormatIndent + r.Description
	}
	return header + ":\n" + FormatIndent + r.Type + ": " + r.Description
}

// wrapDescription breaks text onto two lines at the first space where
// neither line reads as a section header.
func wrapDescription(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' {
			continue
		}
		first, rest := text[:i], text[i+1:]
		if !looksLikeHeader(first) && !looksLikeHeader(rest) {
			return first + "\n" + rest
		}
	}
	return text
}

func looksLikeHeader(line string) bool {
	compact := strings.ReplaceAll(line, " ", "")
	return strings.HasSuffix(compact, ":") && sectionKeywords[strings.TrimSuffix(compact, ":")]
}
