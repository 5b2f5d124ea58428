package docstring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCanonicalText(t *testing.T) {
	doc, err := Parse(fullDocstring)
	require.NoError(t, err)

	want := `Summary line.

Extended description of function.

Args:
    arg1: Description of arg1
    arg2 (str): Description of arg2

Returns:
    bool: Description of return value

Raises:
    ValueError: If arg2 is invalid.

Alias:
    myalias

Examples:
    >>> f(1, "x") True
`
	assert.Equal(t, want, doc.Format())
	assert.Equal(t, "", (&Docstring{}).Format())
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		fullDocstring,
		"Summary only.",
		"A description that\nspans two lines.",
		"Args:\n    a: x\n    b (int): y\n        wrapped.",
		"Args\nis a word here.\n\nReturns:\n    The answer.",
		"Returns: prose\nthat looks like a header.",
		"Yields:\n    Iterator[int]: Values.",
		"Raises:\n    KeyError: Missing.\n\nExamples:\n    >>> f(x)\n\n    1",
		"Alias:\n    Some Name",
	}
	dedent := MustNewParser(WithDedent(true))
	for _, input := range inputs {
		doc, err := Parse(input)
		require.NoError(t, err, input)

		again, err := Parse(doc.Format())
		require.NoError(t, err, doc.Format())
		assert.True(t, doc.Equal(again), "input %q formatted as %q", input, doc.Format())

		again, err = dedent.Parse(doc.Format())
		require.NoError(t, err, "dedent: %q", doc.Format())
		assert.True(t, doc.Equal(again), "dedent: input %q formatted as %q", input, doc.Format())
	}

	t.Run("header first record", func(t *testing.T) {
		doc := &Docstring{Args: []Arg{{Name: "a", Description: "x"}}}
		again, err := dedent.Parse(doc.Format())
		require.NoError(t, err)
		assert.True(t, doc.Equal(again))
	})
}

func TestWrapDescription(t *testing.T) {
	assert.Equal(t, "a\nb c", wrapDescription("a b c"))
	assert.Equal(t, "Args: x\ny z", wrapDescription("Args: x y z"))
	assert.Equal(t, "Args\n: w z", wrapDescription("Args : w z"))
	assert.Equal(t, "Returns: x\ny", wrapDescription("Returns: x y"))
	assert.Equal(t, "single", wrapDescription("single"))
}

func TestDocstringEqual(t *testing.T) {
	a := &Docstring{Summary: "s", Returns: &Result{Type: "int", Description: "d"}}
	b := &Docstring{Summary: "s", Returns: &Result{Type: "int", Description: "d"}}
	assert.True(t, a.Equal(b))

	b.Returns.Type = "str"
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(nil))
	var none *Docstring
	assert.True(t, none.Equal(nil))
}

func TestDocstringSections(t *testing.T) {
	doc := &Docstring{Summary: "s", Raises: []Raise{{Type: "E", Description: "d"}}, Examples: "e"}
	assert.Equal(t, []Section{SectionSummary, SectionRaises, SectionExamples}, doc.Sections())
	assert.False(t, doc.IsEmpty())
	assert.True(t, (&Docstring{}).IsEmpty())
}

func TestDocstringValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  Docstring
		msg  string
	}{
		{
			name: "returns and yields",
			doc:  Docstring{Returns: &Result{Description: "a"}, Yields: &Result{Description: "b"}},
			msg:  "both returns and yields",
		},
		{
			name: "line break",
			doc:  Docstring{Summary: "one\ntwo"},
			msg:  "summary contains a line break",
		},
		{
			name: "arg without name",
			doc:  Docstring{Args: []Arg{{Description: "x"}}},
			msg:  "args[0] has no name",
		},
		{
			name: "raise without type",
			doc:  Docstring{Raises: []Raise{{Description: "x"}}},
			msg:  "raises[0] has no exception type",
		},
		{
			name: "alias not normalized",
			doc:  Docstring{Alias: "My Alias"},
			msg:  "not normalized",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDocstring))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNormalizeAlias(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  My Alias  ", "myalias"},
		{"Fast\tPath\nHelper", "fastpathhelper"},
		{"already", "already"},
		{"STRASSE", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAlias(tt.in), "input %q", tt.in)
	}
}
