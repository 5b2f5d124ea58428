package docstring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDocstring = `Summary line.

Extended description of function.

Args:
    arg1: Description of arg1
    arg2 (str): Description of arg2

Returns:
    bool: Description of return value

Raises:
    ValueError: If arg2 is invalid.

Alias:
    My Alias

Examples:
    >>> f(1, "x")
    True
`

func TestParseFullDocstring(t *testing.T) {
	doc, err := Parse(fullDocstring)
	require.NoError(t, err)

	want := &Docstring{
		Summary:     "Summary line.",
		Description: "Extended description of function.",
		Args: []Arg{
			{Name: "arg1", Description: "Description of arg1"},
			{Name: "arg2", Type: "str", Description: "Description of arg2"},
		},
		Returns: &Result{Type: "bool", Description: "Description of return value"},
		Raises:  []Raise{{Type: "ValueError", Description: "If arg2 is invalid."}},
		Alias:   "myalias",
		Examples: `>>> f(1, "x") True`,
	}
	assert.Equal(t, want, doc)
	assert.True(t, want.Equal(doc))
	assert.NoError(t, doc.Validate())
}

func TestParseSections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Docstring
	}{
		{
			name:  "empty",
			input: "",
			want:  &Docstring{},
		},
		{
			name:  "blank lines only",
			input: "\n   \n\t\n",
			want:  &Docstring{},
		},
		{
			name:  "summary only",
			input: "Fetches rows from the table.",
			want:  &Docstring{Summary: "Fetches rows from the table."},
		},
		{
			name:  "multi-line first paragraph is a description",
			input: "Fetches rows\nfrom the table.",
			want:  &Docstring{Description: "Fetches rows from the table."},
		},
		{
			name:  "description paragraphs fold",
			input: "Summary.\n\nFirst paragraph\ncontinues.\n\nSecond paragraph.",
			want: &Docstring{
				Summary:     "Summary.",
				Description: "First paragraph continues. Second paragraph.",
			},
		},
		{
			name:  "summary directly followed by section",
			input: "Adds numbers.\nArgs:\n    a (int): First.\n    b (int): Second.",
			want: &Docstring{
				Summary: "Adds numbers.",
				Args: []Arg{
					{Name: "a", Type: "int", Description: "First."},
					{Name: "b", Type: "int", Description: "Second."},
				},
			},
		},
		{
			name:  "prose that starts with a keyword",
			input: "Returns: the thing computed.\n\nArgs are parsed lazily.",
			want: &Docstring{
				Summary:     "Returns: the thing computed.",
				Description: "Args are parsed lazily.",
			},
		},
		{
			name:  "yields",
			input: "Yields:\n    int: The next number.",
			want:  &Docstring{Yields: &Result{Type: "int", Description: "The next number."}},
		},
		{
			name:  "untyped returns",
			input: "Returns:\n    The answer.",
			want:  &Docstring{Returns: &Result{Description: "The answer."}},
		},
		{
			name:  "typed returns with description on continuation line",
			input: "Returns:\n    List[str]:\n        Every matching name.",
			want:  &Docstring{Returns: &Result{Type: "List[str]", Description: "Every matching name."}},
		},
		{
			name:  "variadic args",
			input: "Args:\n    *args: Positional values.\n    **kwargs: Keyword values.",
			want: &Docstring{Args: []Arg{
				{Name: "*args", Description: "Positional values."},
				{Name: "**kwargs", Description: "Keyword values."},
			}},
		},
		{
			name:  "colons inside descriptions",
			input: "Args:\n    mode: One of: read, write.",
			want:  &Docstring{Args: []Arg{{Name: "mode", Description: "One of: read, write."}}},
		},
		{
			name:  "multiple raises",
			input: "Raises:\n    KeyError: Missing key.\n    io.Error: Read\n        failed.",
			want: &Docstring{Raises: []Raise{
				{Type: "KeyError", Description: "Missing key."},
				{Type: "io.Error", Description: "Read failed."},
			}},
		},
		{
			name:  "examples with blank lines",
			input: "Examples:\n    >>> a=1\n\n    >>> b=2\n    >>> func(a,b)\n    True",
			want:  &Docstring{Examples: ">>> a=1 >>> b=2 >>> func(a,b) True"},
		},
		{
			name:  "multi-line alias",
			input: "Alias:\n    Fast\n    Path",
			want:  &Docstring{Alias: "fastpath"},
		},
		{
			name:  "tab indentation",
			input: "Args:\n\tpath (str): Where\n\t\tto look.",
			want:  &Docstring{Args: []Arg{{Name: "path", Type: "str", Description: "Where to look."}}},
		},
		{
			name:  "two space indentation",
			input: "Args:\n  path (str): Where\n    to look.",
			want:  &Docstring{Args: []Arg{{Name: "path", Type: "str", Description: "Where to look."}}},
		},
		{
			name:  "sections without blank lines between",
			input: "Returns:\n    int: Count.\nRaises:\n    OSError: Disk.",
			want: &Docstring{
				Returns: &Result{Type: "int", Description: "Count."},
				Raises:  []Raise{{Type: "OSError", Description: "Disk."}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc)
			assert.NoError(t, doc.Validate())
		})
	}
}

func TestParsePreservesArgOrder(t *testing.T) {
	doc, err := Parse("Args:\n    arg1: One.\n    arg2: Two.\n    arg3: Three.")
	require.NoError(t, err)
	require.Len(t, doc.Args, 3)
	for i, a := range doc.Args {
		assert.Equal(t, fmt.Sprintf("arg%d", i+1), a.Name)
	}
}

func TestParseFoldsContinuationLines(t *testing.T) {
	doc, err := Parse("Args:\n    arg1 (int): The first\n        wrapped across\n        two lines.")
	require.NoError(t, err)
	require.Len(t, doc.Args, 1)
	assert.Equal(t, "The first wrapped across two lines.", doc.Args[0].Description)
	assert.NotContains(t, doc.Args[0].Description, "\n")
	assert.NotContains(t, doc.Args[0].Description, "  ")
}

func TestParseErrors(t *testing.T) {
	t.Run("returns and yields together", func(t *testing.T) {
		doc, err := Parse("Returns:\n    int: x\n\nYields:\n    int: y")
		assert.Nil(t, doc)

		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), "got %v", err)
		assert.Equal(t, 4, syntaxErr.Line)
		assert.Equal(t, `"Yields"`, syntaxErr.Found)
		assert.Contains(t, syntaxErr.Expected, `"Raises"`)
	})

	t.Run("header without colon", func(t *testing.T) {
		doc, err := Parse("Summary.\n\nArgs\n    arg1: x")
		assert.Nil(t, doc)

		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), "got %v", err)
		assert.Equal(t, 4, syntaxErr.Line)
		assert.Equal(t, "indentation", syntaxErr.Found)
		assert.Contains(t, err.Error(), "line 4")
	})

	t.Run("sections out of order", func(t *testing.T) {
		_, err := Parse("Raises:\n    KeyError: x\n\nArgs:\n    a: b")
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), "got %v", err)
		assert.Equal(t, 4, syntaxErr.Line)
	})

	t.Run("header with empty body", func(t *testing.T) {
		_, err := Parse("Summary.\n\nReturns:")
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), "got %v", err)
		assert.Equal(t, "end of input", syntaxErr.Found)
		assert.Contains(t, syntaxErr.Expected, "INDENT")
	})

	t.Run("lexical error", func(t *testing.T) {
		doc, err := Parse("Summary; with a semicolon.")
		assert.Nil(t, doc)
		var lexErr *LexError
		require.True(t, errors.As(err, &lexErr), "got %v", err)
		assert.Equal(t, ';', lexErr.Char)
	})
}

func TestParserOptions(t *testing.T) {
	t.Run("dedent", func(t *testing.T) {
		p := MustNewParser(WithDedent(true))
		doc, err := p.Parse("Summary.\n\n        Args:\n            a: x\n        ")
		require.NoError(t, err)
		assert.Equal(t, "Summary.", doc.Summary)
		assert.Equal(t, []Arg{{Name: "a", Description: "x"}}, doc.Args)
	})

	t.Run("budget", func(t *testing.T) {
		p, err := NewParser(WithMaxItems(10))
		require.NoError(t, err)
		_, err = p.Parse(fullDocstring)
		var budgetErr *BudgetError
		require.True(t, errors.As(err, &budgetErr), "got %v", err)
	})

	t.Run("trace", func(t *testing.T) {
		var lines []string
		p := MustNewParser(WithTrace(func(format string, args ...interface{}) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}))
		_, err := p.Parse(fullDocstring)
		require.NoError(t, err)
		require.NotEmpty(t, lines)
		assert.Contains(t, lines[0], "into 7 sections")
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := MustNewParser().ParseContext(ctx, fullDocstring)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParserConcurrentUse(t *testing.T) {
	p := MustNewParser()
	want, err := p.Parse(fullDocstring)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Parse(fullDocstring)
			if err != nil {
				errs <- err
				return
			}
			if !want.Equal(got) {
				errs <- fmt.Errorf("result differs: %+v", got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestParseLongLineIsBounded(t *testing.T) {
	const n = 30000
	input := strings.Repeat("word ", n)

	type outcome struct {
		doc *Docstring
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		doc, err := Parse(input)
		done <- outcome{doc, err}
	}()

	select {
	case got := <-done:
		if got.err != nil {
			var budgetErr *BudgetError
			require.True(t, errors.As(got.err, &budgetErr), "got %v", got.err)
			return
		}
		assert.Len(t, strings.Fields(got.doc.Summary), n)
	case <-time.After(10 * time.Second):
		t.Fatalf("parsing %d words did not finish in time", n)
	}
}
