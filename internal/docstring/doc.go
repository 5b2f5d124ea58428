// Package docstring parses Google-style docstring bodies into typed records.
//
// A docstring body is the text of a documentation comment with its
// delimiters already removed. Sections are optional and appear in a fixed
// order:
//
//	Summary line.
//
//	Extended description.
//
//	Args:
//	    arg1: Description of arg1
//	    arg2 (str): Description of arg2
//
//	Returns:
//	    bool: Description of return value
//
//	Raises:
//	    ValueError: If arg2 is invalid.
//
//	Alias:
//	    My Alias
//
//	Examples:
//	    >>> f(1, "x")
//	    True
//
// Section bodies are delimited by indentation only, so the package measures
// indentation in a dedicated pass before tokenizing and then runs an Earley
// chart parser over the token stream. The chart keeps every partial
// derivation alive, which lets a body line that happens to look like prose
// or like a header be classified by its position instead of by greedy
// lookahead.
//
// Basic usage:
//
//	doc, err := docstring.Parse(text)
//	if err != nil {
//	    var syntaxErr *docstring.SyntaxError
//	    if errors.As(err, &syntaxErr) {
//	        // syntaxErr.Line, syntaxErr.Column, syntaxErr.Expected
//	    }
//	}
//
// A Parser holds only its compiled grammar and options and is safe for
// concurrent use.
package docstring
