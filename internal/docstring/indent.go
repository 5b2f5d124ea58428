package docstring

import (
	"fmt"
	"strings"
)

// MaxIndentLevel is the deepest level the tokenizer distinguishes. Deeper
// lines are treated as continuation lines.
const MaxIndentLevel = 2

// indentUnit is the width of one indentation level in a document: a single
// tab, or a run of two or four spaces.
type indentUnit struct {
	char  byte
	width int
}

func (u indentUnit) String() string {
	switch {
	case u.width == 0:
		return "none"
	case u.char == '\t':
		return "tab"
	default:
		return fmt.Sprintf("%d spaces", u.width)
	}
}

// detectIndentUnit derives the unit from the first indented line. Documents
// without indentation get a zero unit.
func detectIndentUnit(lines []sourceLine) (indentUnit, error) {
	for _, ln := range lines {
		if ln.blank() {
			continue
		}
		lead := leadingWhitespace(ln.text)
		if lead == "" {
			continue
		}
		if strings.Contains(lead, "\t") && strings.Contains(lead, " ") {
			return indentUnit{}, &LexError{Line: ln.number, Column: 1, Msg: "indentation mixes tabs and spaces"}
		}
		if lead[0] == '\t' {
			return indentUnit{char: '\t', width: 1}, nil
		}
		switch w := len(lead); {
		case w%4 == 0:
			return indentUnit{char: ' ', width: 4}, nil
		case w%2 == 0:
			return indentUnit{char: ' ', width: 2}, nil
		default:
			return indentUnit{}, &LexError{
				Line:   ln.number,
				Column: 1,
				Msg:    fmt.Sprintf("indentation of %d spaces is not a multiple of 2 or 4", w),
			}
		}
	}
	return indentUnit{}, nil
}

// measure returns the indentation level of a non-blank line and the byte
// width of its indentation.
func (u indentUnit) measure(ln sourceLine) (int, int, error) {
	lead := leadingWhitespace(ln.text)
	if lead == "" {
		return 0, 0, nil
	}
	for i := 0; i < len(lead); i++ {
		if lead[i] != u.char {
			return 0, 0, &LexError{
				Line:   ln.number,
				Column: i + 1,
				Msg:    fmt.Sprintf("inconsistent indentation, document is indented with %s", u),
			}
		}
	}
	if len(lead)%u.width != 0 {
		return 0, 0, &LexError{
			Line:   ln.number,
			Column: 1,
			Msg:    fmt.Sprintf("indentation of %d is not a multiple of %s", len(lead), u),
		}
	}
	level := len(lead) / u.width
	if level > MaxIndentLevel {
		level = MaxIndentLevel
	}
	return level, len(lead), nil
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// Dedent normalizes a docstring copied together with its source
// indentation: the first line is stripped of leading whitespace and the
// smallest indentation shared by the remaining non-blank lines is removed
// from each of them. Blank lines at both ends are dropped.
//
// When the first line is a section header and no header sits at the shared
// indentation, the remaining lines belong to that header, so one
// indentation unit of the margin is kept.
func Dedent(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return text
	}

	lines[0] = strings.TrimLeft(lines[0], " \t")
	margin := commonMargin(lines[1:])
	if margin > 0 && isHeaderLine(lines[0]) && !headerAtWidth(lines[1:], margin) {
		margin -= bodyUnitWidth(lines[1:], margin)
	}

	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " \t")
			}
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func commonMargin(lines []string) int {
	margin := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		if w := len(leadingWhitespace(ln)); margin < 0 || w < margin {
			margin = w
		}
	}
	return margin
}

// isHeaderLine reports whether s, without its indentation, is a keyword
// followed by a colon and nothing else.
func isHeaderLine(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ":") && sectionKeywords[strings.TrimSpace(strings.TrimSuffix(s, ":"))]
}

func headerAtWidth(lines []string, width int) bool {
	for _, ln := range lines {
		if strings.TrimSpace(ln) != "" && len(leadingWhitespace(ln)) == width && isHeaderLine(ln) {
			return true
		}
	}
	return false
}

// bodyUnitWidth estimates the width of one indentation level in lines whose
// shallowest indentation is margin: the smallest step between two
// indentation widths, or the unit margin itself would be measured with.
func bodyUnitWidth(lines []string, margin int) int {
	step := 0
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		if d := len(leadingWhitespace(ln)) - margin; d > 0 && (step == 0 || d < step) {
			step = d
		}
	}
	if step > 0 && step <= margin {
		return step
	}

	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lead := leadingWhitespace(ln)
		switch {
		case lead[0] == '\t':
			return 1
		case margin%4 == 0:
			return 4
		default:
			return 2
		}
	}
	return margin
}
