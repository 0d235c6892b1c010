/* Package ucdparse provides a parser for Unicode Character Database files.

Package ucdparse provides a parser for Unicode Character Database files, the
format of which is defined in http://www.unicode.org/reports/tr44/. See
http://www.unicode.org/Public/UCD/latest/ucd/ for example files.

Data lines start with a single code-point or a range of code-points, followed
by semicolon-separated fields and an optional comment:

   0000..007F; Basic Latin
   0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;
   0000..001F    ; 1.1 #  [32] <control-0000>..<control-001F>

Blank lines and lines starting with '#' are skipped.
*/
package ucdparse

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to unisearch.etl .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.etl")
}

// Token subsumes the properties of a data line of UCD input.
type Token struct {
	LineNo   int      // line number of the data item within the input source
	runeFrom rune     // first/single rune
	runeTo   rune     // final rune of range (may be identical to runeFrom)
	Fields   []string // fields following the code-point (range), trimmed
	Comment  string   // rest-of-line comment
	Error    error    // error condition, if any
}

func newToken(line int) *Token {
	return &Token{
		LineNo: line,
		Fields: []string{},
	}
}

func (token *Token) String() string {
	return fmt.Sprintf("token[at %d %#U..%#U %#v]", token.LineNo,
		token.runeFrom, token.runeTo, token.Fields)
}

// Field gets field #i (1…n) from the current data item, i.e. the i-th field
// after the code-point range.
func (token *Token) Field(i int) string {
	if i > 0 && i <= len(token.Fields) {
		return token.Fields[i-1]
	}
	return ""
}

// Range gets the character range from the current data item.
func (token *Token) Range() (from, to rune) {
	return token.runeFrom, token.runeTo
}

// IsRange is true if the data item covers more than a single code-point.
func (token *Token) IsRange() bool {
	return token.runeTo > token.runeFrom
}
