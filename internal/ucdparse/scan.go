package ucdparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// --- Line level scanner ----------------------------------------------------

// Scanner is a line-level scanner for UCD files.
//
// Our line-level scanner will operate by calling scanning steps in a chain, iteratively.
// Each step function consumes a prefix of the line remainder and then possibly branches
// out to a subsequent step function.
//
type Scanner struct {
	lines  *bufio.Scanner
	lineno int
	Token  *Token // last token produced by scanner
	err    error  // reader error, if any
}

// We're buiding up a scanner from chains of scanner step functions.
// Tokens may be modified by a step function.
// A scanner step will return the unconsumed part of the line and the next step
// in the chain, or nil to stop/accept.
//
type scannerStep func(token *Token, rest string) (string, scannerStep)

// New creates a scanner for an input reader.
func New(inputReader io.Reader) (*Scanner, error) {
	if inputReader == nil {
		return nil, errors.New("no input present")
	}
	sc := &Scanner{lines: bufio.NewScanner(inputReader)}
	return sc, nil
}

// Parse iterates over each data line of the data file and calls callback f on it.
// Tokens for malformed lines carry an error; they are passed to f nevertheless.
// The return value is the error of the input reader, if any.
func Parse(r io.Reader, f func(token *Token)) error {
	sc, err := New(r)
	if err != nil {
		return err
	}
	for sc.Next() {
		f(sc.Token)
	}
	return sc.Err()
}

// Next is called to receive the next line-level token. A token
// subsumes the properties of a data line of UCD input.
//
// Next iterates over a chain of step functions until it reaches an
// accepting state. Acceptance is signalled by getting a nil-step return value from a
// step function, meaning there is no further step applicable in this chain.
//
// If a step function flags an error in the token, the chaining stops as well and
// the token is returned with its Error set.
//
func (sc *Scanner) Next() bool {
	for sc.lines.Scan() {
		sc.lineno++
		line := strings.TrimSpace(sc.lines.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		sc.Token = newToken(sc.lineno)
		rest, step := line, scannerStep(scanRuneRange)
		for step != nil && sc.Token.Error == nil {
			rest, step = step(sc.Token, rest)
		}
		if sc.Token.Error != nil {
			tracer().P("line", sc.lineno).Debugf("%v", sc.Token.Error)
		}
		return true
	}
	if err := sc.lines.Err(); err != nil {
		sc.err = fmt.Errorf("reading UCD input at line %d: %w", sc.lineno+1, err)
	}
	return false
}

// Err returns the error of the input reader, if any.
func (sc *Scanner) Err() error {
	return sc.err
}

// scanRuneRange matches a single code-point or a range of code-points
//
//    XXXX
//    XXXX..YYYY
//
func scanRuneRange(token *Token, rest string) (string, scannerStep) {
	end := strings.IndexAny(rest, ";#")
	if end < 0 {
		end = len(rest)
	}
	cp := strings.TrimSpace(rest[:end])
	from, to := cp, cp
	if i := strings.Index(cp, ".."); i >= 0 {
		from, to = cp[:i], cp[i+2:]
	}
	var err error
	if token.runeFrom, err = parseHex(from); err != nil {
		token.Error = err
		return rest, nil
	}
	if token.runeTo, err = parseHex(to); err != nil {
		token.Error = err
		return rest, nil
	}
	if token.runeTo < token.runeFrom {
		token.Error = fmt.Errorf("invalid range %s", cp)
		return rest, nil
	}
	return rest[end:], scanItemBody
}

// scanItemBody splits the line remainder into fields and comment.
func scanItemBody(token *Token, rest string) (string, scannerStep) {
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		token.Comment = strings.TrimSpace(rest[i+1:])
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, ";")
	for _, f := range strings.Split(rest, ";") {
		token.Fields = append(token.Fields, strings.TrimSpace(f))
	}
	return "", nil
}

func parseHex(hex string) (rune, error) {
	if hex == "" {
		return 0, errors.New("missing code-point")
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("hex decoding error: %w", err)
	}
	return rune(n), nil
}
