/*
Package predicate implements header filters for searching records.

A header filter is a string entered by a user for a column. The shape of the
filter value selects how candidate strings are matched:

   ""          matches everything
   "c"         single character: candidate starts with c
   "^abc"      candidate starts with abc ("^" alone matches everything)
   "/re/"      candidate matches regular expression re
   "abc"       candidate contains abc

Matching is case-insensitive throughout. Regular expressions follow ECMAScript
syntax, including lookaround and backreferences. An invalid regular expression
matches nothing.

Tag filters are lists of tokens, separated by spaces or commas. A record
passes if it carries every plain token as a tag and none of the tokens
prefixed with '!'.
*/
package predicate

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/npillmayer/schuko/tracing"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/text/cases"
)

// tracer traces to unisearch.search .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.search")
}

// Mode is a matching mode, selected by the shape of a filter value.
type Mode int8

// Matching modes.
const (
	PassThrough Mode = iota
	StartsWith
	Regex
	Contains
)

func (m Mode) String() string {
	switch m {
	case PassThrough:
		return "pass-through"
	case StartsWith:
		return "starts-with"
	case Regex:
		return "regex"
	case Contains:
		return "contains"
	}
	return "Mode(?)"
}

// Matcher is a compiled header filter. Matchers are not safe for concurrent use.
type Matcher struct {
	mode   Mode
	needle string          // case-folded search string
	re     *regexp2.Regexp // nil for invalid patterns in Regex mode
	fold   cases.Caser
}

// ModeOf returns the matching mode a filter value selects.
func ModeOf(v string) Mode {
	switch {
	case v == "":
		return PassThrough
	case utf8.RuneCountInString(v) == 1 && v != "^" && v != "/":
		return StartsWith
	case strings.HasPrefix(v, "^"):
		if len(v) == 1 {
			return PassThrough
		}
		return StartsWith
	case len(v) >= 2 && strings.HasPrefix(v, "/") && strings.HasSuffix(v, "/"):
		return Regex
	}
	return Contains
}

// Compile creates a matcher for a filter value.
func Compile(v string) *Matcher {
	m := &Matcher{mode: ModeOf(v), fold: cases.Fold()}
	switch m.mode {
	case StartsWith:
		m.needle = m.fold.String(strings.TrimPrefix(v, "^"))
	case Contains:
		m.needle = m.fold.String(v)
	case Regex:
		m.re = compileRegex(v[1 : len(v)-1])
	}
	return m
}

// Mode returns the matching mode of m.
func (m *Matcher) Mode() Mode {
	return m.mode
}

// Match returns true if any of the candidates satisfies the filter.
// For a pass-through filter, Match is true even without candidates.
func (m *Matcher) Match(candidates ...string) bool {
	switch m.mode {
	case PassThrough:
		return true
	case Regex:
		if m.re == nil {
			return false
		}
		for _, c := range candidates {
			ok, err := m.re.MatchString(c)
			if err != nil {
				tracer().Debugf("filter pattern %q: %v", m.re.String(), err)
				return false
			}
			if ok {
				return true
			}
		}
		return false
	}
	for _, c := range candidates {
		c = m.fold.String(c)
		if m.mode == StartsWith && strings.HasPrefix(c, m.needle) {
			return true
		}
		if m.mode == Contains && strings.Contains(c, m.needle) {
			return true
		}
	}
	return false
}

// Match matches candidates against filter value v.
func Match(v string, candidates ...string) bool {
	return Compile(v).Match(candidates...)
}

// Equal is a direct equality check of filter value and candidate, as used for
// glyph columns. An empty filter value matches everything.
func Equal(v, c string) bool {
	return v == "" || v == c
}

// HasValue is a filter for flag-like columns: "true" matches non-empty
// candidates, "false" matches empty candidates, any other value matches all.
func HasValue(v, c string) bool {
	switch v {
	case "true":
		return c != ""
	case "false":
		return c == ""
	}
	return true
}

// --- Regular expressions ---------------------------------------------------

// Compiled patterns are cached, including invalid ones.
var regexCache = gocache.New(30*time.Minute, 10*time.Minute)

// matchTimeout bounds a single match of a user pattern.
const matchTimeout = 100 * time.Millisecond

type invalidPattern struct {
	err error
}

func compileRegex(pattern string) *regexp2.Regexp {
	if x, found := regexCache.Get(pattern); found {
		if re, ok := x.(*regexp2.Regexp); ok {
			return re
		}
		return nil
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript|regexp2.IgnoreCase)
	if err != nil {
		tracer().Debugf("invalid filter pattern %q: %v", pattern, err)
		regexCache.Set(pattern, invalidPattern{err: err}, gocache.DefaultExpiration)
		return nil
	}
	re.MatchTimeout = matchTimeout
	regexCache.Set(pattern, re, gocache.DefaultExpiration)
	return re
}
