package predicate

import (
	"strings"
)

// ExcludePrefix marks a tag token as an exclusion.
const ExcludePrefix = "!"

// Tokens splits a tag filter value on runs of spaces and commas.
func Tokens(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == ','
	})
}

// TagFilter is a compiled tag filter.
type TagFilter struct {
	Include []string // tags a record must carry
	Exclude []string // tags a record must not carry
}

// CompileTags creates a tag filter from a filter value.
func CompileTags(v string) TagFilter {
	var f TagFilter
	for _, tok := range Tokens(v) {
		if strings.HasPrefix(tok, ExcludePrefix) {
			f.Exclude = append(f.Exclude, tok[len(ExcludePrefix):])
		} else {
			f.Include = append(f.Include, tok)
		}
	}
	return f
}

// Empty is true for filters without tokens, which match every record.
func (f TagFilter) Empty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Match checks a record's tags, given as a membership test.
func (f TagFilter) Match(has func(tag string) bool) bool {
	for _, tag := range f.Include {
		if !has(tag) {
			return false
		}
	}
	for _, tag := range f.Exclude {
		if has(tag) {
			return false
		}
	}
	return true
}

// MatchTags matches a list of tags against tag filter value v.
func MatchTags(v string, tags []string) bool {
	return CompileTags(v).Match(func(tag string) bool {
		for _, t := range tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}
