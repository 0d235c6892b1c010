// Package tagtoggle computes the next tag filter when a user clicks on a tag
// chip: clicking a tag adds it to the filter, clicking it again removes it.
package tagtoggle

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/unisearch/predicate"
)

// Toggle returns the tag filter value after a click on tag, given the current
// filter value. Tokens of the current value are split as for tag filters and
// rejoined with single spaces. Toggle never produces exclusion tokens.
func Toggle(current, tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return current
	}
	tokens := predicate.Tokens(current)
	if len(tokens) == 0 {
		return tag
	}
	list := arraylist.New()
	for _, tok := range tokens {
		list.Add(tok)
	}
	if i, _ := list.Find(func(_ int, v interface{}) bool { return v == tag }); i >= 0 {
		list = list.Select(func(_ int, v interface{}) bool { return v != tag })
	} else {
		list.Add(tag)
	}
	out := make([]string, 0, list.Size())
	for _, v := range list.Values() {
		out = append(out, v.(string))
	}
	return strings.Join(out, " ")
}
