package unisearch

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// TagSet is a sorted list of unique, non-empty tags.
type TagSet []string

// NewTagSet creates a tag set from a list of tags, dropping empty strings and
// duplicates.
func NewTagSet(tags ...string) TagSet {
	set := treeset.NewWithStringComparator()
	for _, t := range tags {
		if t != "" {
			set.Add(t)
		}
	}
	out := make(TagSet, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}

// Contains returns true if tag is a member of the set.
func (ts TagSet) Contains(tag string) bool {
	i := sort.SearchStrings(ts, tag)
	return i < len(ts) && ts[i] == tag
}

// DeriveTag converts a label to the canonical tag format: trimmed, lower case,
// with spaces replaced by hyphens.
func DeriveTag(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "-")
}
