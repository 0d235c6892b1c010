package tagtoggle

import (
	"sort"
	"testing"

	"github.com/npillmayer/unisearch/predicate"
)

func TestToggleFromEmpty(t *testing.T) {
	if v := Toggle("", "flag"); v != "flag" {
		t.Errorf("expected 'flag', have %q", v)
	}
	if v := Toggle(" , ", "flag"); v != "flag" {
		t.Errorf("expected 'flag' for blank filter, have %q", v)
	}
}

func TestToggle(t *testing.T) {
	var tests = []struct {
		current, tag, next string
	}{
		{"a", "b", "a b"},
		{"a,b", "b", "a"},
		{"a  b,c", "b", "a c"},
		{"a", "a", ""},
		{"a b a", "a", "b"},
		{"!a", "a", "!a a"},
		{"a b", "", "a b"},
	}
	for _, test := range tests {
		if v := Toggle(test.current, test.tag); v != test.next {
			t.Errorf("Toggle(%q, %q) = %q, expected %q", test.current, test.tag, v, test.next)
		}
	}
}

func TestToggleSelfInverse(t *testing.T) {
	starts := []string{"", "a", "a b", "b,c", "skin-tone medium", "!x y"}
	tags := []string{"a", "b", "medium", "z", "!x"}
	for _, start := range starts {
		for _, tag := range tags {
			twice := Toggle(Toggle(start, tag), tag)
			if !sameSet(predicate.Tokens(start), predicate.Tokens(twice)) {
				t.Errorf("toggling %q twice on %q yields %q", tag, start, twice)
			}
		}
	}
}

func sameSet(a, b []string) bool {
	set := func(l []string) []string {
		m := make(map[string]bool)
		var out []string
		for _, s := range l {
			if !m[s] {
				m[s] = true
				out = append(out, s)
			}
		}
		sort.Strings(out)
		return out
	}
	sa, sb := set(a), set(b)
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
