package predicate

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

var candidates = []string{"", "a", "Grinning Face", "category", "/", "^", "ß"}

func TestPassThrough(t *testing.T) {
	for _, v := range []string{"", "^"} {
		for _, c := range candidates {
			if !Match(v, c) {
				t.Errorf("expected filter %q to match %q", v, c)
			}
		}
		if ModeOf(v) != PassThrough {
			t.Errorf("expected filter %q to be pass-through, is %s", v, ModeOf(v))
		}
	}
}

func TestInvalidRegexFailsClosed(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for i := 0; i < 2; i++ { // second round hits the cache
		m := Compile("/bad(/")
		if m.Mode() != Regex {
			t.Fatalf("expected regex mode, is %s", m.Mode())
		}
		for _, c := range candidates {
			if m.Match(c) {
				t.Errorf("expected invalid regex not to match %q", c)
			}
		}
	}
}

func TestRegex(t *testing.T) {
	descriptions := []string{"category", "concatenate", "dog"}
	expected := []bool{true, false, false}
	for i, d := range descriptions {
		if Match("/^cat/", d) != expected[i] {
			t.Errorf("expected /^cat/ on %q to be %v", d, expected[i])
		}
	}
	if !Match("/FACE$/", "grinning face") {
		t.Errorf("expected regex matching to be case-insensitive")
	}
}

func TestRegexLookaroundAndBackreference(t *testing.T) {
	var tests = []struct {
		v  string
		c  string
		ok bool
	}{
		{"/^(?!dog)/", "cat face with tears", true},
		{"/^(?!dog)/", "dog face", false},
		{"/(a)\\1/", "aa", true},
		{"/(a)\\1/", "ab", false},
		{"/face(?= with)/", "cat face with tears", true},
		{"/face(?= with)/", "cat face", false},
	}
	for _, test := range tests {
		if Match(test.v, test.c) != test.ok {
			t.Errorf("expected filter %q on %q to be %v", test.v, test.c, test.ok)
		}
	}
}

func TestModes(t *testing.T) {
	var tests = []struct {
		v    string
		mode Mode
		c    string
		ok   bool
	}{
		{"g", StartsWith, "Grinning face", true},
		{"f", StartsWith, "grinning face", false},
		{"/", Contains, "a/b", true},
		{"^gr", StartsWith, "GRINNING", true},
		{"^face", StartsWith, "grinning face", false},
		{"face", Contains, "Grinning FACE", true},
		{"xyz", Contains, "grinning face", false},
		{"//", Regex, "anything", true},
		{"/a", Contains, "x/ay", true},
		{"STRASSE", Contains, "Hauptstraße", true},
		{"é", StartsWith, "café", false},
		{"É", StartsWith, "école", true},
		{"猫", StartsWith, "猫 face", true},
		{"猫", StartsWith, "cat 猫", false},
	}
	for _, test := range tests {
		m := Compile(test.v)
		if m.Mode() != test.mode {
			t.Errorf("expected filter %q to select %s, selects %s", test.v, test.mode, m.Mode())
		}
		if m.Match(test.c) != test.ok {
			t.Errorf("expected filter %q on %q to be %v", test.v, test.c, test.ok)
		}
	}
}

func TestAnyCandidate(t *testing.T) {
	m := Compile("happy")
	if !m.Match("grinning face", "smile", "happy") {
		t.Errorf("expected match on any candidate")
	}
	if m.Match() {
		t.Errorf("expected no match without candidates")
	}
	if !Compile("").Match() {
		t.Errorf("expected pass-through without candidates")
	}
}

func TestEqualAndHasValue(t *testing.T) {
	if !Equal("", "😀") || !Equal("😀", "😀") || Equal("😀", "😃") {
		t.Errorf("equality predicate broken")
	}
	if Equal("😀", "😀 ") {
		t.Errorf("equality predicate must not trim")
	}
	if !HasValue("true", "x") || HasValue("true", "") {
		t.Errorf("expected 'true' to match non-empty values only")
	}
	if !HasValue("false", "") || HasValue("false", "x") {
		t.Errorf("expected 'false' to match empty values only")
	}
	if !HasValue("", "") || !HasValue("", "x") {
		t.Errorf("expected absent flag filter to match everything")
	}
}

func TestTagFilter(t *testing.T) {
	if !MatchTags("a !b", []string{"a", "c"}) {
		t.Errorf("expected 'a !b' to match {a,c}")
	}
	if MatchTags("a !b", []string{"a", "b"}) {
		t.Errorf("expected 'a !b' not to match {a,b}")
	}
	if !MatchTags("", []string{"x"}) || !MatchTags("  , ", nil) {
		t.Errorf("expected empty tag filter to match")
	}
	if MatchTags("a,c", []string{"a"}) {
		t.Errorf("expected all inclusions to be required")
	}
	f := CompileTags("a,, !b  c")
	if len(f.Include) != 2 || len(f.Exclude) != 1 || f.Exclude[0] != "b" {
		t.Errorf("unexpected compiled tag filter %+v", f)
	}
}

func TestTokens(t *testing.T) {
	toks := Tokens(" a,b ,, c  ")
	if len(toks) != 3 || toks[0] != "a" || toks[1] != "b" || toks[2] != "c" {
		t.Errorf("expected tokens [a b c], have %v", toks)
	}
}
