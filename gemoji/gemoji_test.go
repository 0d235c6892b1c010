package gemoji

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/emojitest"
	"github.com/npillmayer/unisearch/internal/testdata"
)

func TestMergeGrinning(t *testing.T) {
	records := []unisearch.RawRecord{
		{Codepoints: unisearch.Codepoints{"1F600"}, Glyph: "😀", Description: "grinning face"},
	}
	entries := []Entry{{Emoji: "😀", Aliases: []string{"grinning"}, Tags: []string{"happy"}}}
	report := Merge(records, entries)
	if report.Merged != 1 {
		t.Fatalf("expected 1 merged record, have %d", report.Merged)
	}
	kw := records[0].Keywords
	if len(kw) != 2 || kw[0] != "grinning" || kw[1] != "happy" {
		t.Errorf("expected keywords [grinning happy], have %v", kw)
	}
}

func TestMergeOverwritesAndEmpty(t *testing.T) {
	records := []unisearch.RawRecord{
		{Glyph: "😀", Keywords: []string{"old"}},
		{Glyph: "\u263A\uFE0F", Keywords: []string{"stale"}},
		{Glyph: "🙂"},
	}
	entries := []Entry{
		{Emoji: "😀", Aliases: []string{"grinning", "smile"}, Tags: []string{"smile"}},
		{Emoji: "\u263A\uFE0F"},
	}
	report := Merge(records, entries)
	if kw := records[0].Keywords; len(kw) != 2 || kw[0] != "grinning" || kw[1] != "smile" {
		t.Errorf("expected keywords to be overwritten and de-duplicated, have %v", kw)
	}
	if records[1].Keywords != nil {
		t.Errorf("expected empty union to leave keywords unset, have %v", records[1].Keywords)
	}
	if len(report.Misses) != 1 || report.Misses[0].Index != 2 {
		t.Errorf("expected record #2 to be a miss, have %v", report.Misses)
	}
	if records[2].Keywords != nil {
		t.Errorf("expected missed record to be unchanged")
	}
}

func TestMergeTestFiles(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	r, err := testdata.Reader("emoji-test.txt")
	if err != nil {
		t.Fatal(err)
	}
	records, _ := emojitest.ParseAll(r)
	g, err := testdata.Reader("gemoji.json")
	if err != nil {
		t.Fatal(err)
	}
	entries, err := Load(g)
	if err != nil {
		t.Fatal(err)
	}
	report := Merge(records, entries)
	if report.Merged != 4 {
		t.Errorf("expected 4 merged records, have %d", report.Merged)
	}
	if len(report.Unused) != 1 || report.Unused[0].Description != "unicorn" {
		t.Errorf("expected the unicorn to be unused, have %v", report.Unused)
	}
	if kw := records[5].Keywords; len(kw) != 2 || kw[0] != "goodbye" || kw[1] != "wave" {
		t.Errorf("expected waving hand keywords [goodbye wave], have %v", kw)
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"emoji":`)); err == nil {
		t.Errorf("expected invalid JSON to be an error")
	}
}
