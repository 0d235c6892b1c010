// Package gemoji merges keywords from GitHub's gemoji database into emoji
// records.
//
// The gemoji database (https://github.com/github/gemoji, db/emoji.json) lists
// aliases and tags for emoji. Records are matched by their glyph; the union of
// aliases and tags becomes the record's keywords.
package gemoji

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/unisearch"
)

// tracer traces to unisearch.etl .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.etl")
}

// Entry is an entry of the gemoji database.
type Entry struct {
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
	Tags        []string `json:"tags"`
}

// Keywords returns the de-duplicated union of aliases and tags, sorted.
// The result is nil if the entry has neither.
func (e Entry) Keywords() []string {
	set := treeset.NewWithStringComparator()
	for _, a := range e.Aliases {
		set.Add(a)
	}
	for _, t := range e.Tags {
		set.Add(t)
	}
	if set.Empty() {
		return nil
	}
	keywords := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		keywords = append(keywords, v.(string))
	}
	return keywords
}

// Load decodes a gemoji database.
func Load(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding gemoji data: %w", err)
	}
	return entries, nil
}

// Miss is a record without a gemoji entry.
type Miss struct {
	Index int // index of the record
	Glyph string
}

// Report summarizes a merge.
type Report struct {
	Merged int     // records with a matching entry
	Misses []Miss  // records left unchanged
	Unused []Entry // entries without a matching record, dropped
}

// Merge sets the keywords of records from matching gemoji entries. Records are
// matched by exact equality of glyph and entry emoji. Keywords of matched records
// are overwritten, even by an empty set. Records without an entry are left
// unchanged.
func Merge(records []unisearch.RawRecord, entries []Entry) Report {
	var report Report
	byGlyph := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, dup := byGlyph[e.Emoji]; !dup {
			byGlyph[e.Emoji] = i
		}
	}
	used := make([]bool, len(entries))
	for i := range records {
		j, ok := byGlyph[records[i].Glyph]
		if !ok {
			report.Misses = append(report.Misses, Miss{Index: i, Glyph: records[i].Glyph})
			tracer().P("codepoints", records[i].Codepoints.String()).
				Debugf("no gemoji entry for %s", records[i].Glyph)
			continue
		}
		records[i].Keywords = entries[j].Keywords()
		used[j] = true
		report.Merged++
	}
	for j, e := range entries {
		if !used[j] {
			report.Unused = append(report.Unused, e)
			tracer().Infof("gemoji entry %s (%s) matches no record", e.Emoji, e.Description)
		}
	}
	tracer().Infof("gemoji: merged %d records, %d without entry, %d entries unused",
		report.Merged, len(report.Misses), len(report.Unused))
	return report
}
