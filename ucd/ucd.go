/*
Package ucd builds the Unicode character dataset from the Unicode Character
Database.

Three UCD files contribute to a record:

  UnicodeData.txt   code-point, character name and general category
  Blocks.txt        the block a code-point belongs to
  DerivedAge.txt    the Unicode version a code-point was assigned in

Records map to the common record format as

  codepoints  = code-point
  emoji       = the character itself
  description = character name (Unicode 1.0 name for control characters)
  group       = block
  subgroup    = general category, spelled out
  version     = age

Ranges of code-points sharing a name pattern (CJK ideographs, Hangul syllables,
private use areas, etc.) are listed by UnicodeData.txt as "<…, First>" and
"<…, Last>" pairs. They are not expanded.
*/
package ucd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/internal/ucdparse"
)

// tracer traces to unisearch.etl .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.etl")
}

// Sources are the UCD files to read. UnicodeData is required, the others may
// be nil.
type Sources struct {
	UnicodeData io.Reader
	Blocks      io.Reader
	DerivedAge  io.Reader
}

// Diagnostic is a malformed data line.
type Diagnostic struct {
	File string
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %v", d.File, d.Line, d.Err)
}

// Report summarizes the outcome of Load.
type Report struct {
	Records       int
	SkippedRanges int          // "<…, First>".."<…, Last>" pairs not expanded
	Malformed     []Diagnostic // dropped lines
}

// Load reads the UCD sources and returns one raw record per assigned
// code-point listed individually in UnicodeData.txt, in file order.
func Load(src Sources) ([]unisearch.RawRecord, Report, error) {
	var report Report
	if src.UnicodeData == nil {
		return nil, report, fmt.Errorf("no UnicodeData.txt input present")
	}
	blocks, err := loadRanges("Blocks.txt", src.Blocks, &report)
	if err != nil {
		return nil, report, err
	}
	ages, err := loadRanges("DerivedAge.txt", src.DerivedAge, &report)
	if err != nil {
		return nil, report, err
	}
	var records []unisearch.RawRecord
	err = ucdparse.Parse(src.UnicodeData, func(token *ucdparse.Token) {
		if token.Error != nil {
			report.Malformed = append(report.Malformed,
				Diagnostic{File: "UnicodeData.txt", Line: token.LineNo, Err: token.Error})
			return
		}
		name := token.Field(1)
		if strings.HasPrefix(name, "<") && strings.HasSuffix(name, ", First>") {
			report.SkippedRanges++
			return
		}
		if strings.HasPrefix(name, "<") && strings.HasSuffix(name, ", Last>") {
			return
		}
		if name == "<control>" && token.Field(10) != "" {
			name = token.Field(10)
		}
		r, _ := token.Range()
		records = append(records, unisearch.RawRecord{
			Codepoints:  unisearch.Codepoints{fmt.Sprintf("%04X", r)},
			Glyph:       string(r),
			Description: name,
			Version:     ages.lookup(r),
			Group:       blocks.lookup(r),
			Subgroup:    CategoryName(token.Field(2)),
		})
	})
	if err != nil {
		return nil, report, fmt.Errorf("reading UnicodeData.txt: %w", err)
	}
	report.Records = len(records)
	tracer().Infof("UCD: %d characters, %d ranges skipped, %d malformed lines",
		report.Records, report.SkippedRanges, len(report.Malformed))
	return records, report, nil
}

// --- Range lookup ----------------------------------------------------------

type rangeValue struct {
	from, to rune
	value    string
}

// rangeTable is a list of code-point ranges, sorted by lower bound.
type rangeTable []rangeValue

func loadRanges(file string, r io.Reader, report *Report) (rangeTable, error) {
	if r == nil {
		return nil, nil
	}
	var table rangeTable
	err := ucdparse.Parse(r, func(token *ucdparse.Token) {
		if token.Error != nil || token.Field(1) == "" {
			err := token.Error
			if err == nil {
				err = fmt.Errorf("missing value")
			}
			report.Malformed = append(report.Malformed,
				Diagnostic{File: file, Line: token.LineNo, Err: err})
			return
		}
		from, to := token.Range()
		table = append(table, rangeValue{from: from, to: to, value: token.Field(1)})
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	sort.Slice(table, func(i, j int) bool { return table[i].from < table[j].from })
	return table, nil
}

func (t rangeTable) lookup(r rune) string {
	i := sort.Search(len(t), func(i int) bool { return t[i].to >= r })
	if i < len(t) && t[i].from <= r {
		return t[i].value
	}
	return ""
}

// --- General categories ----------------------------------------------------

var categoryNames = map[string]string{
	"Lu": "Uppercase Letter",
	"Ll": "Lowercase Letter",
	"Lt": "Titlecase Letter",
	"Lm": "Modifier Letter",
	"Lo": "Other Letter",
	"Mn": "Nonspacing Mark",
	"Mc": "Spacing Mark",
	"Me": "Enclosing Mark",
	"Nd": "Decimal Number",
	"Nl": "Letter Number",
	"No": "Other Number",
	"Pc": "Connector Punctuation",
	"Pd": "Dash Punctuation",
	"Ps": "Open Punctuation",
	"Pe": "Close Punctuation",
	"Pi": "Initial Punctuation",
	"Pf": "Final Punctuation",
	"Po": "Other Punctuation",
	"Sm": "Math Symbol",
	"Sc": "Currency Symbol",
	"Sk": "Modifier Symbol",
	"So": "Other Symbol",
	"Zs": "Space Separator",
	"Zl": "Line Separator",
	"Zp": "Paragraph Separator",
	"Cc": "Control",
	"Cf": "Format",
	"Cs": "Surrogate",
	"Co": "Private Use",
	"Cn": "Unassigned",
}

// CategoryName spells out a general category abbreviation, e.g. "Lu" as
// "Uppercase Letter". Unknown abbreviations are returned unchanged.
func CategoryName(gc string) string {
	if name, ok := categoryNames[gc]; ok {
		return name
	}
	return gc
}
