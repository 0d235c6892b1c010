package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/predicate"
)

// RowPredicate decides if a record is visible.
type RowPredicate func(rec *unisearch.Record) bool

// FilterFunc compiles a header filter value into a row predicate.
type FilterFunc func(value string) RowPredicate

// CompareFunc orders records; it returns a negative number if a < b, a
// positive number if a > b and 0 otherwise.
type CompareFunc func(a, b *unisearch.Record) int

// ValueFunc extracts a cell value from a record.
type ValueFunc func(rec *unisearch.Record) string

// Column describes a column of the grid: how to filter, sort and display it.
type Column struct {
	Field   string      // name of the column in the query string
	Title   string      // header title
	Value   ValueFunc   // plain cell value
	Filter  FilterFunc  // nil for columns without header filter
	Compare CompareFunc // nil for columns which cannot be sorted
	Format  ValueFunc   // formatted cell value; Value if nil
	Tags    bool        // filter values are tag filters, evaluated by the tag index
}

// Filterable is true if a header filter may be set for the column.
func (col Column) Filterable() bool {
	return col.Filter != nil || col.Tags
}

// Sortable is true if the column can be sorted.
func (col Column) Sortable() bool {
	return col.Compare != nil
}

// Cell returns the formatted value of the column for rec.
func (col Column) Cell(rec *unisearch.Record) string {
	if col.Format != nil {
		return col.Format(rec)
	}
	if col.Value != nil {
		return col.Value(rec)
	}
	return ""
}

// --- Filters ---------------------------------------------------------------

// TextFilter matches header filters against one or more strings of a record,
// using the matching modes of package predicate.
func TextFilter(values func(rec *unisearch.Record) []string) FilterFunc {
	return func(value string) RowPredicate {
		m := predicate.Compile(value)
		if m.Mode() == predicate.PassThrough {
			return nil
		}
		return func(rec *unisearch.Record) bool {
			return m.Match(values(rec)...)
		}
	}
}

// FieldFilter is a TextFilter on a single value.
func FieldFilter(value ValueFunc) FilterFunc {
	return TextFilter(func(rec *unisearch.Record) []string {
		return []string{value(rec)}
	})
}

// EqualFilter matches records whose value equals the filter value.
func EqualFilter(value ValueFunc) FilterFunc {
	return func(v string) RowPredicate {
		if v == "" {
			return nil
		}
		return func(rec *unisearch.Record) bool {
			return predicate.Equal(v, value(rec))
		}
	}
}

// HasValueFilter is a filter for flag-like columns, see predicate.HasValue.
func HasValueFilter(value ValueFunc) FilterFunc {
	return func(v string) RowPredicate {
		if v != "true" && v != "false" {
			return nil
		}
		return func(rec *unisearch.Record) bool {
			return predicate.HasValue(v, value(rec))
		}
	}
}

// --- Comparators -----------------------------------------------------------

// StringCompare compares case-insensitively.
func StringCompare(value ValueFunc) CompareFunc {
	return func(a, b *unisearch.Record) int {
		return strings.Compare(strings.ToLower(value(a)), strings.ToLower(value(b)))
	}
}

// VersionCompare compares version labels like "13.1" numerically.
func VersionCompare(value ValueFunc) CompareFunc {
	return func(a, b *unisearch.Record) int {
		return compareVersions(value(a), value(b))
	}
}

func compareVersions(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) || i < len(pb); i++ {
		var sa, sb string
		if i < len(pa) {
			sa = pa[i]
		}
		if i < len(pb) {
			sb = pb[i]
		}
		na, erra := strconv.Atoi(sa)
		nb, errb := strconv.Atoi(sb)
		if erra != nil || errb != nil {
			if c := strings.Compare(sa, sb); c != 0 {
				return c
			}
			continue
		}
		if na != nb {
			return na - nb
		}
	}
	return 0
}

// OrderCompare compares records by ingestion order.
func OrderCompare(a, b *unisearch.Record) int {
	return a.Order - b.Order
}

// --- Column presets --------------------------------------------------------

// TagsField is the field of the tags column.
const TagsField = "tags"

// CharInfoURL links to a character's page at fileformat.info.
func CharInfoURL(codepoint string) string {
	return fmt.Sprintf("https://www.fileformat.info/info/unicode/char/%s/index.htm",
		strings.ToLower(codepoint))
}

func codepoints(rec *unisearch.Record) string  { return rec.Codepoints.String() }
func glyph(rec *unisearch.Record) string       { return rec.Glyph }
func description(rec *unisearch.Record) string { return rec.Description }
func group(rec *unisearch.Record) string       { return rec.Group }
func subgroup(rec *unisearch.Record) string    { return rec.Subgroup }
func version(rec *unisearch.Record) string     { return rec.Version }
func keywords(rec *unisearch.Record) string    { return strings.Join(rec.Keywords, ", ") }
func tags(rec *unisearch.Record) string        { return strings.Join(rec.Tags, " ") }

func qualification(rec *unisearch.Record) string {
	return string(rec.Qualification)
}

func tagsColumn() Column {
	return Column{Field: TagsField, Title: "Tags", Value: tags, Tags: true}
}

// EmojiColumns are the columns of the emoji browser.
func EmojiColumns() []Column {
	return []Column{
		{Field: "codepoints", Title: "Codepoints", Value: codepoints,
			Filter: FieldFilter(codepoints), Compare: StringCompare(codepoints)},
		{Field: "emoji", Title: "Emoji", Value: glyph,
			Filter: EqualFilter(glyph), Compare: OrderCompare},
		{Field: "description", Title: "Description", Value: description,
			Filter: TextFilter(func(rec *unisearch.Record) []string {
				return append([]string{rec.Description}, rec.Keywords...)
			}),
			Compare: StringCompare(description)},
		{Field: "group", Title: "Group", Value: group,
			Filter: FieldFilter(group), Compare: StringCompare(group)},
		{Field: "subgroup", Title: "Subgroup", Value: subgroup,
			Filter: FieldFilter(subgroup), Compare: StringCompare(subgroup)},
		{Field: "qualification", Title: "Qualification", Value: qualification,
			Filter: FieldFilter(qualification), Compare: StringCompare(qualification)},
		{Field: "version", Title: "Version", Value: version,
			Filter: FieldFilter(version), Compare: VersionCompare(version)},
		{Field: "keywords", Title: "Keywords", Value: keywords,
			Filter: HasValueFilter(keywords)},
		tagsColumn(),
	}
}

// UnicodeColumns are the columns of the Unicode character browser.
func UnicodeColumns() []Column {
	return []Column{
		{Field: "code", Title: "Codepoint", Value: codepoints,
			Filter: FieldFilter(codepoints), Compare: StringCompare(codepoints)},
		{Field: "example", Title: "Example", Value: glyph,
			Filter: EqualFilter(glyph)},
		{Field: "block", Title: "Block", Value: group,
			Filter: FieldFilter(group), Compare: StringCompare(group)},
		{Field: "category", Title: "Category", Value: subgroup,
			Filter: FieldFilter(subgroup), Compare: StringCompare(subgroup)},
		{Field: "age", Title: "Version", Value: version,
			Filter: FieldFilter(version), Compare: VersionCompare(version)},
		{Field: "name", Title: "Name", Value: description,
			Filter: FieldFilter(description), Compare: StringCompare(description),
			Format: func(rec *unisearch.Record) string {
				return fmt.Sprintf("%s <%s>", rec.Description, CharInfoURL(rec.Codepoints.String()))
			}},
		tagsColumn(),
	}
}
