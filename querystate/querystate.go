/*
Package querystate maps the filter and sort state of a search view to and
from a URL query string, making a view shareable and bookmarkable.

The keys "sort" and "dir" are reserved for the sort state; every other key
names a column and carries the column's filter value:

   ?description=cat&tags=animal-mammal&sort=emoji&dir=desc

The query string is read once when a view is loaded and replaced (not
appended to, as in browser history navigation) after every change.
*/
package querystate

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to unisearch.search .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.search")
}

// Reserved query keys.
const (
	SortKey = "sort"
	DirKey  = "dir"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection returns Desc for exactly "desc" and Asc for anything else.
func ParseDirection(s string) Direction {
	if s == string(Desc) {
		return Desc
	}
	return Asc
}

// FilterState maps column fields to filter values.
type FilterState map[string]string

// SortState is the active sort. An empty Field means the default order.
type SortState struct {
	Field string
	Dir   Direction
}

// State is the combined filter and sort state of a view.
type State struct {
	Filters FilterState
	Sort    SortState
}

// Decode reconstructs a state from query values. Only the first value of a
// key is used; keys with empty values are ignored.
func Decode(q url.Values) State {
	st := State{Filters: FilterState{}, Sort: SortState{Dir: Asc}}
	for key, values := range q {
		if key == "" || len(values) == 0 {
			continue
		}
		switch key {
		case SortKey:
			st.Sort.Field = values[0]
		case DirKey:
			st.Sort.Dir = ParseDirection(values[0])
		default:
			if values[0] != "" {
				st.Filters[key] = values[0]
			}
		}
	}
	return st
}

// Encode builds query values from a state: one entry per non-empty filter,
// plus sort and dir if a sort field is set.
func Encode(st State) url.Values {
	q := url.Values{}
	for field, value := range st.Filters {
		if field == "" || value == "" || field == SortKey || field == DirKey {
			continue
		}
		q.Set(field, value)
	}
	if st.Sort.Field != "" {
		q.Set(SortKey, st.Sort.Field)
		dir := st.Sort.Dir
		if dir != Desc {
			dir = Asc
		}
		q.Set(DirKey, string(dir))
	}
	return q
}

// Parse decodes a textual query string, with or without a leading '?'.
func Parse(raw string) (State, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Decode(q), fmt.Errorf("query string %q: %w", raw, err)
	}
	return Decode(q), nil
}

// String encodes the state as a query string, keys in sorted order.
func (st State) String() string {
	return Encode(st).Encode()
}

// Fields returns the fields with an active filter, sorted.
func (st State) Fields() []string {
	fields := make([]string, 0, len(st.Filters))
	for f, v := range st.Filters {
		if v != "" {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)
	return fields
}

// Equal compares two states. Empty filter values count as absent.
func (st State) Equal(other State) bool {
	return st.String() == other.String()
}

// With returns a copy of st with the filter for field set to value. An empty
// value removes the filter.
func (st State) With(field, value string) State {
	next := st.clone()
	if value == "" {
		delete(next.Filters, field)
	} else {
		next.Filters[field] = value
	}
	return next
}

// WithSort returns a copy of st with a new sort state.
func (st State) WithSort(field string, dir Direction) State {
	next := st.clone()
	next.Sort = SortState{Field: field, Dir: ParseDirection(string(dir))}
	return next
}

func (st State) clone() State {
	next := State{Filters: make(FilterState, len(st.Filters)+1), Sort: st.Sort}
	for f, v := range st.Filters {
		next.Filters[f] = v
	}
	return next
}
