package querystate

import (
	"net/url"
)

// PersistentQueryString is the query string of the current view, e.g. the
// location of a browser window.
type PersistentQueryString interface {
	Read() url.Values
	Replace(url.Values) // replaces the current entry, does not navigate
}

// Codec synchronizes view state with a persistent query string.
type Codec struct {
	qs     PersistentQueryString
	loaded bool
}

// NewCodec creates a codec for a query string.
func NewCodec(qs PersistentQueryString) *Codec {
	return &Codec{qs: qs}
}

// Load decodes the state from the query string. It is meant to be called once,
// when a view is loaded; later calls return the empty state.
func (c *Codec) Load() State {
	if c.loaded {
		return State{Filters: FilterState{}, Sort: SortState{Dir: Asc}}
	}
	c.loaded = true
	st := Decode(c.qs.Read())
	tracer().Debugf("loaded view state %q", st.String())
	return st
}

// Save replaces the query string with the encoding of st.
func (c *Codec) Save(st State) {
	c.loaded = true
	q := Encode(st)
	tracer().Debugf("replacing query string with %q", q.Encode())
	c.qs.Replace(q)
}

// --- Query string adapters -------------------------------------------------

// MemoryQueryString keeps a query string in memory.
type MemoryQueryString struct {
	values   url.Values
	Replaced int // number of calls to Replace
}

// NewMemoryQueryString creates an in-memory query string from a raw query.
func NewMemoryQueryString(raw string) *MemoryQueryString {
	q, _ := url.ParseQuery(raw)
	return &MemoryQueryString{values: q}
}

// Read returns a copy of the current values.
func (m *MemoryQueryString) Read() url.Values {
	return copyValues(m.values)
}

// Replace sets the current values.
func (m *MemoryQueryString) Replace(q url.Values) {
	m.values = copyValues(q)
	m.Replaced++
}

// String returns the encoded query string.
func (m *MemoryQueryString) String() string {
	return m.values.Encode()
}

// URLQueryString operates on the raw query of a URL.
type URLQueryString struct {
	URL *url.URL
}

// Read parses the URL's query.
func (u URLQueryString) Read() url.Values {
	return u.URL.Query()
}

// Replace sets the URL's raw query.
func (u URLQueryString) Replace(q url.Values) {
	u.URL.RawQuery = q.Encode()
}

func copyValues(q url.Values) url.Values {
	c := make(url.Values, len(q))
	for k, v := range q {
		c[k] = append([]string(nil), v...)
	}
	return c
}
