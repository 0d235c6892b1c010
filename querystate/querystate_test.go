package querystate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	st := State{
		Filters: FilterState{"description": "cat"},
		Sort:    SortState{Field: "emoji", Dir: Asc},
	}
	back := Decode(Encode(st))
	assert.Equal(t, st.Filters, back.Filters)
	assert.Equal(t, st.Sort, back.Sort)

	parsed, err := Parse("?" + st.String())
	require.NoError(t, err)
	assert.Equal(t, st.Filters, parsed.Filters)
	assert.Equal(t, st.Sort, parsed.Sort)
}

func TestDecode(t *testing.T) {
	q, err := url.ParseQuery("description=%2F%5Ecat%2F&tags=a+%21b&empty=&sort=version&dir=DESC")
	require.NoError(t, err)
	st := Decode(q)
	assert.Equal(t, FilterState{"description": "/^cat/", "tags": "a !b"}, st.Filters)
	assert.Equal(t, "version", st.Sort.Field)
	assert.Equal(t, Asc, st.Sort.Dir, "dir is desc only on exact match")

	st = Decode(url.Values{"dir": {"desc"}})
	assert.Equal(t, Desc, st.Sort.Dir)
	assert.Empty(t, st.Sort.Field)
	assert.Empty(t, st.Filters)
}

func TestEncode(t *testing.T) {
	st := State{Filters: FilterState{"group": "Flags", "subgroup": ""}}
	q := Encode(st)
	assert.Equal(t, "group=Flags", q.Encode(), "no sort keys without sort field")

	st = st.WithSort("emoji", Desc)
	assert.Equal(t, "dir=desc&group=Flags&sort=emoji", st.String())
	assert.Equal(t, []string{"group"}, st.Fields())
}

func TestWithDoesNotMutate(t *testing.T) {
	st := State{Filters: FilterState{"a": "1"}}
	next := st.With("b", "2").With("a", "")
	assert.Equal(t, FilterState{"a": "1"}, st.Filters)
	assert.Equal(t, FilterState{"b": "2"}, next.Filters)
	assert.True(t, next.Equal(State{Filters: FilterState{"b": "2", "c": ""}}))
}

func TestCodecMemory(t *testing.T) {
	qs := NewMemoryQueryString("description=face&sort=emoji&dir=desc")
	codec := NewCodec(qs)
	st := codec.Load()
	assert.Equal(t, "face", st.Filters["description"])
	assert.Equal(t, SortState{Field: "emoji", Dir: Desc}, st.Sort)

	again := codec.Load()
	assert.Empty(t, again.Filters, "decode runs once")

	codec.Save(st.With("tags", "flag"))
	assert.Equal(t, 1, qs.Replaced)
	assert.Equal(t, "description=face&dir=desc&sort=emoji&tags=flag", qs.String())

	codec.Save(st.With("description", ""))
	assert.Equal(t, 2, qs.Replaced)
	assert.Equal(t, "dir=desc&sort=emoji", qs.String(), "replace, not append")
}

func TestCodecURL(t *testing.T) {
	u, err := url.Parse("https://emoji.example.org/?group=Flags")
	require.NoError(t, err)
	codec := NewCodec(URLQueryString{URL: u})
	st := codec.Load()
	assert.Equal(t, "Flags", st.Filters["group"])
	codec.Save(st.WithSort("description", Asc))
	assert.Equal(t, "https://emoji.example.org/?dir=asc&group=Flags&sort=description", u.String())
}
