package grid

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/predicate"
)

// TagIndex maps tags to the set of record positions carrying them.
// Positions are indices into the record slice the index has been built from.
type TagIndex struct {
	tags map[string]*roaring.Bitmap
	all  *roaring.Bitmap
}

// NewTagIndex indexes the tags of records.
func NewTagIndex(records []unisearch.Record) *TagIndex {
	ix := &TagIndex{
		tags: make(map[string]*roaring.Bitmap),
		all:  roaring.New(),
	}
	for i := range records {
		pos := uint32(i)
		ix.all.Add(pos)
		for _, tag := range records[i].Tags {
			bm, ok := ix.tags[tag]
			if !ok {
				bm = roaring.New()
				ix.tags[tag] = bm
			}
			bm.Add(pos)
		}
	}
	return ix
}

// Len is the number of indexed records.
func (ix *TagIndex) Len() int {
	return int(ix.all.GetCardinality())
}

// Count returns the number of records carrying tag.
func (ix *TagIndex) Count(tag string) int {
	if bm, ok := ix.tags[tag]; ok {
		return int(bm.GetCardinality())
	}
	return 0
}

// Tags returns all indexed tags, sorted.
func (ix *TagIndex) Tags() []string {
	tags := make([]string, 0, len(ix.tags))
	for t := range ix.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Select returns the positions of all records matching a tag filter: every
// included tag must be present, no excluded tag may be present.
func (ix *TagIndex) Select(f predicate.TagFilter) *roaring.Bitmap {
	result := ix.all.Clone()
	for _, tag := range f.Include {
		bm, ok := ix.tags[tag]
		if !ok {
			return roaring.New()
		}
		result.And(bm)
	}
	for _, tag := range f.Exclude {
		if bm, ok := ix.tags[tag]; ok {
			result.AndNot(bm)
		}
	}
	return result
}
