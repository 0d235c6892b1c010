/*
Package grid binds a searchable dataset to a tabular view.

A Grid holds the normalized records of a dataset, a set of columns and the
current filter and sort state. User interaction arrives as events (setting a
header filter, changing the sort, clicking a tag chip, clearing the filters).
After every event the grid evaluates filters and sort, hands the resulting
View to a RenderTarget and stores the new state in the query string, using
package querystate. The query string is decoded exactly once, when the data
is loaded.

Tag filters are evaluated on a bitmap index of record tags.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grid

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/predicate"
	"github.com/npillmayer/unisearch/querystate"
	"github.com/npillmayer/unisearch/tagtoggle"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// tracer traces to unisearch.grid .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.grid")
}

// Errors returned by grid events.
var (
	ErrUnknownField  = errors.New("unknown column")
	ErrNotFilterable = errors.New("column has no header filter")
	ErrNotSortable   = errors.New("column cannot be sorted")
	ErrNoData        = errors.New("dataset reports no success")
)

// DataSource delivers a dataset, e.g. from a file or over HTTP.
type DataSource interface {
	Load(ctx context.Context) (*unisearch.Dataset, error)
}

// RenderTarget displays a view.
type RenderTarget interface {
	Render(view *View) error
}

// Row is a visible record together with its formatted cells.
type Row struct {
	Record *unisearch.Record
	Cells  []string
}

// View is a snapshot of the grid, ready to be rendered.
type View struct {
	Columns []Column
	Rows    []Row
	Matched int // number of records passing all filters
	Total   int // number of records loaded
	State   querystate.State
	Status  string // status line, e.g. "Rows: 12 of 3,791"
	Err     error  // set if the dataset could not be loaded
}

// Grid is a filterable, sortable table of records. Grids are not safe for
// concurrent use.
type Grid struct {
	columns     []Column
	byField     map[string]int
	records     []unisearch.Record
	index       *TagIndex
	report      unisearch.NormalizeReport
	target      RenderTarget
	codec       *querystate.Codec
	state       querystate.State
	stateLoaded bool
	defaultSort querystate.SortState
	printer     *message.Printer
}

// Option configures a grid.
type Option func(*Grid)

// WithLocale sets the locale for the status line. Default is the locale of
// the environment.
func WithLocale(tag language.Tag) Option {
	return func(g *Grid) {
		g.printer = message.NewPrinter(tag)
	}
}

// WithDefaultSort sets the sort used while the view state has no sort field.
// The default sort is never written to the query string.
func WithDefaultSort(field string, dir querystate.Direction) Option {
	return func(g *Grid) {
		g.defaultSort = querystate.SortState{Field: field, Dir: dir}
	}
}

// New creates a grid for columns, rendering to target and keeping its state
// in qs.
func New(columns []Column, target RenderTarget, qs querystate.PersistentQueryString,
	opts ...Option) *Grid {
	//
	g := &Grid{
		columns: columns,
		byField: make(map[string]int, len(columns)),
		target:  target,
		codec:   querystate.NewCodec(qs),
		state:   querystate.State{Filters: querystate.FilterState{}, Sort: querystate.SortState{Dir: querystate.Asc}},
		index:   NewTagIndex(nil),
	}
	for i, col := range columns {
		g.byField[col.Field] = i
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.printer == nil {
		g.printer = message.NewPrinter(LocaleFromEnvironment())
	}
	return g
}

// Load fetches a dataset from src, normalizes its records and renders the
// first view. On the first load the view state is decoded from the query
// string. If the dataset cannot be loaded, an error view is rendered and the
// error is returned.
func (g *Grid) Load(ctx context.Context, src DataSource) error {
	ds, err := src.Load(ctx)
	if err == nil && (ds == nil || !ds.Success) {
		err = ErrNoData
	}
	if err != nil {
		tracer().Errorf("loading dataset: %v", err)
		view := &View{
			Columns: g.columns,
			State:   g.state,
			Status:  fmt.Sprintf("ERROR: %v", err),
			Err:     err,
		}
		if rerr := g.target.Render(view); rerr != nil {
			tracer().Errorf("rendering error view: %v", rerr)
		}
		return err
	}
	records, report := unisearch.NormalizeAll(ds.Data)
	g.report = report
	return g.SetRecords(records)
}

// SetRecords replaces the records of the grid and renders. Records are
// expected in ingestion order, i.e. records[i].Order == i.
func (g *Grid) SetRecords(records []unisearch.Record) error {
	g.records = records
	g.index = NewTagIndex(records)
	if !g.stateLoaded {
		g.state = g.codec.Load()
		g.stateLoaded = true
	}
	tracer().P("records", len(records)).Infof("grid loaded, state %q", g.state.String())
	return g.target.Render(g.View())
}

// SetFilter sets the header filter of a column. An empty value clears it.
func (g *Grid) SetFilter(field, value string) error {
	col, ok := g.Column(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if !col.Filterable() {
		return fmt.Errorf("%w: %q", ErrNotFilterable, field)
	}
	return g.update(g.state.With(field, value))
}

// SetSort sorts by a column. An empty field restores the default sort.
func (g *Grid) SetSort(field string, dir querystate.Direction) error {
	if field != "" {
		col, ok := g.Column(field)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		if !col.Sortable() {
			return fmt.Errorf("%w: %q", ErrNotSortable, field)
		}
	}
	return g.update(g.state.WithSort(field, dir))
}

// ClickTag toggles tag in the filter of the tags column.
func (g *Grid) ClickTag(tag string) error {
	if _, ok := g.Column(TagsField); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, TagsField)
	}
	next := tagtoggle.Toggle(g.state.Filters[TagsField], tag)
	tracer().Debugf("tag %q clicked, tag filter is now %q", tag, next)
	return g.update(g.state.With(TagsField, next))
}

// ClearFilters removes all header filters. The sort is kept.
func (g *Grid) ClearFilters() error {
	return g.update(querystate.State{Filters: querystate.FilterState{}, Sort: g.state.Sort})
}

func (g *Grid) update(next querystate.State) error {
	g.state = next
	err := g.target.Render(g.View())
	g.codec.Save(g.state)
	return err
}

// State returns the current filter and sort state.
func (g *Grid) State() querystate.State {
	return g.state
}

// Report returns the normalization report of the last Load.
func (g *Grid) Report() unisearch.NormalizeReport {
	return g.report
}

// Index returns the tag index of the loaded records.
func (g *Grid) Index() *TagIndex {
	return g.index
}

// Column looks up a column by field.
func (g *Grid) Column(field string) (Column, bool) {
	i, ok := g.byField[field]
	if !ok {
		return Column{}, false
	}
	return g.columns[i], true
}

// View evaluates filters and sort on the current records.
func (g *Grid) View() *View {
	preds, tagged, active := g.compileFilters()
	matched := make([]*unisearch.Record, 0, len(g.records))
	for i := range g.records {
		if tagged != nil && !tagged.Contains(uint32(i)) {
			continue
		}
		rec := &g.records[i]
		if passes(rec, preds) {
			matched = append(matched, rec)
		}
	}
	g.sortRecords(matched)
	view := &View{
		Columns: g.columns,
		Rows:    make([]Row, len(matched)),
		Matched: len(matched),
		Total:   len(g.records),
		State:   g.state,
	}
	for i, rec := range matched {
		cells := make([]string, len(g.columns))
		for j, col := range g.columns {
			cells[j] = col.Cell(rec)
		}
		view.Rows[i] = Row{Record: rec, Cells: cells}
	}
	view.Status = StatusLine(g.printer, view.Matched, view.Total, active > 0)
	return view
}

// compileFilters returns the row predicates of all active filters, the
// positions selected by tag filters (nil if there is no tag filter) and the
// number of filters in effect.
func (g *Grid) compileFilters() ([]RowPredicate, *roaring.Bitmap, int) {
	var preds []RowPredicate
	var tagged *roaring.Bitmap
	active := 0
	for _, field := range g.state.Fields() {
		col, ok := g.Column(field)
		if !ok || !col.Filterable() {
			tracer().Debugf("ignoring filter for column %q", field)
			continue
		}
		value := g.state.Filters[field]
		if col.Tags {
			f := predicate.CompileTags(value)
			if f.Empty() {
				continue
			}
			bm := g.index.Select(f)
			if tagged == nil {
				tagged = bm
			} else {
				tagged.And(bm)
			}
			active++
			continue
		}
		if p := col.Filter(value); p != nil {
			preds = append(preds, p)
			active++
		}
	}
	return preds, tagged, active
}

func passes(rec *unisearch.Record, preds []RowPredicate) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

// sortRecords sorts by the active sort column, or the default sort if there
// is none. Ties, as well as unknown or unsortable sort fields, fall back to
// ingestion order.
func (g *Grid) sortRecords(records []*unisearch.Record) {
	sorting := g.state.Sort
	if sorting.Field == "" {
		sorting = g.defaultSort
	}
	cmp, desc := CompareFunc(OrderCompare), false
	if col, ok := g.Column(sorting.Field); ok && col.Sortable() {
		cmp = col.Compare
		desc = sorting.Dir == querystate.Desc
	}
	slices.SortStableFunc(records, func(a, b *unisearch.Record) int {
		c := cmp(a, b)
		if desc {
			c = -c
		}
		if c == 0 {
			c = OrderCompare(a, b)
		}
		return c
	})
}
