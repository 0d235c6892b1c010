package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/grid"
	"github.com/npillmayer/unisearch/internal/source"
	"github.com/npillmayer/unisearch/querystate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats of the query command.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type queryOptions struct {
	dataset string
	columns string
	format  string
	clicks  []string
	limit   int
}

func queryCommand(ctx *Context) *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query [query-string]",
		Short: "Search a dataset",
		Long: `Search a dataset file or URL with a query string as used in the browser,
e.g. "description=cat&tags=animal-mammal&sort=emoji&dir=desc".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runQuery(cmd, ctx, opts, query)
		},
	}
	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "emoji.json", "Dataset file or http(s) URL")
	cmd.Flags().StringVar(&opts.columns, "columns", "emoji", "Column set: emoji or unicode")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatTable, "Output format: table, json, yaml")
	cmd.Flags().StringArrayVar(&opts.clicks, "click", nil, "Toggle a tag in the tag filter (repeatable)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Print at most n rows (0: all)")
	return cmd
}

func runQuery(cmd *cobra.Command, ctx *Context, opts *queryOptions, query string) error {
	var columns []grid.Column
	var gridOpts []grid.Option
	switch opts.columns {
	case "emoji":
		columns = grid.EmojiColumns()
	case "unicode":
		columns = grid.UnicodeColumns()
		gridOpts = append(gridOpts, grid.WithDefaultSort("name", querystate.Asc))
	default:
		return fmt.Errorf("unknown column set %q", opts.columns)
	}
	switch opts.format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}
	if _, err := querystate.Parse(query); err != nil {
		return err
	}
	qs := querystate.NewMemoryQueryString(strings.TrimPrefix(query, "?"))
	target := &terminalTarget{out: ctx.Out, format: opts.format, limit: opts.limit}
	g := grid.New(columns, target, qs, gridOpts...)
	if err := g.Load(cmd.Context(), source.For(opts.dataset)); err != nil {
		target.flush("")
		return err
	}
	for _, tag := range opts.clicks {
		if err := g.ClickTag(tag); err != nil {
			return err
		}
	}
	return target.flush(qs.String())
}

// terminalTarget keeps the latest view and prints it when the session is
// finished.
type terminalTarget struct {
	out    io.Writer
	format string
	limit  int
	view   *grid.View
}

func (t *terminalTarget) Render(view *grid.View) error {
	t.view = view
	return nil
}

type queryResult struct {
	Query   string             `json:"query" yaml:"query"`
	Status  string             `json:"status" yaml:"status"`
	Records []unisearch.Record `json:"records" yaml:"records"`
}

func (t *terminalTarget) flush(query string) error {
	v := t.view
	if v == nil {
		return nil
	}
	if v.Err != nil {
		_, err := fmt.Fprintln(t.out, v.Status)
		return err
	}
	rows := v.Rows
	if t.limit > 0 && len(rows) > t.limit {
		rows = rows[:t.limit]
	}
	switch t.format {
	case FormatJSON, FormatYAML:
		result := queryResult{Query: query, Status: v.Status, Records: make([]unisearch.Record, len(rows))}
		for i, row := range rows {
			result.Records[i] = *row.Record
		}
		if t.format == FormatYAML {
			enc := yaml.NewEncoder(t.out)
			enc.SetIndent(2)
			if err := enc.Encode(result); err != nil {
				return err
			}
			return enc.Close()
		}
		enc := json.NewEncoder(t.out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	titles := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		titles[i] = col.Title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row.Cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(t.out, v.Status)
	if query != "" {
		fmt.Fprintf(t.out, "?%s\n", query)
	}
	return nil
}
