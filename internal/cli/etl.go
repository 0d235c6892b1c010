package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/emojitest"
	"github.com/npillmayer/unisearch/gemoji"
	"github.com/npillmayer/unisearch/internal/dataset"
	"github.com/npillmayer/unisearch/internal/metrics"
	"github.com/npillmayer/unisearch/ucd"
	"github.com/spf13/cobra"
)

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
	}
	return f, err
}

// --- emoji -----------------------------------------------------------------

func emojiCommand(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emoji",
		Short: "Build the emoji dataset from emoji-test.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmoji(ctx)
		},
	}
	cmd.Flags().StringP("input", "i", "emoji-test.txt", "Path to emoji-test.txt")
	cmd.Flags().StringP("output", "o", "emoji.json", "Path of the dataset to write")
	bindFlag(ctx, "emoji.input", cmd.Flags().Lookup("input"))
	bindFlag(ctx, "emoji.output", cmd.Flags().Lookup("output"))
	return cmd
}

func runEmoji(ctx *Context) error {
	s := ctx.Settings.Emoji
	f, err := openInput(s.Input)
	if err != nil {
		return err
	}
	defer f.Close()
	raws, p := emojitest.ParseAll(bufio.NewReader(f))
	if err := p.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", s.Input, err)
	}
	for _, m := range p.Mismatches() {
		tracer().P("line", m.Line).Debugf("unmatched data line %q", m.Text)
	}
	_, report := unisearch.NormalizeAll(raws)
	ctx.ETL.RecordLines(metrics.SourceEmoji, p.Lines())
	ctx.ETL.RecordMismatches(metrics.SourceEmoji, p.Unmatched())
	ctx.ETL.RecordInvalid(metrics.SourceEmoji, len(report.Invalid))
	ctx.ETL.RecordFlagged(report.Flagged)
	ctx.ETL.RecordRecords(metrics.SourceEmoji, len(raws))
	ds := &unisearch.Dataset{
		Success: true,
		LastMod: ctx.Now().UTC().Format(time.RFC3339),
		Data:    raws,
	}
	if err := dataset.WriteFile(s.Output, ds, ctx.Settings.Gzip); err != nil {
		return err
	}
	ctx.ETL.LogSummary(ctx.RunID)
	return nil
}

// --- ucd -------------------------------------------------------------------

func ucdCommand(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ucd",
		Short: "Build the Unicode character dataset from the Unicode Character Database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUCD(ctx)
		},
	}
	cmd.Flags().String("unicodedata", "UnicodeData.txt", "Path to UnicodeData.txt")
	cmd.Flags().String("blocks", "Blocks.txt", "Path to Blocks.txt (optional)")
	cmd.Flags().String("ages", "DerivedAge.txt", "Path to DerivedAge.txt (optional)")
	cmd.Flags().StringP("output", "o", "ucd.json", "Path of the dataset to write")
	bindFlag(ctx, "ucd.unicodedata", cmd.Flags().Lookup("unicodedata"))
	bindFlag(ctx, "ucd.blocks", cmd.Flags().Lookup("blocks"))
	bindFlag(ctx, "ucd.ages", cmd.Flags().Lookup("ages"))
	bindFlag(ctx, "ucd.output", cmd.Flags().Lookup("output"))
	return cmd
}

// openOptional opens an optional input. A missing file yields a nil reader.
func openOptional(path string) (io.Reader, func(), error) {
	f, err := openInput(path)
	if errors.Is(err, ErrInputMissing) {
		tracer().Infof("optional input %s not present, skipping", path)
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewReader(f), func() { f.Close() }, nil
}

func runUCD(ctx *Context) error {
	s := ctx.Settings.UCD
	f, err := openInput(s.UnicodeData)
	if err != nil {
		return err
	}
	defer f.Close()
	blocks, closeBlocks, err := openOptional(s.Blocks)
	if err != nil {
		return err
	}
	defer closeBlocks()
	ages, closeAges, err := openOptional(s.Ages)
	if err != nil {
		return err
	}
	defer closeAges()
	raws, report, err := ucd.Load(ucd.Sources{
		UnicodeData: bufio.NewReader(f),
		Blocks:      blocks,
		DerivedAge:  ages,
	})
	if err != nil {
		return err
	}
	for _, d := range report.Malformed {
		tracer().Debugf("malformed line %s", d)
	}
	ctx.ETL.RecordMismatches(metrics.SourceUCD, len(report.Malformed))
	ctx.ETL.RecordRecords(metrics.SourceUCD, report.Records)
	ds := &unisearch.Dataset{Success: true, Data: raws}
	if err := dataset.WriteFile(s.Output, ds, ctx.Settings.Gzip); err != nil {
		return err
	}
	ctx.ETL.LogSummary(ctx.RunID)
	return nil
}

// --- gemoji ----------------------------------------------------------------

func gemojiCommand(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gemoji",
		Short: "Merge gemoji keywords into an emoji dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGemoji(ctx)
		},
	}
	cmd.Flags().String("dataset", "emoji.json", "Path of the emoji dataset")
	cmd.Flags().String("gemoji", "gemoji.json", "Path to gemoji's emoji.json")
	cmd.Flags().StringP("output", "o", "", "Path of the merged dataset (default: overwrite --dataset)")
	bindFlag(ctx, "gemoji.dataset", cmd.Flags().Lookup("dataset"))
	bindFlag(ctx, "gemoji.gemoji", cmd.Flags().Lookup("gemoji"))
	bindFlag(ctx, "gemoji.output", cmd.Flags().Lookup("output"))
	return cmd
}

func runGemoji(ctx *Context) error {
	s := ctx.Settings.Gemoji
	if _, err := os.Stat(s.Dataset); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrInputMissing, s.Dataset)
	}
	ds, err := dataset.ReadFile(s.Dataset)
	if err != nil {
		return err
	}
	f, err := openInput(s.Gemoji)
	if err != nil {
		return err
	}
	defer f.Close()
	entries, err := gemoji.Load(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("%s: %w", s.Gemoji, err)
	}
	report := gemoji.Merge(ds.Data, entries)
	ctx.ETL.RecordMerge(report.Merged, len(report.Misses))
	ctx.ETL.RecordRecords(metrics.SourceGemoji, len(ds.Data))
	output := s.Output
	if output == "" {
		output = s.Dataset
	}
	if err := dataset.WriteFile(output, ds, ctx.Settings.Gzip); err != nil {
		return err
	}
	ctx.ETL.LogSummary(ctx.RunID)
	return nil
}
