// Package cli implements the unisearch command line: the ETL commands which
// build dataset files, a query command to search a dataset from the terminal
// and a static server for datasets and the browser frontend.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/unisearch/internal/config"
	"github.com/npillmayer/unisearch/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// tracer traces to unisearch .
func tracer() tracing.Trace {
	return tracing.Select("unisearch")
}

// ErrInputMissing is returned if a required input file does not exist.
var ErrInputMissing = errors.New("input missing")

// Context is shared by all commands of a single invocation.
type Context struct {
	Viper    *viper.Viper
	Settings *config.Settings
	Registry *prometheus.Registry
	ETL      *metrics.ETLMetrics
	RunID    string
	Out      io.Writer        // output of query results
	Now      func() time.Time // clock for dataset timestamps
}

// NewContext creates a context with a fresh viper instance and metrics registry.
// Config files are searched in paths, see config.Init.
func NewContext(out io.Writer, paths ...string) (*Context, error) {
	ctx := &Context{
		Viper:    viper.New(),
		Registry: prometheus.NewRegistry(),
		RunID:    uuid.NewString(),
		Out:      out,
		Now:      time.Now,
	}
	config.Init(ctx.Viper, paths...)
	etl, err := metrics.NewETLMetrics(ctx.Registry)
	if err != nil {
		return nil, err
	}
	ctx.ETL = etl
	return ctx, nil
}

// RootCommand creates the root command with all sub-commands.
func RootCommand(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "unisearch",
		Short:         "Build and search emoji and Unicode character datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("trace", "info", "Trace level: debug, info, error")
	rootCmd.PersistentFlags().Bool("gzip", false, "Write a gzip compressed copy of every dataset")
	bindFlag(ctx, "trace.level", rootCmd.PersistentFlags().Lookup("trace"))
	bindFlag(ctx, "gzip", rootCmd.PersistentFlags().Lookup("gzip"))

	rootCmd.AddCommand(
		emojiCommand(ctx),
		ucdCommand(ctx),
		gemojiCommand(ctx),
		queryCommand(ctx),
		serveCommand(ctx),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(ctx.Viper)
		if err != nil {
			return err
		}
		ctx.Settings = settings
		setupTracing(config.TraceLevel(settings.Trace.Level))
		tracer().P("run", ctx.RunID).Debugf("starting %s", cmd.Name())
		return nil
	}
	return rootCmd
}

// ExecuteContext runs the command line and returns the exit status.
func ExecuteContext(c context.Context, args []string) int {
	ctx, err := NewContext(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rootCmd := RootCommand(ctx)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(c); err != nil {
		tracer().Errorf("%v", err)
		return 1
	}
	return 0
}

func bindFlag(ctx *Context, key string, flag *pflag.Flag) {
	if err := ctx.Viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// traceSelector hands out the same tracer for every trace key.
type traceSelector struct {
	trace tracing.Trace
}

func (s traceSelector) Select(string) tracing.Trace {
	return s.trace
}

func setupTracing(level tracing.TraceLevel) {
	trace := gologadapter.GetAdapter()()
	trace.SetTraceLevel(level)
	gtrace.CoreTracer = trace
	tracing.SetTraceSelector(traceSelector{trace: trace})
}
