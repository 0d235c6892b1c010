package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/npillmayer/unisearch/internal/dataset"
	"github.com/npillmayer/unisearch/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func serveCommand(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve datasets and the browser frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewServer(ctx, ctx.Settings.Serve.Root)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), e, ctx.Settings.Serve.Listen)
		},
	}
	cmd.Flags().String("root", ".", "Directory to serve")
	cmd.Flags().String("listen", "localhost:8080", "Address to listen on")
	bindFlag(ctx, "serve.root", cmd.Flags().Lookup("root"))
	bindFlag(ctx, "serve.listen", cmd.Flags().Lookup("listen"))
	return cmd
}

// NewServer creates an echo server for the files in root. Dataset files
// (*.json) found in root are published as a metric, metrics are served at
// /metrics.
func NewServer(ctx *Context, root string) (*echo.Echo, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("serve root %s is not a directory", root)
	}
	sm, err := metrics.NewServeMetrics(ctx.Registry)
	if err != nil {
		return nil, err
	}
	publishDatasets(sm, root)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(sm.Middleware())
	e.Use(middleware.Gzip())
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(ctx.Registry, promhttp.HandlerOpts{})))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.Static("/", root)
	return e, nil
}

func publishDatasets(sm *metrics.ServeMetrics, root string) {
	files, err := filepath.Glob(filepath.Join(root, "*.json"))
	if err != nil {
		tracer().Errorf("listing datasets: %v", err)
		return
	}
	for _, file := range files {
		ds, err := dataset.ReadFile(file)
		if err != nil {
			tracer().Debugf("%s is not a dataset: %v", file, err)
			continue
		}
		name := filepath.Base(file)
		sm.SetDatasetRecords(name, len(ds.Data))
		tracer().P("file", name).Infof("serving dataset with %d records", len(ds.Data))
	}
}

func runServer(ctx context.Context, e *echo.Echo, listen string) error {
	errc := make(chan error, 1)
	go func() {
		tracer().Infof("listening on %s", listen)
		errc <- e.Start(listen)
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tracer().Infof("shutting down server")
		return e.Shutdown(shutdownCtx)
	}
}
