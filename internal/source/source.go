// Package source provides data sources for search views: dataset files and
// datasets fetched over HTTP.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/unisearch"
	"github.com/npillmayer/unisearch/grid"
	"github.com/npillmayer/unisearch/internal/dataset"
)

// tracer traces to unisearch.grid .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.grid")
}

// ErrStatus is returned for HTTP responses with a status other than 200 OK.
var ErrStatus = errors.New("unexpected HTTP status")

// File is a dataset file on the local file system.
type File struct {
	Path string
}

// Load reads the dataset file.
func (f File) Load(ctx context.Context) (*unisearch.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataset.ReadFile(f.Path)
}

// HTTP fetches a dataset with a GET request.
type HTTP struct {
	URL    string
	Client *http.Client // http.DefaultClient if nil
}

// Load fetches and decodes the dataset.
func (h HTTP) Load(ctx context.Context) (*unisearch.Dataset, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		tracer().Errorf("fetching %s: %v", h.URL, err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, h.URL, resp.StatusCode)
	}
	var ds *unisearch.Dataset
	if strings.HasSuffix(req.URL.Path, dataset.GzipSuffix) {
		ds, err = dataset.ReadCompressed(resp.Body)
	} else {
		ds, err = dataset.Read(resp.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.URL, err)
	}
	tracer().P("url", h.URL).Debugf("fetched dataset with %d records", len(ds.Data))
	return ds, nil
}

// For returns an HTTP source for http(s) URLs and a file source otherwise.
func For(location string) grid.DataSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTP{URL: location}
	}
	return File{Path: location}
}
