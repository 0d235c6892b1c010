// Package dataset reads and writes dataset documents, the JSON files produced
// by the ETL commands and consumed by the search views.
//
// Files ending in ".gz" are gzip compressed.
package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/unisearch"
)

// tracer traces to unisearch.etl .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.etl")
}

// GzipSuffix is the file name suffix of compressed datasets.
const GzipSuffix = ".gz"

// ErrMalformed is returned for documents which cannot be decoded.
var ErrMalformed = errors.New("malformed dataset")

// Read decodes a dataset document.
func Read(r io.Reader) (*unisearch.Dataset, error) {
	ds := &unisearch.Dataset{}
	if err := json.NewDecoder(r).Decode(ds); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return ds, nil
}

// ReadCompressed decodes a gzip compressed dataset document.
func ReadCompressed(r io.Reader) (*unisearch.Dataset, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	defer zr.Close()
	return Read(zr)
}

// ReadFile reads a dataset from a file, decompressing files ending in ".gz".
func ReadFile(path string) (*unisearch.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ds *unisearch.Dataset
	if strings.HasSuffix(path, GzipSuffix) {
		ds, err = ReadCompressed(bufio.NewReader(f))
	} else {
		ds, err = Read(bufio.NewReader(f))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().P("file", path).Debugf("read dataset with %d records", len(ds.Data))
	return ds, nil
}

// Write encodes a dataset with 2-space indentation. Non-ASCII characters and
// HTML-sensitive characters are written unescaped.
func Write(w io.Writer, ds *unisearch.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ds)
}

// WriteFile writes a dataset to path. If compress is set, a gzip compressed
// copy is written to path + ".gz" as well.
func WriteFile(path string, ds *unisearch.Dataset, compress bool) error {
	if err := writeFile(path, ds, false); err != nil {
		return err
	}
	tracer().P("file", path).Infof("wrote dataset with %d records", len(ds.Data))
	if !compress {
		return nil
	}
	return writeFile(path+GzipSuffix, ds, true)
}

func writeFile(path string, ds *unisearch.Dataset, compress bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if !compress {
		bw := bufio.NewWriter(f)
		if err = Write(bw, ds); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return bw.Flush()
	}
	zw, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		return err
	}
	if err = Write(zw, ds); err != nil {
		zw.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return zw.Close()
}
