// Package testdata locates the fixture files used by tests.
package testdata

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Reader returns a reader for the given fixture file.
func Reader(file string) (io.Reader, error) {
	data, err := os.ReadFile(Path(file))
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(data), nil
}

// Path returns the path of the given fixture file.
func Path(file string) string {
	_, pkgdir, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}

	return filepath.Join(filepath.Dir(pkgdir), "files", file)
}
