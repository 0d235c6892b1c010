package source

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/klauspost/compress/gzip"
	"github.com/npillmayer/unisearch/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetURL = "https://unicode.example.org/emoji.json"

const datasetJSON = `{
  "success": true,
  "lastmod": "2021-03-04T10:00:00Z",
  "data": [
    {"codepoints": "1F600", "qualification": "fully-qualified", "emoji": "😀",
     "description": "grinning face", "version": "1.0", "group": "Smileys & Emotion",
     "subgroup": "face-smiling"}
  ]
}`

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func TestHTTPLoad(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", datasetURL,
		httpmock.NewStringResponder(http.StatusOK, datasetJSON))
	ds, err := For(datasetURL).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ds.Success)
	require.Len(t, ds.Data, 1)
	assert.Equal(t, "\U0001F600", ds.Data[0].Glyph)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestHTTPStatus(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", datasetURL,
		httpmock.NewStringResponder(http.StatusNotFound, "not found"))
	_, err := HTTP{URL: datasetURL}.Load(context.Background())
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPAnySuccessStatus(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", datasetURL,
		httpmock.NewStringResponder(http.StatusNonAuthoritativeInfo, datasetJSON))
	ds, err := HTTP{URL: datasetURL}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Data, 1)
	//
	httpmock.RegisterResponder("GET", datasetURL,
		httpmock.NewStringResponder(http.StatusMultipleChoices, datasetJSON))
	_, err = HTTP{URL: datasetURL}.Load(context.Background())
	assert.ErrorIs(t, err, ErrStatus)
}

func TestHTTPNetworkFailure(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", datasetURL,
		httpmock.NewErrorResponder(errors.New("connection refused")))
	_, err := HTTP{URL: datasetURL}.Load(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrStatus))
}

func TestHTTPCompressed(t *testing.T) {
	setupHTTPMock(t)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(datasetJSON))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	httpmock.RegisterResponder("GET", datasetURL+".gz",
		httpmock.NewBytesResponder(http.StatusOK, buf.Bytes()))
	ds, err := HTTP{URL: datasetURL + ".gz"}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "grinning face", ds.Data[0].Description)
}

func TestFileLoad(t *testing.T) {
	src := For(filepath.Join(t.TempDir(), "missing.json"))
	_, err := src.Load(context.Background())
	assert.Error(t, err)
	//
	_, isFile := For(testdata.Path("gemoji.json")).(File)
	assert.True(t, isFile)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := File{Path: "whatever.json"}.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
