package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	Init(v, t.TempDir())
	settings, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "emoji-test.txt", settings.Emoji.Input)
	assert.Equal(t, "DerivedAge.txt", settings.UCD.Ages)
	assert.Equal(t, "localhost:8080", settings.Serve.Listen)
	assert.False(t, settings.Gzip)
}

func TestConfigFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := "emoji:\n  output: out/emoji.json\ngzip: true\ntrace:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unisearch.yaml"), []byte(yaml), 0o644))
	t.Setenv("UNISEARCH_SERVE_ROOT", "/srv/www")

	v := viper.New()
	Init(v, dir)
	settings, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "out/emoji.json", settings.Emoji.Output)
	assert.True(t, settings.Gzip)
	assert.Equal(t, "/srv/www", settings.Serve.Root)
	assert.Equal(t, tracing.LevelDebug, TraceLevel(settings.Trace.Level))
}

func TestBrokenConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unisearch.yaml"), []byte("emoji: [\n"), 0o644))
	v := viper.New()
	Init(v, dir)
	_, err := Load(v)
	assert.Error(t, err)
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracing.LevelError, TraceLevel("ERROR"))
	assert.Equal(t, tracing.LevelInfo, TraceLevel("verbose"))
}
