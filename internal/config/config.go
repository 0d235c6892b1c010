// Package config holds the settings of the unisearch commands.
//
// Settings are read, in increasing order of precedence, from defaults, an
// optional file unisearch.yaml, environment variables prefixed UNISEARCH_
// (e.g. UNISEARCH_EMOJI_INPUT for emoji.input) and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/viper"
)

// Name is used as config file name and environment prefix.
const Name = "unisearch"

// Settings of all commands.
type Settings struct {
	Trace struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"trace"`
	Emoji struct {
		Input  string `mapstructure:"input"`
		Output string `mapstructure:"output"`
	} `mapstructure:"emoji"`
	UCD struct {
		UnicodeData string `mapstructure:"unicodedata"`
		Blocks      string `mapstructure:"blocks"`
		Ages        string `mapstructure:"ages"`
		Output      string `mapstructure:"output"`
	} `mapstructure:"ucd"`
	Gemoji struct {
		Dataset string `mapstructure:"dataset"`
		Gemoji  string `mapstructure:"gemoji"`
		Output  string `mapstructure:"output"`
	} `mapstructure:"gemoji"`
	Serve struct {
		Listen string `mapstructure:"listen"`
		Root   string `mapstructure:"root"`
	} `mapstructure:"serve"`
	Gzip bool `mapstructure:"gzip"`
}

// SetDefaults sets the default values of all keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("trace.level", "info")
	v.SetDefault("emoji.input", "emoji-test.txt")
	v.SetDefault("emoji.output", "emoji.json")
	v.SetDefault("ucd.unicodedata", "UnicodeData.txt")
	v.SetDefault("ucd.blocks", "Blocks.txt")
	v.SetDefault("ucd.ages", "DerivedAge.txt")
	v.SetDefault("ucd.output", "ucd.json")
	v.SetDefault("gemoji.dataset", "emoji.json")
	v.SetDefault("gemoji.gemoji", "gemoji.json")
	v.SetDefault("gemoji.output", "")
	v.SetDefault("serve.listen", "localhost:8080")
	v.SetDefault("serve.root", ".")
	v.SetDefault("gzip", false)
}

// Init prepares v for reading settings: defaults, environment and the search
// paths of the config file. Without explicit paths, the working directory and
// the user's config directory are searched.
func Init(v *viper.Viper, paths ...string) {
	SetDefaults(v)
	v.SetEnvPrefix(strings.ToUpper(Name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName(Name)
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = append(paths, ".")
		if dir, err := os.UserConfigDir(); err == nil {
			paths = append(paths, filepath.Join(dir, Name))
		}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
}

// Load reads the config file, if present, and unmarshals all settings.
func Load(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		tracing.Select("unisearch").Debugf("read config file %s", v.ConfigFileUsed())
	}
	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return settings, nil
}

// TraceLevel maps the name of a trace level to a tracing level. Unknown names
// select LevelInfo.
func TraceLevel(name string) tracing.TraceLevel {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	}
	return tracing.LevelInfo
}
