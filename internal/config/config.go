// Package config resolves settingsgen's own options from defaults, a config
// file, a .env file and the process environment. CLI flags are applied on
// top by the cmd package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/settingsgen/settings"
)

// EnvPrefix prefixes every environment override, e.g. SETTINGSGEN_LOG_LEVEL.
const EnvPrefix = "SETTINGSGEN_"

// Config holds the resolved tool options.
type Config struct {
	CatalogFile  string
	AccessorFile string
	HeaderNote   string
	Pattern      string
	Debounce     time.Duration
	SettleDelay  time.Duration
	LogLevel     settings.LogLevel
	LogFormat    string
}

// Default returns the built-in option values.
func Default() Config {
	return Config{
		CatalogFile:  "appsettings_definitions.go",
		AccessorFile: "appsettings_accessor.go",
		Pattern:      "appsettings*.json",
		Debounce:     2 * time.Second,
		SettleDelay:  100 * time.Millisecond,
		LogLevel:     settings.LogLevelInformation,
		LogFormat:    "text",
	}
}

// fileConfig is the on-disk shape for both HCL and YAML. Durations are
// strings in time.ParseDuration syntax.
type fileConfig struct {
	CatalogFile  *string `hcl:"catalog_file,optional" yaml:"catalog_file"`
	AccessorFile *string `hcl:"accessor_file,optional" yaml:"accessor_file"`
	HeaderNote   *string `hcl:"header_note,optional" yaml:"header_note"`
	Pattern      *string `hcl:"pattern,optional" yaml:"pattern"`
	Debounce     *string `hcl:"debounce,optional" yaml:"debounce"`
	SettleDelay  *string `hcl:"settle_delay,optional" yaml:"settle_delay"`
	LogLevel     *string `hcl:"log_level,optional" yaml:"log_level"`
	LogFormat    *string `hcl:"log_format,optional" yaml:"log_format"`
}

// keys maps override names (env suffix, .env key suffix) to file fields.
func (f *fileConfig) keys() map[string]**string {
	return map[string]**string{
		"CATALOG_FILE":  &f.CatalogFile,
		"ACCESSOR_FILE": &f.AccessorFile,
		"HEADER_NOTE":   &f.HeaderNote,
		"PATTERN":       &f.Pattern,
		"DEBOUNCE":      &f.Debounce,
		"SETTLE_DELAY":  &f.SettleDelay,
		"LOG_LEVEL":     &f.LogLevel,
		"LOG_FORMAT":    &f.LogFormat,
	}
}

// Loader describes where options come from.
type Loader struct {
	// File is an optional .hcl, .yaml or .yml config file.
	File string
	// DotEnv is an optional .env file; a missing file is not an error.
	DotEnv string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load layers defaults < File < DotEnv < environment and validates the
// result.
func (l Loader) Load() (Config, error) {
	cfg := Default()

	if l.File != "" {
		fc, err := readFile(l.File)
		if err != nil {
			return cfg, err
		}
		if err := cfg.apply(fc, l.File); err != nil {
			return cfg, err
		}
	}

	if l.DotEnv != "" {
		fc, err := readDotEnv(l.DotEnv)
		if err != nil {
			return cfg, err
		}
		if err := cfg.apply(fc, l.DotEnv); err != nil {
			return cfg, err
		}
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var env fileConfig
	for key, field := range env.keys() {
		if v, ok := lookup(EnvPrefix + key); ok {
			*field = &v
		}
	}
	if err := cfg.apply(&env, "environment"); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func readFile(path string) (*fileConfig, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(path), src, nil, &fc); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported format (want .hcl, .yaml or .yml)", path)
	}
	return &fc, nil
}

// readDotEnv reads SETTINGSGEN_* keys without touching the process
// environment.
func readDotEnv(path string) (*fileConfig, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	var fc fileConfig
	for key, field := range fc.keys() {
		if v, ok := vars[EnvPrefix+key]; ok {
			*field = &v
		}
	}
	return &fc, nil
}

func (c *Config) apply(fc *fileConfig, source string) error {
	setString(&c.CatalogFile, fc.CatalogFile)
	setString(&c.AccessorFile, fc.AccessorFile)
	setString(&c.HeaderNote, fc.HeaderNote)
	setString(&c.Pattern, fc.Pattern)
	setString(&c.LogFormat, fc.LogFormat)

	if err := setDuration(&c.Debounce, fc.Debounce); err != nil {
		return fmt.Errorf("%s: debounce: %w", source, err)
	}
	if err := setDuration(&c.SettleDelay, fc.SettleDelay); err != nil {
		return fmt.Errorf("%s: settle_delay: %w", source, err)
	}
	if fc.LogLevel != nil {
		level, err := settings.ParseLogLevel(*fc.LogLevel)
		if err != nil {
			return fmt.Errorf("%s: log_level: %w", source, err)
		}
		c.LogLevel = level
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*v))
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	for name, file := range map[string]string{"catalog_file": c.CatalogFile, "accessor_file": c.AccessorFile} {
		if file == "" || filepath.Base(file) != file || !strings.HasSuffix(file, ".go") {
			return fmt.Errorf("%s %q: must be a plain .go file name", name, file)
		}
	}
	if c.CatalogFile == c.AccessorFile {
		return fmt.Errorf("catalog_file and accessor_file are both %q", c.CatalogFile)
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil || c.Pattern == "" {
		return fmt.Errorf("pattern %q: invalid glob", c.Pattern)
	}
	if !strings.HasSuffix(strings.ToLower(c.Pattern), ".json") {
		return fmt.Errorf("pattern %q: must match .json files only", c.Pattern)
	}
	if c.Debounce < 0 || c.SettleDelay < 0 {
		return errors.New("debounce and settle_delay must not be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q: want text or json", c.LogFormat)
	}
	return nil
}
