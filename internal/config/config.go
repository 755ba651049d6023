// Package config loads minimaple.toml for the command line tools.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/njchilds90/minimaple"
)

// FileName is the configuration file searched for by FindAndLoad.
const FileName = "minimaple.toml"

type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Output   OutputConfig   `toml:"output"`
}

type PipelineConfig struct {
	MaxIterations   int  `toml:"max_iterations"`
	RestoreDivision bool `toml:"restore_division"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // development or production
}

type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

type OutputConfig struct {
	Format string `toml:"format"` // text, latex or json
	Color  bool   `toml:"color"`
}

// Duration is a time.Duration written as a string such as "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			MaxIterations:   minimaple.DefaultMaxIterations,
			RestoreDivision: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "development",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{10 * time.Second},
			MaxBodyBytes: 1 << 20,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// FindAndLoad searches startDir and its parents for minimaple.toml. It
// returns the default configuration and an empty path when none exists.
func FindAndLoad(startDir string) (*Config, string, error) {
	path := FindConfigFile(startDir)
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Pipeline.MaxIterations < 0 {
		return errors.Newf("pipeline.max_iterations must not be negative, got %d", c.Pipeline.MaxIterations)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	switch c.Log.Format {
	case "development", "production":
	default:
		return errors.Newf("log.format must be development or production, got %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "latex", "json":
	default:
		return errors.Newf("output.format must be text, latex or json, got %q", c.Output.Format)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Newf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

// NewLogger builds the zap logger described by the log section.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}
	var zc zap.Config
	if c.Log.Format == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// PipelineOptions converts the pipeline section into differentiator
// options.
func (c *Config) PipelineOptions() []minimaple.Option {
	opts := []minimaple.Option{minimaple.WithMaxIterations(c.Pipeline.MaxIterations)}
	if !c.Pipeline.RestoreDivision {
		opts = append(opts, minimaple.WithoutDivisionRestore())
	}
	return opts
}
