// Package config loads the YAML configuration of the splom command and
// service, with environment overrides for the InfluxDB connection and the
// listen port.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

// ErrLogLevel is returned for an unknown log level.
var ErrLogLevel = errors.New("config: unknown log level")

// Config is the root of the YAML file.
type Config struct {
	Render splom.Overrides `yaml:"render"`
	Output OutputConfig    `yaml:"output"`
	Server ServerConfig    `yaml:"server"`
	Influx InfluxConfig    `yaml:"influx"`
	Log    LogConfig       `yaml:"log"`
}

// OutputConfig selects the file format of rendered matrices.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// InfluxConfig is the InfluxDB connection used for series queries.
type InfluxConfig struct {
	URL         string `yaml:"url"`
	Token       string `yaml:"token"`
	Org         string `yaml:"org"`
	Bucket      string `yaml:"bucket"`
	Measurement string `yaml:"measurement"`
	Points      int    `yaml:"points"`
}

// Enabled reports whether enough is configured to query InfluxDB.
func (c InfluxConfig) Enabled() bool {
	return c.URL != "" && c.Token != "" && c.Org != "" && c.Bucket != ""
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{Format: "svg"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 8 << 20,
		},
		Influx: InfluxConfig{
			Measurement: "samples",
			Points:      50,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults and applies the
// environment. An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read the config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides the connection settings from INFLUXDB_URL,
// INFLUXDB_TOKEN, INFLUXDB_ORG, INFLUXDB_BUCKET and the port from PORT.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Influx.URL, "INFLUXDB_URL")
	set(&c.Influx.Token, "INFLUXDB_TOKEN")
	set(&c.Influx.Org, "INFLUXDB_ORG")
	set(&c.Influx.Bucket, "INFLUXDB_BUCKET")

	if port := getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
}

// Splom returns the matrix configuration: the render overrides merged over
// splom.DefaultConfig.
func (c Config) Splom() splom.Config {
	return c.Render.Merge(splom.DefaultConfig())
}

// WriteDefault writes the default configuration to path, creating its
// directory.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Logger returns a slog logger writing to w: JSON when Format is "json",
// text otherwise.
func (c LogConfig) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "", "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("%w: %q", ErrLogLevel, c.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
