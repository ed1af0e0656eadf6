// Package config loads the regform CLI settings from an optional YAML file and
// command-line flags. Flags win over the file, the file wins over defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrInvalid reports a setting outside its allowed values.
var ErrInvalid = errors.New("config: invalid")

// Config is the full CLI configuration.
type Config struct {
	Store    StoreConfig   `yaml:"store"`
	Log      LogConfig     `yaml:"log"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Renderer string        `yaml:"renderer" validate:"oneof=tui html"`
	Output   string        `yaml:"output"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend string      `yaml:"backend" validate:"oneof=memory file sqlite redis"`
	Dir     string      `yaml:"dir" validate:"required_if=Backend file"`
	SQLite  string      `yaml:"sqlite_dsn" validate:"required_if=Backend sqlite"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds the connection settings of the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0,max=15"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig controls the slog handler built by the CLI.
type LogConfig struct {
	Level  string `yaml:"level" validate:"required"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// MetricsConfig controls metric export. An empty textfile disables export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".regform",
			SQLite:  "file:regform.db",
			Redis: RedisConfig{
				Addr:   "127.0.0.1:6379",
				Prefix: "regform:",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Renderer: "tui",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Parse reads the -config file named in args, then applies every other flag
// that was set explicitly, then validates the result.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	defaults := Defaults()
	var (
		path     = fs.String("config", "", "YAML configuration file")
		backend  = fs.String("store", defaults.Store.Backend, "store backend: memory, file, sqlite or redis")
		dir      = fs.String("store-dir", defaults.Store.Dir, "directory of the file store")
		dsn      = fs.String("sqlite-dsn", defaults.Store.SQLite, "sqlite data source name")
		addr     = fs.String("redis-addr", defaults.Store.Redis.Addr, "redis address")
		prefix   = fs.String("redis-prefix", defaults.Store.Redis.Prefix, "redis key prefix")
		level    = fs.String("log-level", defaults.Log.Level, "log level: debug, info, warn or error")
		format   = fs.String("log-format", defaults.Log.Format, "log format: text or json")
		textfile = fs.String("metrics-textfile", "", "write prometheus metrics to this file on exit")
		renderer = fs.String("renderer", defaults.Renderer, "renderer: tui or html")
		outFile  = fs.String("output", "", "output file for rendered html (stdout if empty)")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			cfg.Store.Backend = *backend
		case "store-dir":
			cfg.Store.Dir = *dir
		case "sqlite-dsn":
			cfg.Store.SQLite = *dsn
		case "redis-addr":
			cfg.Store.Redis.Addr = *addr
		case "redis-prefix":
			cfg.Store.Redis.Prefix = *prefix
		case "log-level":
			cfg.Log.Level = *level
		case "log-format":
			cfg.Log.Format = *format
		case "metrics-textfile":
			cfg.Metrics.Textfile = *textfile
		case "renderer":
			cfg.Renderer = *renderer
		case "output":
			cfg.Output = *outFile
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks enumerated and conditionally required settings.
func (c Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, errorMessage(err))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func errorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err.Error()
	}

	fe := validationErrs[0]
	field := fe.Namespace()
	switch fe.ActualTag() {
	case "oneof":
		return fmt.Sprintf("%s %q must be one of [%s]", field, fe.Value(), fe.Param())
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.ActualTag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.ActualTag())
	}
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return level, nil
}

// Logger builds the slog logger described by l, writing to w.
func (l LogConfig) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
