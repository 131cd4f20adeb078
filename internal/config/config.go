// Package config loads rehearse configuration with Viper.
//
// Values are layered, later layers winning: built-in defaults, a YAML config
// file, REHEARSE_* environment variables, then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/log"
	"github.com/felixgeelhaar/rehearse/internal/session"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "REHEARSE"

// Config holds the application configuration.
type Config struct {
	Practice PracticeConfig `mapstructure:"practice" yaml:"practice" json:"practice"`
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog" json:"catalog"`
	Feedback FeedbackConfig `mapstructure:"feedback" yaml:"feedback" json:"feedback"`
	Log      LogConfig      `mapstructure:"log" yaml:"log" json:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
	JobDesc  JobDescConfig  `mapstructure:"jobdesc" yaml:"jobdesc" json:"jobdesc"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" yaml:"-" json:"file,omitempty"`
}

// PracticeConfig holds defaults for new practice sessions.
type PracticeConfig struct {
	Type         string        `mapstructure:"type" yaml:"type" json:"type" validate:"oneof=technical behavioral hr design mixed"`
	Difficulty   string        `mapstructure:"difficulty" yaml:"difficulty" json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced any"`
	Count        int           `mapstructure:"count" yaml:"count" json:"count" validate:"min=1,max=50"`
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval" json:"tick_interval" validate:"gt=0"`
	Seed         uint64        `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// CatalogConfig selects the question catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path" validate:"omitempty,file"`
}

// FeedbackConfig selects the scoring rule tables.
type FeedbackConfig struct {
	RulesPath string `mapstructure:"rules_path" yaml:"rules_path" json:"rules_path" validate:"omitempty,file"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=text json"`
}

// MetricsConfig configures the metrics textfile export.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile" json:"textfile"`
}

// JobDescConfig configures job-description parsing.
type JobDescConfig struct {
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size" json:"cache_size" validate:"min=1"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"type":        "practice.type",
	"difficulty":  "practice.difficulty",
	"count":       "practice.count",
	"seed":        "practice.seed",
	"catalog":     "catalog.path",
	"rules":       "feedback.rules_path",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"metrics-out": "metrics.textfile",
}

// Option customises Load.
type Option func(*loader)

type loader struct {
	file        string
	searchPaths []string
	flags       []*pflag.FlagSet
}

// WithFile reads configuration from path. A missing file is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// WithSearchPaths replaces the locations probed when no file is given.
func WithSearchPaths(paths ...string) Option {
	return func(l *loader) {
		l.searchPaths = paths
	}
}

// WithFlags binds the known flags present in fs. Flags only override the
// configuration when set explicitly.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(l *loader) {
		if fs != nil {
			l.flags = append(l.flags, fs)
		}
	}
}

// DefaultSearchPaths returns the config files probed in order when no file
// is named: ./rehearse.yaml, then ~/.rehearse/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"rehearse.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".rehearse", "config.yaml"))
	}
	return paths
}

// Default returns the built-in configuration, ignoring files, environment
// and flags.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration from defaults, file, environment and flags.
func Load(opts ...Option) (*Config, error) {
	l := &loader{searchPaths: DefaultSearchPaths()}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, fs := range l.flags {
		if err := bindFlags(v, fs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigLoad, "bind flags", err)
		}
	}

	file, err := l.resolveFile()
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigLoad, "read config file "+file, err).
				WithSuggestion("Check the YAML syntax of the config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "decode configuration", err)
	}
	cfg.File = file
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *loader) resolveFile() (string, error) {
	if l.file != "" {
		if _, err := os.Stat(l.file); err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewFileNotFoundError(l.file)
			}
			return "", errors.NewFileReadError(l.file, err)
		}
		return l.file, nil
	}
	for _, p := range l.searchPaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("practice.type", string(catalog.TypeMixed))
	v.SetDefault("practice.difficulty", string(catalog.DifficultyIntermediate))
	v.SetDefault("practice.count", 5)
	v.SetDefault("practice.tick_interval", session.DefaultTickInterval)
	v.SetDefault("practice.seed", 0)
	v.SetDefault("catalog.path", "")
	v.SetDefault("feedback.rules_path", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("jobdesc.cache_size", 64)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.Practice.Type = strings.ToLower(strings.TrimSpace(c.Practice.Type))
	c.Practice.Difficulty = strings.ToLower(strings.TrimSpace(c.Practice.Difficulty))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.Struct(c); err != nil {
		rerr := errors.Wrap(errors.ErrCodeConfigInvalid, "invalid configuration", err)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				rerr = rerr.WithSuggestion(describe(fe))
			}
		}
		return rerr
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "file":
		return field + " must name an existing file"
	case "gt":
		return field + " must be positive"
	default:
		return field + " failed " + fe.Tag() + " validation"
	}
}

// SessionOptions converts the practice defaults to session start options.
func (c *Config) SessionOptions() (session.Options, error) {
	t, err := catalog.ParseType(c.Practice.Type)
	if err != nil {
		return session.Options{}, errors.NewInvalidOptionsError(err.Error())
	}
	d, err := catalog.ParseDifficulty(c.Practice.Difficulty)
	if err != nil {
		return session.Options{}, errors.NewInvalidOptionsError(err.Error())
	}
	return session.Options{Type: t, Difficulty: d, Count: c.Practice.Count}, nil
}

// LoggerConfig converts the log settings to a logger configuration.
func (c *Config) LoggerConfig() (log.Config, error) {
	cfg := log.DefaultConfig()
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid log level", err)
	}
	format, err := log.ParseFormat(c.Log.Format)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid log format", err)
	}
	cfg.Level = level
	cfg.Format = format
	return cfg, nil
}
