package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/log"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func practiceFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("practice", pflag.ContinueOnError)
	fs.String("type", "mixed", "")
	fs.String("difficulty", "intermediate", "")
	fs.Int("count", 5, "")
	fs.Uint64("seed", 0, "")
	fs.String("log-level", "warn", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithSearchPaths())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "mixed", cfg.Practice.Type)
	assert.Equal(t, "intermediate", cfg.Practice.Difficulty)
	assert.Equal(t, 5, cfg.Practice.Count)
	assert.Equal(t, time.Second, cfg.Practice.TickInterval)
	assert.Equal(t, uint64(0), cfg.Practice.Seed)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Empty(t, cfg.Feedback.RulesPath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Metrics.Textfile)
	assert.Equal(t, 64, cfg.JobDesc.CacheSize)
	assert.Empty(t, cfg.File)
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "rehearse.yaml", `
practice:
  type: behavioral
  count: 3
  tick_interval: 250ms
log:
  format: json
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(WithFile(file))
		require.NoError(t, err)
		assert.Equal(t, file, cfg.File)
		assert.Equal(t, "behavioral", cfg.Practice.Type)
		assert.Equal(t, 3, cfg.Practice.Count)
		assert.Equal(t, 250*time.Millisecond, cfg.Practice.TickInterval)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "intermediate", cfg.Practice.Difficulty)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("REHEARSE_PRACTICE_COUNT", "7")
		t.Setenv("REHEARSE_LOG_LEVEL", "DEBUG")

		cfg, err := Load(WithFile(file))
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Practice.Count)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "behavioral", cfg.Practice.Type)
	})

	t.Run("explicit flags override environment", func(t *testing.T) {
		t.Setenv("REHEARSE_PRACTICE_COUNT", "7")

		fs := practiceFlags()
		require.NoError(t, fs.Parse([]string{"--count", "2", "--seed", "99"}))

		cfg, err := Load(WithFile(file), WithFlags(fs))
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Practice.Count)
		assert.Equal(t, uint64(99), cfg.Practice.Seed)
		// Unset flags leave lower layers alone.
		assert.Equal(t, "behavioral", cfg.Practice.Type)
	})
}

func TestLoadSearchPaths(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")
	found := writeFile(t, dir, "config.yaml", "practice:\n  difficulty: advanced\n")

	cfg, err := Load(WithSearchPaths(missing, found))
	require.NoError(t, err)
	assert.Equal(t, found, cfg.File)
	assert.Equal(t, "advanced", cfg.Practice.Difficulty)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{name: "count too low", content: "practice:\n  count: 0\n", code: errors.ErrCodeConfigInvalid},
		{name: "count too high", content: "practice:\n  count: 51\n", code: errors.ErrCodeConfigInvalid},
		{name: "unknown type", content: "practice:\n  type: trivia\n", code: errors.ErrCodeConfigInvalid},
		{name: "unknown log format", content: "log:\n  format: xml\n", code: errors.ErrCodeConfigInvalid},
		{name: "missing catalog file", content: "catalog:\n  path: /nonexistent/questions.yaml\n", code: errors.ErrCodeConfigInvalid},
		{name: "zero tick interval", content: "practice:\n  tick_interval: 0s\n", code: errors.ErrCodeConfigInvalid},
		{name: "cache too small", content: "jobdesc:\n  cache_size: 0\n", code: errors.ErrCodeConfigInvalid},
		{name: "malformed yaml", content: "practice: [unclosed\n", code: errors.ErrCodeConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".yaml", tt.content)
			_, err := Load(WithFile(path))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(WithFile(filepath.Join(dir, "nope.yaml")))
		assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
	})
}

func TestValidationSuggestions(t *testing.T) {
	cfg := Default()
	cfg.Practice.Count = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)

	var rerr *errors.RehearseError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, rerr.Suggestions, "practice.count must be at least 1")
	assert.Contains(t, rerr.Suggestions, "log.format must be one of: text json")
}

func TestSessionOptions(t *testing.T) {
	cfg := Default()
	cfg.Practice.Type = "hr"
	cfg.Practice.Difficulty = "any"
	cfg.Practice.Count = 4

	opts, err := cfg.SessionOptions()
	require.NoError(t, err)
	assert.Equal(t, catalog.TypeHR, opts.Type)
	assert.Equal(t, catalog.DifficultyAny, opts.Difficulty)
	assert.Equal(t, 4, opts.Count)

	cfg.Practice.Type = "trivia"
	_, err = cfg.SessionOptions()
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionInvalidOptions))
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	lc, err := cfg.LoggerConfig()
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, lc.Level)
	assert.Equal(t, log.FormatJSON, lc.Format)
}
