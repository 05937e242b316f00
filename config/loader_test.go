package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "cl100k_base", cfg.Tokenize.Encoding)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Vocab.Download.RetryCount)
	assert.NotEmpty(t, cfg.Vocab.Root)
	assert.NotEmpty(t, cfg.Vocab.RepoURL)
}

func TestLoader_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpusflow.yaml")
	yaml := `
vocab:
  root: /data/vocab
  repo_url: https://mirror.example.com/
  download:
    timeout: 90s
    retry_count: 5
tokenize:
  encoding: o200k_base
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/vocab", cfg.Vocab.Root)
	assert.Equal(t, "https://mirror.example.com/", cfg.Vocab.RepoURL)
	assert.Equal(t, 90*time.Second, cfg.Vocab.Download.Timeout)
	assert.Equal(t, 5, cfg.Vocab.Download.RetryCount)
	assert.Equal(t, "o200k_base", cfg.Tokenize.Encoding)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 2*time.Second, cfg.Vocab.Download.RetryDelay)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, "cl100k_base", cfg.Tokenize.Encoding)
}

func TestLoader_EnvOverride(t *testing.T) {
	t.Setenv("CORPUSFLOW_VOCAB_ROOT", "/env/vocab")
	t.Setenv("CORPUSFLOW_VOCAB_DOWNLOAD_TIMEOUT", "45s")
	t.Setenv("CORPUSFLOW_VOCAB_DOWNLOAD_RATE_PER_SEC", "2.5")
	t.Setenv("CORPUSFLOW_METRICS_ENABLED", "true")
	t.Setenv("CORPUSFLOW_LOG_OUTPUT_PATHS", "stderr, /var/log/corpusflow.log")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "/env/vocab", cfg.Vocab.Root)
	assert.Equal(t, 45*time.Second, cfg.Vocab.Download.Timeout)
	assert.Equal(t, 2.5, cfg.Vocab.Download.RatePerSec)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"stderr", "/var/log/corpusflow.log"}, cfg.Log.OutputPaths)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpusflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tokenize:\n  encoding: p50k_base\n"), 0o644))

	t.Setenv("CORPUSFLOW_TOKENIZE_ENCODING", "r50k_base")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "r50k_base", cfg.Tokenize.Encoding)
}

func TestLoader_Validators(t *testing.T) {
	_, err := NewLoader().
		WithValidator(func(c *Config) error {
			if c.Vocab.Root == "" {
				return assert.AnError
			}
			return nil
		}).
		Load()
	require.NoError(t, err)

	_, err = NewLoader().
		WithValidator(func(c *Config) error { return assert.AnError }).
		Load()
	require.Error(t, err)
}

func TestLogConfig_BuildLogger(t *testing.T) {
	logger, err := LogConfig{Level: "debug", Format: "console", OutputPaths: []string{"stderr"}}.BuildLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = LogConfig{Level: "not-a-level"}.BuildLogger()
	require.Error(t, err)
}
