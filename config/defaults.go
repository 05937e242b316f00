// =============================================================================
// corpusflow default configuration
// =============================================================================
package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Vocab:    DefaultVocabConfig(),
		Tokenize: DefaultTokenizeConfig(),
		Log:      DefaultLogConfig(),
		Metrics:  DefaultMetricsConfig(),
	}
}

// DefaultVocabConfig returns the default vocab configuration.
func DefaultVocabConfig() VocabConfig {
	root := ".corpusflow/vocab"
	if home, err := os.UserHomeDir(); err == nil {
		root = filepath.Join(home, ".corpusflow", "vocab")
	}
	return VocabConfig{
		Root:    root,
		RepoURL: "https://apache-mxnet.s3-accelerate.dualstack.amazonaws.com/",
		Download: DownloadConfig{
			Timeout:    60 * time.Second,
			RetryCount: 3,
			RetryDelay: 2 * time.Second,
		},
	}
}

// DefaultTokenizeConfig returns the default tokenizer configuration.
func DefaultTokenizeConfig() TokenizeConfig {
	return TokenizeConfig{
		Encoding: "cl100k_base",
	}
}

// DefaultLogConfig returns the default log configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{"stderr"},
	}
}

// DefaultMetricsConfig returns the default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "corpusflow",
	}
}
