package vocab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BaSui01/corpusflow/internal/download"
	"github.com/BaSui01/corpusflow/internal/metrics"
	"github.com/BaSui01/corpusflow/types"
)

// urlFormat is the hosted location of zipped vocab files, relative to
// the repository URL.
const urlFormat = "%sgluon/dataset/vocab/%s.zip"

// DefaultRepoURL hosts the pretrained vocabularies.
const DefaultRepoURL = "https://apache-mxnet.s3-accelerate.dualstack.amazonaws.com/"

// Config configures a Loader.
type Config struct {
	// RepoURL is the base URL of the vocab repository.
	RepoURL string `yaml:"repo_url" json:"repo_url"`
	// Root is the local directory where vocab files are cached.
	Root string `yaml:"root" json:"root"`
	// Download configures the underlying HTTP fetcher.
	Download download.Config `yaml:"download" json:"download"`
}

// DefaultConfig returns the default loader configuration. The cache
// root defaults to ~/.corpusflow/vocab.
func DefaultConfig() Config {
	root := ".corpusflow/vocab"
	if home, err := os.UserHomeDir(); err == nil {
		root = filepath.Join(home, ".corpusflow", "vocab")
	}
	return Config{
		RepoURL:  DefaultRepoURL,
		Root:     root,
		Download: download.DefaultConfig(),
	}
}

// Loader retrieves pretrained vocabulary files, keeping a SHA-1-checked
// local cache. Concurrent loads of the same vocabulary share a single
// download.
type Loader struct {
	config  Config
	fetcher *download.Fetcher
	group   singleflight.Group
	metrics *metrics.Collector
	logger  *zap.Logger
}

// Option configures optional Loader collaborators.
type Option func(*Loader)

// WithMetrics attaches a metrics collector to the loader.
func WithMetrics(collector *metrics.Collector) Option {
	return func(l *Loader) { l.metrics = collector }
}

// NewLoader creates a Loader. A nil logger disables logging.
func NewLoader(config Config, logger *zap.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.RepoURL == "" {
		config.RepoURL = DefaultRepoURL
	}
	l := &Loader{
		config:  config,
		fetcher: download.NewFetcher(config.Download, logger),
		logger:  logger.With(zap.String("component", "vocab")),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the contents of the named pretrained vocabulary file,
// downloading and verifying it when the local cache cannot serve it.
func (l *Loader) Load(ctx context.Context, name string) ([]byte, error) {
	v, err, _ := l.group.Do(name, func() (any, error) {
		return l.load(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *Loader) load(ctx context.Context, name string) ([]byte, error) {
	sha1Hash, err := SHA1(name)
	if err != nil {
		return nil, err
	}
	fileName := fmt.Sprintf("%s-%s", name, sha1Hash[:8])
	filePath := filepath.Join(l.config.Root, fileName+".vocab")

	if _, err := os.Stat(filePath); err == nil {
		ok, err := download.CheckSHA1(filePath, sha1Hash)
		if err != nil {
			return nil, err
		}
		if ok {
			if l.metrics != nil {
				l.metrics.RecordVocabCacheHit(name)
			}
			return os.ReadFile(filePath)
		}
		if l.metrics != nil {
			l.metrics.RecordHashMismatch(name)
		}
		l.logger.Warn("cached vocab file content mismatch, downloading again",
			zap.String("name", name),
			zap.String("path", filePath))
		// The stale file must go, or extraction below would be skipped
		// and the final hash check would run against it.
		if err := os.Remove(filePath); err != nil {
			return nil, err
		}
	} else {
		l.logger.Info("vocab file not found locally, downloading",
			zap.String("name", name),
			zap.String("path", filePath))
	}
	if l.metrics != nil {
		l.metrics.RecordVocabCacheMiss(name)
	}

	if err := os.MkdirAll(l.config.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create vocab root: %w", err)
	}

	// A unique prefix keeps concurrent processes from clobbering each
	// other's temp archives.
	zipPath := filepath.Join(l.config.Root, uuid.NewString()+fileName+".zip")
	repoURL := l.config.RepoURL
	if !strings.HasSuffix(repoURL, "/") {
		repoURL += "/"
	}

	start := time.Now()
	err = l.fetcher.Fetch(ctx, fmt.Sprintf(urlFormat, repoURL, fileName), zipPath)
	if l.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		l.metrics.RecordDownload(status, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		if err := download.ExtractArchive(zipPath, l.config.Root); err != nil {
			return nil, err
		}
	}
	if err := os.Remove(zipPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	ok, err := download.CheckSHA1(filePath, sha1Hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		if l.metrics != nil {
			l.metrics.RecordHashMismatch(name)
		}
		return nil, types.NewErrorf(types.ErrHashMismatch,
			"downloaded vocab %s has unexpected content hash", name)
	}
	return os.ReadFile(filePath)
}

// LoadAs loads the named pretrained vocabulary and parses it with the
// supplied factory. The serialization format is owned by the caller's
// vocabulary type.
func LoadAs[V any](ctx context.Context, l *Loader, name string, parse func([]byte) (V, error)) (V, error) {
	var zero V
	raw, err := l.Load(ctx, name)
	if err != nil {
		return zero, err
	}
	v, err := parse(raw)
	if err != nil {
		return zero, fmt.Errorf("parse vocab %s: %w", name, err)
	}
	return v, nil
}
