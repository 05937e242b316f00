// Package download provides the fetch-and-verify primitives used by the
// vocab loader: HTTP download to a local path with retries and rate
// limiting, SHA-1 content verification, and archive extraction.
// This package is internal and should not be imported by external projects.
package download

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/corpusflow/internal/tlsutil"
	"github.com/BaSui01/corpusflow/types"
)

// Config configures a Fetcher.
type Config struct {
	// Timeout bounds a single HTTP request.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// RetryCount is the number of retries after a failed attempt.
	RetryCount int `yaml:"retry_count" json:"retry_count"`
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay"`
	// RatePerSec throttles outgoing requests; 0 disables throttling.
	RatePerSec float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
}

// DefaultConfig returns sensible download defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:    60 * time.Second,
		RetryCount: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Fetcher downloads remote files to local paths.
type Fetcher struct {
	config  Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewFetcher creates a Fetcher. A nil logger means no logging.
func NewFetcher(config Config, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	var limiter *rate.Limiter
	if config.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RatePerSec), 1)
	}
	return &Fetcher{
		config:  config,
		client:  tlsutil.SecureHTTPClient(config.Timeout),
		limiter: limiter,
		logger:  logger.With(zap.String("component", "download")),
	}
}

// Fetch downloads url to path, overwriting any existing file. The
// download is written to a temporary sibling file and renamed into
// place so a failed attempt never leaves a truncated target behind.
func (f *Fetcher) Fetch(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= f.config.RetryCount; attempt++ {
		if attempt > 0 {
			f.logger.Warn("download attempt failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return types.NewErrorf(types.ErrDownloadFailed, "download %s", url).
					WithCause(ctx.Err())
			case <-time.After(f.config.RetryDelay):
			}
		}
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return types.NewErrorf(types.ErrDownloadFailed, "download %s", url).
					WithCause(err)
			}
		}
		if lastErr = f.fetchOnce(ctx, url, path); lastErr == nil {
			return nil
		}
	}
	return types.NewErrorf(types.ErrDownloadFailed, "download %s", url).
		WithCause(lastErr).
		WithRetryable(true)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".part-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	f.logger.Info("downloaded file",
		zap.String("url", url),
		zap.String("path", path),
		zap.Int64("bytes", written))
	return nil
}

// SHA1File returns the lowercase hex SHA-1 digest of the file at path.
func SHA1File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := sha1.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CheckSHA1 reports whether the file at path has the expected SHA-1
// digest.
func CheckSHA1(path, expected string) (bool, error) {
	actual, err := SHA1File(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}
