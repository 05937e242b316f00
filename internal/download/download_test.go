package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/corpusflow/testutil"
	"github.com/BaSui01/corpusflow/types"
)

func testConfig() Config {
	return Config{
		Timeout:    5 * time.Second,
		RetryCount: 2,
		RetryDelay: 10 * time.Millisecond,
	}
}

func TestFetcher_Fetch(t *testing.T) {
	body := []byte("vocab bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "nested", "out.bin")
	fetcher := NewFetcher(testConfig(), zap.NewNop())

	err := fetcher.Fetch(testutil.TestContext(t), server.URL, path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, got)

	// No stray .part files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetcher_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "out.bin")
	fetcher := NewFetcher(testConfig(), zap.NewNop())

	err := fetcher.Fetch(testutil.TestContext(t), server.URL, path)
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestFetcher_ExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "out.bin")
	fetcher := NewFetcher(testConfig(), zap.NewNop())

	err := fetcher.Fetch(testutil.TestContext(t), server.URL, path)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrDownloadFailed))
	assert.NoFileExists(t, path)
}

func TestFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(testConfig(), zap.NewNop())
	err := fetcher.Fetch(testutil.CancelledContext(), server.URL, filepath.Join(t.TempDir(), "out.bin"))
	require.Error(t, err)
	// Cancellation surfaces with the same code as any other failure.
	assert.True(t, types.IsCode(err, types.ErrDownloadFailed))
	assert.ErrorIs(t, err, context.Canceled)

	// Same for cancellation inside the rate limiter.
	cfg := testConfig()
	cfg.RatePerSec = 0.001
	throttled := NewFetcher(cfg, zap.NewNop())
	err = throttled.Fetch(testutil.CancelledContext(), server.URL, filepath.Join(t.TempDir(), "out.bin"))
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrDownloadFailed))
}

func TestSHA1Checks(t *testing.T) {
	data := []byte("some vocab contents")
	path := testutil.WriteFile(t, t.TempDir(), "f.vocab", data)

	sum, err := SHA1File(path)
	require.NoError(t, err)
	assert.Equal(t, testutil.SHA1Hex(data), sum)

	ok, err := CheckSHA1(path, testutil.SHA1Hex(data))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckSHA1(path, "0000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckSHA1(filepath.Join(t.TempDir(), "missing"), "00")
	require.Error(t, err)
}
