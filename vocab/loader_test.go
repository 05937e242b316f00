package vocab

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/corpusflow/internal/download"
	"github.com/BaSui01/corpusflow/internal/metrics"
	"github.com/BaSui01/corpusflow/testutil"
	"github.com/BaSui01/corpusflow/types"
)

// vocabServer serves zipped vocab fixtures the way the hosted
// repository lays them out and counts the requests it receives.
type vocabServer struct {
	*httptest.Server
	requests atomic.Int64
}

func newVocabServer(t *testing.T, name, short string, contents []byte) *vocabServer {
	t.Helper()

	fileName := fmt.Sprintf("%s-%s", name, short)
	zipDir := t.TempDir()
	zipPath := testutil.ZipFixture(t, zipDir, fileName+".zip", fileName+".vocab", contents)

	vs := &vocabServer{}
	vs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vs.requests.Add(1)
		if r.URL.Path != "/gluon/dataset/vocab/"+fileName+".zip" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, zipPath)
	}))
	t.Cleanup(vs.Close)
	return vs
}

func newTestLoader(t *testing.T, repoURL string) (*Loader, string) {
	t.Helper()
	root := t.TempDir()
	loader := NewLoader(Config{
		RepoURL: repoURL,
		Root:    root,
		Download: download.Config{
			Timeout:    5 * time.Second,
			RetryCount: 0,
			RetryDelay: 10 * time.Millisecond,
		},
	}, zap.NewNop())
	return loader, root
}

func TestLoader_DownloadAndCache(t *testing.T) {
	contents := []byte("a\nb\nc\n<unk>\n")
	sha := testutil.SHA1Hex(contents)
	RegisterHosted("loader-test-basic", sha)

	server := newVocabServer(t, "loader-test-basic", sha[:8], contents)
	loader, root := newTestLoader(t, server.URL)
	ctx := testutil.TestContext(t)

	got, err := loader.Load(ctx, "loader-test-basic")
	require.NoError(t, err)
	assert.Equal(t, contents, got)
	assert.EqualValues(t, 1, server.requests.Load())

	// The temp zip must be gone, the vocab file cached.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, fmt.Sprintf("loader-test-basic-%s.vocab", sha[:8]), entries[0].Name())

	// Second load is served from cache without touching the network.
	got, err = loader.Load(ctx, "loader-test-basic")
	require.NoError(t, err)
	assert.Equal(t, contents, got)
	assert.EqualValues(t, 1, server.requests.Load())
}

func TestLoader_RedownloadsOnCacheCorruption(t *testing.T) {
	contents := []byte("token-per-line\n")
	sha := testutil.SHA1Hex(contents)
	RegisterHosted("loader-test-corrupt", sha)

	server := newVocabServer(t, "loader-test-corrupt", sha[:8], contents)
	loader, root := newTestLoader(t, server.URL)
	ctx := testutil.TestContext(t)

	// Seed the cache with a file whose hash does not match.
	cached := filepath.Join(root, fmt.Sprintf("loader-test-corrupt-%s.vocab", sha[:8]))
	require.NoError(t, os.WriteFile(cached, []byte("tampered"), 0o644))

	got, err := loader.Load(ctx, "loader-test-corrupt")
	require.NoError(t, err)
	assert.Equal(t, contents, got)
	assert.EqualValues(t, 1, server.requests.Load())

	// The tampered file has been replaced on disk, not just bypassed.
	onDisk, err := os.ReadFile(cached)
	require.NoError(t, err)
	assert.Equal(t, contents, onDisk)
}

func TestLoader_HashMismatchAfterDownload(t *testing.T) {
	contents := []byte("served-content\n")
	// Register a hash the served content can never match.
	sha := testutil.SHA1Hex([]byte("expected-content"))
	RegisterHosted("loader-test-mismatch", sha)

	server := newVocabServer(t, "loader-test-mismatch", sha[:8], contents)
	loader, _ := newTestLoader(t, server.URL)

	_, err := loader.Load(testutil.TestContext(t), "loader-test-mismatch")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrHashMismatch))
}

func TestLoader_UnknownName(t *testing.T) {
	loader, _ := newTestLoader(t, "http://127.0.0.1:0")
	_, err := loader.Load(testutil.TestContext(t), "definitely-not-hosted")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrVocabNotFound))
}

func TestLoader_DownloadFailure(t *testing.T) {
	contents := []byte("x\n")
	sha := testutil.SHA1Hex(contents)
	RegisterHosted("loader-test-unavailable", sha)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	loader, _ := newTestLoader(t, server.URL)
	_, err := loader.Load(testutil.TestContext(t), "loader-test-unavailable")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrDownloadFailed))
	assert.True(t, types.IsRetryable(err))
}

func TestLoader_ConcurrentLoadsShareDownload(t *testing.T) {
	contents := []byte("concurrent\n")
	sha := testutil.SHA1Hex(contents)
	RegisterHosted("loader-test-concurrent", sha)

	server := newVocabServer(t, "loader-test-concurrent", sha[:8], contents)
	loader, _ := newTestLoader(t, server.URL)
	ctx := testutil.TestContext(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := loader.Load(ctx, "loader-test-concurrent")
			assert.NoError(t, err)
			assert.Equal(t, contents, got)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, server.requests.Load())
}

func TestLoader_Metrics(t *testing.T) {
	contents := []byte("metrics\n")
	sha := testutil.SHA1Hex(contents)
	RegisterHosted("loader-test-metrics", sha)

	server := newVocabServer(t, "loader-test-metrics", sha[:8], contents)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("corpusflow_test", reg, zap.NewNop())

	root := t.TempDir()
	loader := NewLoader(Config{
		RepoURL:  server.URL,
		Root:     root,
		Download: download.Config{Timeout: 5 * time.Second},
	}, zap.NewNop(), WithMetrics(collector))
	ctx := testutil.TestContext(t)

	_, err := loader.Load(ctx, "loader-test-metrics")
	require.NoError(t, err)
	_, err = loader.Load(ctx, "loader-test-metrics")
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]float64{}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			byName[fam.GetName()] += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, byName["corpusflow_test_vocab_cache_misses_total"])
	assert.Equal(t, 1.0, byName["corpusflow_test_vocab_cache_hits_total"])
	assert.Equal(t, 1.0, byName["corpusflow_test_downloads_total"])
}

func TestLoadAs(t *testing.T) {
	contents := []byte("alpha\nbeta\n")
	sha := testutil.SHA1Hex(contents)
	RegisterHosted("loader-test-parse", sha)

	server := newVocabServer(t, "loader-test-parse", sha[:8], contents)
	loader, _ := newTestLoader(t, server.URL)

	n, err := LoadAs(testutil.TestContext(t), loader, "loader-test-parse", func(raw []byte) (int, error) {
		return len(raw), nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(contents), n)

	_, err = LoadAs(testutil.TestContext(t), loader, "loader-test-parse", func(raw []byte) (int, error) {
		return 0, fmt.Errorf("malformed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}
