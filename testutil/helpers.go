// =============================================================================
// Test helpers
// =============================================================================
// Shared helpers for corpusflow tests: bounded test contexts, SHA-1
// digests, and zip fixtures for vocab-loader tests.
// =============================================================================
package testutil

import (
	"archive/zip"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestContext returns a context bounded by a 30s timeout, cancelled on
// test cleanup.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// CancelledContext returns an already-cancelled context.
func CancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// SHA1Hex returns the lowercase hex SHA-1 digest of data.
func SHA1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// WriteFile writes data to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ZipFixture writes a zip archive at dir/zipName containing a single
// entry with the given name and contents, and returns the archive path.
func ZipFixture(t *testing.T, dir, zipName, entryName string, contents []byte) string {
	t.Helper()
	path := filepath.Join(dir, zipName)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip %s: %v", path, err)
	}
	w := zip.NewWriter(f)
	entry, err := w.Create(entryName)
	if err != nil {
		t.Fatalf("create zip entry %s: %v", entryName, err)
	}
	if _, err := entry.Write(contents); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close zip file: %v", err)
	}
	return path
}
