package download

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BaSui01/corpusflow/types"
)

// ExtractArchive extracts a .zip, .tar, .tgz, or .tar.gz archive into
// targetDir. Entries that would escape targetDir are rejected.
func ExtractArchive(file, targetDir string) error {
	switch {
	case strings.HasSuffix(file, ".zip"):
		return extractZip(file, targetDir)
	case strings.HasSuffix(file, ".tar"):
		return extractTar(file, targetDir, false)
	case strings.HasSuffix(file, ".tgz"), strings.HasSuffix(file, ".tar.gz"), strings.HasSuffix(file, ".gz"):
		return extractTar(file, targetDir, true)
	default:
		return types.NewErrorf(types.ErrArchiveError, "unrecognized archive type: %s", file)
	}
}

// safeJoin joins name under dir, rejecting path traversal.
func safeJoin(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if !strings.HasPrefix(path, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", types.NewErrorf(types.ErrArchiveError, "illegal archive path: %s", name)
	}
	return path, nil
}

func extractZip(file, targetDir string) error {
	reader, err := zip.OpenReader(file)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		path, err := safeJoin(targetDir, entry.Name)
		if err != nil {
			return err
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := writeZipEntry(entry, path); err != nil {
			return err
		}
	}
	return nil
}

func writeZipEntry(entry *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open zip entry %s: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return err
}

func extractTar(file, targetDir string, gzipped bool) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open tar: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	reader := tar.NewReader(src)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		path, err := safeJoin(targetDir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				return err
			}
			_, err = io.Copy(dst, reader)
			if cerr := dst.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
		}
	}
}
