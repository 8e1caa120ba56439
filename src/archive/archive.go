// Package archive unpacks a .zip or .tar.gz byte stream into a destination
// directory, honouring a caller-supplied set of exclude prefixes and
// refusing path-traversal entries. Entries are iterated directly rather
// than handed to a generic unarchive helper: the exclude and zip-slip
// filtering needs a per-entry hook.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxforge/launcher-core/src/mcerr"
	"github.com/voxforge/launcher-core/src/platform"
)

// Excludes is the set of path prefixes a caller wants skipped. An entry is
// skipped if its forward-slash path starts with or contains any prefix;
// "META-INF/" excludes regardless of where it sits in the JAR's internal
// layout.
type Excludes []string

func (ex Excludes) matches(entryPath string) bool {
	for _, prefix := range ex {
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(entryPath, prefix) || strings.Contains(entryPath, prefix) {
			return true
		}
	}
	return false
}

// Extract unpacks data (a complete, in-memory archive body) of the given
// kind into dest, skipping entries matched by excludes. Extraction runs
// synchronously on the calling goroutine; callers that want it off the
// cooperative scheduler should run Extract inside their own worker (see
// vanilla.InstallDescriptor, which dispatches onto a goroutine per
// sub-pipeline).
func Extract(data []byte, kind platform.ArchiveFormat, dest string, excludes Excludes) error {
	switch kind {
	case platform.Zip:
		return extractZip(data, dest, excludes)
	case platform.TarGz:
		return extractTarGz(data, dest, excludes)
	default:
		return fmt.Errorf("%w: unknown archive kind %q", mcerr.ErrArchive, kind)
	}
}

func extractZip(data []byte, dest string, excludes Excludes) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: open zip: %v", mcerr.ErrArchive, err)
	}

	for _, f := range r.File {
		entryPath := filepath.ToSlash(f.Name)
		if excludes.matches(entryPath) {
			continue
		}

		outPath, ok := securePath(dest, entryPath)
		if !ok {
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(outPath, 0o755); err != nil {
				return fmt.Errorf("%w: mkdir %s: %v", mcerr.ErrArchive, outPath, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %v", mcerr.ErrArchive, filepath.Dir(outPath), err)
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: open entry %s: %v", mcerr.ErrArchive, f.Name, err)
		}
		err = writeFile(outPath, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTarGz(data []byte, dest string, excludes Excludes) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: open gzip: %v", mcerr.ErrArchive, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: read tar entry: %v", mcerr.ErrArchive, err)
		}

		entryPath := filepath.ToSlash(hdr.Name)
		if excludes.matches(entryPath) {
			continue
		}

		outPath, ok := securePath(dest, entryPath)
		if !ok {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(outPath, 0o755); err != nil {
				return fmt.Errorf("%w: mkdir %s: %v", mcerr.ErrArchive, outPath, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("%w: mkdir %s: %v", mcerr.ErrArchive, filepath.Dir(outPath), err)
			}
			if err := writeFile(outPath, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		default:
			// symlinks and other special entries are not part of a JDK's
			// on-disk shape this component cares about; skip them.
		}
	}
	return nil
}

// securePath resolves an archive-internal entry path against dest, refusing
// any entry whose cleaned path would escape dest (a zip-slip / path
// traversal attempt). Such entries are silently skipped rather than
// aborting the whole extraction.
func securePath(dest, entryPath string) (string, bool) {
	if entryPath == "" || strings.HasPrefix(entryPath, "/") {
		return "", false
	}
	cleaned := filepath.Clean(filepath.FromSlash(entryPath))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(dest, cleaned), true
}

func writeFile(path string, r io.Reader, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", mcerr.ErrArchive, path, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("%w: write %s: %v", mcerr.ErrArchive, path, err)
	}
	return nil
}
