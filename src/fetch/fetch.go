// Package fetch implements the verified downloader: given a URL, a target
// path, and the expected SHA-1 and size, it produces a verified file on
// disk or fails without leaving a partial file behind.
package fetch

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/httpclient"
	"github.com/voxforge/launcher-core/src/mcerr"
)

// Download fetches url, verifies it is exactly expectedSize bytes and hashes
// to expectedSHA1 (case-insensitive hex), then atomically writes it to
// target. Callers are responsible for skip-if-present idempotence; this
// function always performs the request.
func Download(ctx context.Context, url, target, expectedSHA1 string, expectedSize int64, e *events.EventEmitter) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	resp, err := httpclient.Shared().Open(ctx, url)
	if err != nil {
		e.Emit("error", err.Error())
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcerr.Network(url, err)
	}

	if expectedSize > 0 && int64(len(body)) != expectedSize {
		err := mcerr.SizeMismatch(target, expectedSize, int64(len(body)))
		e.Emit("error", err.Error())
		return err
	}

	if expectedSHA1 != "" {
		sum := sha1.Sum(body)
		got := hex.EncodeToString(sum[:])
		if !strings.EqualFold(got, expectedSHA1) {
			err := mcerr.HashMismatch(target, expectedSHA1, got)
			e.Emit("error", err.Error())
			return err
		}
	}

	return atomicWrite(target, body)
}

// atomicWrite writes data to a temp file in target's directory, then renames
// it into place, so a crash mid-write never leaves a half-written target.
func atomicWrite(target string, data []byte) error {
	tmp := target + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s to %s: %w", tmp, target, err)
	}
	return nil
}

// Exists reports whether target is already present; callers use this ahead
// of Download to get idempotent skip-if-present behaviour (the downloader
// itself always fetches).
func Exists(target string) bool {
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

// ProgressFunc reports bytesDone out of bytesTotal (0 if unknown).
type ProgressFunc func(bytesDone, bytesTotal int64)

// DownloadStream fetches url into memory, calling progress as bytes arrive.
// Used by the runtime provisioner, which needs the full body buffered for
// subsequent archive extraction rather than a file on disk.
func DownloadStream(ctx context.Context, url string, progress ProgressFunc) ([]byte, error) {
	resp, err := httpclient.Shared().Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	total := resp.ContentLength
	var buf []byte
	chunk := make([]byte, 32*1024)
	var done int64
	for {
		n, rerr := resp.Body.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			done += int64(n)
			if progress != nil {
				progress(done, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, mcerr.Network(url, rerr)
		}
	}
	return buf, nil
}
