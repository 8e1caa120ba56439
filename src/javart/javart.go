// Package javart provisions Java runtimes: it resolves a
// (distribution, major-version) pair to a local java binary, downloading
// and unpacking the distribution's archive on a cache miss. Each pair owns
// one slot directory under the runtimes root, holding a single extracted
// archive.
package javart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mholt/archiver/v3"
	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/fetch"
	"github.com/voxforge/launcher-core/src/mcerr"
	"github.com/voxforge/launcher-core/src/platform"
)

// Distribution names a Java distribution and resolves its download URL for
// a given major version. The provisioner's contract does not change as
// distributions are added; Temurin is the built-in one.
type Distribution interface {
	Name() string
	URL(major uint32) (string, error)
}

// Temurin resolves Eclipse Adoptium's binary API.
type Temurin struct{}

func (Temurin) Name() string { return "temurin" }

func (Temurin) URL(major uint32) (string, error) {
	osName, err := platform.AdoptiumName(platform.Current)
	if err != nil {
		return "", err
	}
	var archName string
	switch platform.CurrentArch {
	case platform.X64:
		archName = "x64"
	case platform.AArch64:
		archName = "aarch64"
	case platform.X86:
		archName = "x86-32"
	case platform.ARM:
		archName = "arm"
	default:
		return "", mcerr.ErrUnsupportedPlatform
	}
	return fmt.Sprintf(
		"https://api.adoptium.net/v3/binary/latest/%d/ga/%s/%s/jdk/hotspot/normal/eclipse",
		major, osName, archName,
	), nil
}

func slotDir(runtimesRoot string, dist Distribution, major uint32) string {
	return filepath.Join(runtimesRoot, fmt.Sprintf("%s_%d", dist.Name(), major))
}

func relativeExecutable(os platform.OS) string {
	switch os {
	case platform.Windows:
		return filepath.Join("bin", "javaw.exe")
	case platform.OSX:
		return filepath.Join("Contents", "Home", "bin", "java")
	default:
		return filepath.Join("bin", "java")
	}
}

// Find resolves a runtime slot to its java binary. The slot directory holds
// exactly one entry (the archive's own root directory, whose name is not
// assumed); the executable path is computed relative to that root.
func Find(runtimesRoot string, dist Distribution, major uint32) (string, error) {
	slot := slotDir(runtimesRoot, dist, major)

	entries, err := os.ReadDir(slot)
	if err != nil || len(entries) == 0 {
		return "", mcerr.RuntimeSlotMissing(slot)
	}

	archiveRoot := filepath.Join(slot, entries[0].Name())
	binPath := filepath.Join(archiveRoot, relativeExecutable(platform.Current))

	info, err := os.Stat(binPath)
	if err != nil {
		return "", mcerr.RuntimeBinaryMissing(binPath)
	}

	if platform.Current != platform.Windows {
		if info.Mode()&0o100 == 0 {
			if err := os.Chmod(binPath, info.Mode()|0o100); err != nil {
				return "", fmt.Errorf("set execute bit on %s: %w", binPath, err)
			}
		}
	}

	abs, err := filepath.Abs(binPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", binPath, err)
	}
	return abs, nil
}

// Download wipes any existing slot, fetches the distribution's archive for
// the current OS/arch, extracts it into a fresh slot, then resolves it with
// Find. A slot is always consistent or absent: it is removed before a new
// extraction begins.
func Download(ctx context.Context, runtimesRoot string, dist Distribution, major uint32, progress fetch.ProgressFunc, e *events.EventEmitter) (string, error) {
	slot := slotDir(runtimesRoot, dist, major)

	if err := os.RemoveAll(slot); err != nil {
		return "", fmt.Errorf("clear runtime slot %s: %w", slot, err)
	}
	if err := os.MkdirAll(slot, 0o755); err != nil {
		return "", fmt.Errorf("create runtime slot %s: %w", slot, err)
	}

	url, err := dist.URL(major)
	if err != nil {
		return "", err
	}

	e.Emit("runtime_download_start", url)
	body, err := fetch.DownloadStream(ctx, url, progress)
	if err != nil {
		e.Emit("error", "failed to download runtime: "+err.Error())
		return "", err
	}
	e.Emit("runtime_downloaded", humanize.Bytes(uint64(len(body))))

	kind, err := platform.Archive(platform.Current)
	if err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp("", "javart-*."+string(kind))
	if err != nil {
		return "", fmt.Errorf("create temp archive: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(body); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("write temp archive %s: %w", tmpPath, err)
	}
	tmpFile.Close()

	if err := archiver.Unarchive(tmpPath, slot); err != nil {
		os.RemoveAll(slot)
		return "", fmt.Errorf("%w: extract runtime archive: %v", mcerr.ErrArchive, err)
	}

	e.Emit("runtime_extracted", slot)
	return Find(runtimesRoot, dist, major)
}
