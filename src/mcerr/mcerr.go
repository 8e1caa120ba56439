// Package mcerr defines the error taxonomy shared by every installer and
// launcher component: a small set of sentinel kinds that callers can test
// for with errors.Is, each wrapped with the failing URL or path.
package mcerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Compare with errors.Is, never with ==, since every
// returned error wraps one of these with context via fmt.Errorf("%w").
var (
	ErrNetwork              = errors.New("network error")
	ErrHashMismatch         = errors.New("hash mismatch")
	ErrSizeMismatch         = errors.New("size mismatch")
	ErrManifestMissingField = errors.New("manifest missing field")
	ErrUnsupportedPlatform  = errors.New("unsupported platform")
	ErrRuntimeSlotMissing   = errors.New("runtime slot missing")
	ErrRuntimeBinaryMissing = errors.New("runtime binary missing")
	ErrArchive              = errors.New("archive error")
	ErrInstallerFailure     = errors.New("installer failure")
	ErrNonZeroExit          = errors.New("non-zero exit")
	ErrLoaderNotSupported   = errors.New("loader not supported")
)

// Network wraps a transport-level failure for a specific URL.
func Network(url string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrNetwork, url, cause)
}

// SizeMismatch reports a verified-download size check failure.
func SizeMismatch(path string, want, got int64) error {
	return fmt.Errorf("%w: %s: expected %d bytes, got %d", ErrSizeMismatch, path, want, got)
}

// HashMismatch reports a verified-download SHA-1 check failure.
func HashMismatch(path, want, got string) error {
	return fmt.Errorf("%w: %s: expected sha1 %s, got %s", ErrHashMismatch, path, want, got)
}

// ManifestMissingField reports an absent required field in an upstream descriptor.
func ManifestMissingField(field string) error {
	return fmt.Errorf("%w: %s", ErrManifestMissingField, field)
}

// RuntimeSlotMissing reports an absent (distribution, major) runtime slot directory.
func RuntimeSlotMissing(path string) error {
	return fmt.Errorf("%w: %s", ErrRuntimeSlotMissing, path)
}

// RuntimeBinaryMissing reports a runtime slot whose expected executable is absent.
func RuntimeBinaryMissing(path string) error {
	return fmt.Errorf("%w: %s", ErrRuntimeBinaryMissing, path)
}

// InstallerFailure reports a non-zero exit from a loader's external installer (e.g. NeoForge).
func InstallerFailure(exitCode int) error {
	return fmt.Errorf("%w: exit code %d", ErrInstallerFailure, exitCode)
}

// NonZeroExit reports a supervised child process exit code outside the known-success set.
func NonZeroExit(code int) error {
	return fmt.Errorf("%w: %d", ErrNonZeroExit, code)
}

// LoaderNotSupported reports dispatch on a loader string with no strategy.
func LoaderNotSupported(loader string) error {
	return fmt.Errorf("%w: %s", ErrLoaderNotSupported, loader)
}
