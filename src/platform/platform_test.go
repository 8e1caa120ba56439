package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxforge/launcher-core/src/mcerr"
	"github.com/voxforge/launcher-core/src/platform"
)

func TestPathSeparator(t *testing.T) {
	sep, err := platform.PathSeparator(platform.Windows)
	assert.NoError(t, err)
	assert.Equal(t, ";", sep)

	sep, err = platform.PathSeparator(platform.Linux)
	assert.NoError(t, err)
	assert.Equal(t, ":", sep)

	_, err = platform.PathSeparator(platform.Unknown)
	assert.ErrorIs(t, err, mcerr.ErrUnsupportedPlatform)
}

func TestArchive(t *testing.T) {
	kind, err := platform.Archive(platform.Windows)
	assert.NoError(t, err)
	assert.Equal(t, platform.Zip, kind)

	kind, err = platform.Archive(platform.OSX)
	assert.NoError(t, err)
	assert.Equal(t, platform.TarGz, kind)
}

func TestArchBits(t *testing.T) {
	assert.Equal(t, "32", platform.ArchBits(platform.X86))
	assert.Equal(t, "64", platform.ArchBits(platform.X64))
	assert.Equal(t, "64", platform.ArchBits(platform.ARM))
}

func TestAdoptiumName(t *testing.T) {
	name, err := platform.AdoptiumName(platform.OSX)
	assert.NoError(t, err)
	assert.Equal(t, "mac", name)

	name, err = platform.SimpleName(platform.OSX)
	assert.NoError(t, err)
	assert.Equal(t, "osx", name)
}
