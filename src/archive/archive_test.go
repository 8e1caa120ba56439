package archive_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxforge/launcher-core/src/archive"
	"github.com/voxforge/launcher-core/src/platform"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtract_SkipsExcludedPrefixes(t *testing.T) {
	data := buildZip(t, map[string]string{
		"lib/x86_64/libfoo.so": "native-bytes",
		"META-INF/MANIFEST.MF": "manifest-bytes",
	})

	dest := t.TempDir()
	err := archive.Extract(data, platform.Zip, dest, archive.Excludes{"META-INF/"})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "lib/x86_64/libfoo.so"))
	assert.NoFileExists(t, filepath.Join(dest, "META-INF/MANIFEST.MF"))
}

func TestExtract_RefusesPathTraversal(t *testing.T) {
	data := buildZip(t, map[string]string{
		"../../escaped.txt": "should not escape",
		"ok.txt":            "fine",
	})

	parent := t.TempDir()
	dest := filepath.Join(parent, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	err := archive.Extract(data, platform.Zip, dest, nil)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "ok.txt"))
	_, statErr := os.Stat(filepath.Join(parent, "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtract_ContainsRuleMatchesNestedExclude(t *testing.T) {
	// The exclude rule matches a prefix appearing anywhere in the entry
	// path, not just at its start, since upstream JARs sometimes nest
	// META-INF under an unrelated top-level directory.
	data := buildZip(t, map[string]string{
		"some/nested/META-INF/services/x": "service-registration",
		"some/nested/keep.txt":            "keep",
	})

	dest := t.TempDir()
	err := archive.Extract(data, platform.Zip, dest, archive.Excludes{"META-INF/"})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dest, "some/nested/META-INF/services/x"))
	assert.FileExists(t, filepath.Join(dest, "some/nested/keep.txt"))
}

func TestExtract_UnknownKindErrors(t *testing.T) {
	err := archive.Extract(nil, "rar", t.TempDir(), nil)
	assert.Error(t, err)
}
