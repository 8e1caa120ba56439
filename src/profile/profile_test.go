package profile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxforge/launcher-core/src/profile"
)

func TestProfile_PathsAreRootedUnderDataRootName(t *testing.T) {
	p := profile.Profile{Name: "demo", DataRoot: "/data"}

	assert.Equal(t, filepath.Join("/data", "demo"), p.Dir())
	assert.Equal(t, filepath.Join("/data", "demo", "demo.jar"), p.JarPath())
	assert.Equal(t, filepath.Join("/data", "demo", "libraries"), p.LibrariesDir())
	assert.Equal(t, filepath.Join("/data", "demo", "natives"), p.NativesDir())
	assert.Equal(t, filepath.Join("/data", "demo", "assets"), p.AssetsDir())
}

func TestProfile_VersionJSONPath_OnlyForNeoForgeAndForge(t *testing.T) {
	vanilla := profile.Profile{Name: "demo", DataRoot: "/data", Loader: "vanilla"}
	assert.Empty(t, vanilla.VersionJSONPath())

	neo := profile.Profile{Name: "demo", DataRoot: "/data", Loader: "neoforge", GameVersion: "1.20.4", LoaderVersion: "20.4.80"}
	assert.Equal(t, filepath.Join("/data", "demo", "neoforge-20.4.80.json"), neo.VersionJSONPath())

	forge := profile.Profile{Name: "demo", DataRoot: "/data", Loader: "forge", GameVersion: "1.20.1", LoaderVersion: "47.1.99"}
	assert.Equal(t, filepath.Join("/data", "demo", "forge-1.20.1-47.1.99.json"), forge.VersionJSONPath())
}

func TestLoadVersionJSON_SelfContainedDocumentNeedsNoParent(t *testing.T) {
	// A document with no inheritsFrom must resolve without touching the
	// upstream manifest service at all.
	path := filepath.Join(t.TempDir(), "neoforge-20.4.80.json")
	body := `{
		"mainClass": "net.neoforged.fancymodloader.BootstrapLauncher",
		"libraries": [{"name": "net.neoforged:neoforge:20.4.80"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	doc, err := profile.LoadVersionJSON(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "net.neoforged.fancymodloader.BootstrapLauncher", doc.MainClass)
	require.Len(t, doc.Libraries, 1)
	assert.Equal(t, "net.neoforged:neoforge:20.4.80", doc.Libraries[0].Name)
}

func TestLoadVersionJSON_MissingFileFails(t *testing.T) {
	_, err := profile.LoadVersionJSON(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
