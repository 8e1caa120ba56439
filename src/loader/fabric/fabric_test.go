package fabric_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxforge/launcher-core/src/loader/fabric"
)

const profileFixture = `{
	"id": "1.20.2-loom.0.15.0",
	"inheritsFrom": "1.20.2",
	"mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
	"libraries": [
		{"name": "net.fabricmc:fabric-loader:0.15.0", "url": "https://maven.fabricmc.net/"},
		{"name": "org.ow2.asm:asm:9.6"}
	]
}`

const loaderListFixture = `[
	{"version": "0.15.9", "stable": false},
	{"version": "0.15.7", "stable": true},
	{"version": "0.14.0", "stable": true}
]`

// TestProfile_DecodesLibrariesWithAndWithoutRepositoryURL covers the shape
// Fabric's meta server actually returns: some coordinate-only libraries
// carry their own maven repository, others fall through to Install's
// maven.fabricmc.net default.
func TestProfile_DecodesLibrariesWithAndWithoutRepositoryURL(t *testing.T) {
	var profile fabric.Profile
	require.NoError(t, json.Unmarshal([]byte(profileFixture), &profile))

	assert.Equal(t, "net.fabricmc.loader.impl.launch.knot.KnotClient", profile.MainClass)
	require.Len(t, profile.Libraries, 2)
	assert.Equal(t, "net.fabricmc:fabric-loader:0.15.0", profile.Libraries[0].Name)
	assert.Equal(t, "https://maven.fabricmc.net/", profile.Libraries[0].URL)
	assert.Equal(t, "org.ow2.asm:asm:9.6", profile.Libraries[1].Name)
	assert.Empty(t, profile.Libraries[1].URL)
}

func TestLoaderListEntry_DecodesStableFlag(t *testing.T) {
	var entries []fabric.LoaderListEntry
	require.NoError(t, json.Unmarshal([]byte(loaderListFixture), &entries))

	require.Len(t, entries, 3)
	assert.False(t, entries[0].Stable)
	assert.True(t, entries[1].Stable)
	assert.Equal(t, "0.15.7", entries[1].Version)
}
