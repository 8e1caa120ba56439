package quilt_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxforge/launcher-core/src/loader/quilt"
)

const profileFixture = `{
	"id": "1.20.2-loader.0.23.1",
	"inheritsFrom": "1.20.2",
	"mainClass": "org.quiltmc.loader.impl.launch.knot.KnotClient",
	"libraries": [
		{"name": "org.quiltmc:quilt-loader:0.23.1", "url": "https://maven.quiltmc.org/repository/release/"},
		{"name": "org.ow2.asm:asm:9.6"}
	]
}`

// TestProfile_DecodesLibrariesWithAndWithoutRepositoryURL mirrors the
// Fabric-side fixture: Quilt's profile JSON shape is a drop-in match, so
// the same library-URL-fallback structure applies.
func TestProfile_DecodesLibrariesWithAndWithoutRepositoryURL(t *testing.T) {
	var profile quilt.Profile
	require.NoError(t, json.Unmarshal([]byte(profileFixture), &profile))

	assert.Equal(t, "org.quiltmc.loader.impl.launch.knot.KnotClient", profile.MainClass)
	require.Len(t, profile.Libraries, 2)
	assert.Equal(t, "org.quiltmc:quilt-loader:0.23.1", profile.Libraries[0].Name)
	assert.Equal(t, "https://maven.quiltmc.org/repository/release/", profile.Libraries[0].URL)
	assert.Empty(t, profile.Libraries[1].URL)
}
