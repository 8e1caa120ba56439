package launchargs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxforge/launcher-core/src/launchargs"
	"github.com/voxforge/launcher-core/src/platform"
)

func TestBuildClasspath_JoinsWithOSSeparator(t *testing.T) {
	cp, err := launchargs.BuildClasspath([]string{"a.jar", "b.jar"}, "client.jar", platform.Windows)
	require.NoError(t, err)
	assert.Equal(t, "a.jar;b.jar;client.jar", cp)

	cp, err = launchargs.BuildClasspath([]string{"a.jar"}, "client.jar", platform.Linux)
	require.NoError(t, err)
	assert.Equal(t, "a.jar:client.jar", cp)
}

func TestResolveClasspath_RedownloadsOnceThenFailsIfStillEmpty(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	redownload := func(ctx context.Context) error {
		calls++
		return nil
	}

	_, err := launchargs.ResolveClasspath(context.Background(), dir, "client.jar", platform.Linux, redownload)
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "redownload must be attempted exactly once")
}

func TestResolveClasspath_PropagatesRedownloadFailure(t *testing.T) {
	dir := t.TempDir()
	wantErr := errors.New("network down")
	redownload := func(ctx context.Context) error { return wantErr }

	_, err := launchargs.ResolveClasspath(context.Background(), dir, "client.jar", platform.Linux, redownload)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestBuild_FillsEmptyUUIDAndOrdersArguments(t *testing.T) {
	p := launchargs.Profile{
		GameVersion:  "1.20.1",
		Dir:          "/data/profiles/main",
		NativesDir:   "/data/profiles/main/natives",
		AssetsDir:    "/data/profiles/main/assets",
		AssetIndexID: "1.20",
		MainClass:    "net.minecraft.client.main.Main",
	}
	args := launchargs.Build(p, "a.jar:b.jar", launchargs.Identity{Username: "Steve"})

	require.True(t, len(args) > 0)
	assert.Equal(t, "-Xms1024M", args[0])
	assert.Equal(t, "-Xmx2048M", args[1])
	assert.Equal(t, "-Djava.library.path="+p.NativesDir, args[2])
	assert.Equal(t, "-Dfabric.development=false", args[3])
	assert.Equal(t, "-cp", args[4])
	assert.Equal(t, "a.jar:b.jar", args[5])
	assert.Equal(t, p.MainClass, args[6])
	assert.Equal(t, "--username", args[7])
	assert.Equal(t, "Steve", args[8])

	uuidIdx := -1
	for i, a := range args {
		if a == "--uuid" {
			uuidIdx = i
		}
	}
	require.NotEqual(t, -1, uuidIdx)
	assert.NotEmpty(t, args[uuidIdx+1])
}
