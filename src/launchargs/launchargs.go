// Package launchargs assembles the classpath and the full JVM + game
// argument vector a profile is launched with. Identity values come from
// the caller; nothing in here hardcodes credentials.
package launchargs

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/voxforge/launcher-core/src/library"
	"github.com/voxforge/launcher-core/src/mcerr"
	"github.com/voxforge/launcher-core/src/platform"
)

// Identity names the caller-supplied player identity. These are opaque
// strings to this package; no default Username or AccessToken is
// substituted — the external identity collaborator owns their meaning. An
// empty UUID is filled in with a fresh random one so a launch never ships
// the literal empty string to the game client.
type Identity struct {
	Username    string
	UUID        string
	AccessToken string
}

// Profile is the minimal set of paths and identifiers the builder needs;
// it is intentionally narrower than profile.Profile so this package never
// imports it (launchargs is a leaf the facade depends on, not the other
// way around).
type Profile struct {
	GameVersion  string
	Dir          string
	JarPath      string
	LibrariesDir string
	NativesDir   string
	AssetsDir    string
	AssetIndexID string
	MainClass    string
}

// BuildClasspath joins the given jars with the profile's own client (or
// loader) jar, using the classpath separator for os.
func BuildClasspath(jars []string, jarPath string, os platform.OS) (string, error) {
	sep, err := platform.PathSeparator(os)
	if err != nil {
		return "", err
	}
	all := append(append([]string{}, jars...), jarPath)
	return strings.Join(all, sep), nil
}

// ResolveClasspath walks librariesDir for jars, re-running redownload
// exactly once if the walk comes back empty, then failing if it is still
// empty.
func ResolveClasspath(ctx context.Context, librariesDir, jarPath string, os platform.OS, redownload func(ctx context.Context) error) (string, error) {
	jars, err := library.ClasspathJars(librariesDir)
	if err != nil {
		return "", err
	}
	if len(jars) == 0 {
		if redownload != nil {
			if err := redownload(ctx); err != nil {
				return "", fmt.Errorf("re-download empty library tree: %w", err)
			}
			jars, err = library.ClasspathJars(librariesDir)
			if err != nil {
				return "", err
			}
		}
	}
	if len(jars) == 0 {
		return "", fmt.Errorf("%w: empty library tree at %s after re-download", mcerr.ErrManifestMissingField, librariesDir)
	}
	return BuildClasspath(jars, jarPath, os)
}

// Build assembles the full argument vector: JVM flags first, then the main
// class, then game arguments.
func Build(p Profile, classpath string, id Identity) []string {
	playerUUID := id.UUID
	if playerUUID == "" {
		playerUUID = uuid.New().String()
	}

	return []string{
		"-Xms1024M", "-Xmx2048M",
		"-Djava.library.path=" + p.NativesDir,
		"-Dfabric.development=false",
		"-cp", classpath,
		p.MainClass,
		"--username", id.Username,
		"--version", p.GameVersion,
		"--gameDir", p.Dir,
		"--assetsDir", p.AssetsDir,
		"--assetIndex", p.AssetIndexID,
		"--uuid", playerUUID,
		"--accessToken", id.AccessToken,
		"--userProperties", "{}",
	}
}
