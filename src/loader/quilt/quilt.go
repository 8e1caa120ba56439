// Package quilt implements the Quilt install strategy: symmetric to
// Fabric, against quiltmc.org's meta server and maven repository instead
// of fabricmc.net's. Quilt's profile JSON shape is a drop-in match for
// Fabric's, so this package mirrors fabric's structure rather than
// inventing a new one.
package quilt

import (
	"context"
	"fmt"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/httpclient"
	"github.com/voxforge/launcher-core/src/library"
	"github.com/voxforge/launcher-core/src/loader/vanilla"
)

const (
	profileURLFmt = "https://meta.quiltmc.org/v3/versions/loader/%s/%s/profile/json"
	loaderListURL = "https://meta.quiltmc.org/v3/versions/loader"
)

// ProfileLibrary mirrors Fabric's shape: maven coordinate plus the
// repository it resolves against.
type ProfileLibrary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Profile is the version profile Quilt's meta server returns.
type Profile struct {
	ID           string           `json:"id"`
	InheritsFrom string           `json:"inheritsFrom"`
	MainClass    string           `json:"mainClass"`
	Libraries    []ProfileLibrary `json:"libraries"`
}

// FetchProfile downloads the Quilt version profile for (gameVersion, loaderVersion).
func FetchProfile(ctx context.Context, gameVersion, loaderVersion string) (*Profile, error) {
	url := fmt.Sprintf(profileURLFmt, gameVersion, loaderVersion)
	var p Profile
	if err := httpclient.Shared().GetJSON(ctx, url, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoaderListEntry is one entry in the global Quilt loader version index.
type LoaderListEntry struct {
	Version string `json:"version"`
}

// LatestLoaderVersion returns the newest entry in Quilt's loader index.
// Quilt's index carries no stable flag, so the first entry wins.
func LatestLoaderVersion(ctx context.Context) (string, error) {
	var entries []LoaderListEntry
	if err := httpclient.Shared().GetJSON(ctx, loaderListURL, &entries); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("quilt loader index returned no entries")
	}
	return entries[0].Version, nil
}

// Install runs the vanilla baseline, then fetches the Quilt profile and
// downloads each of its libraries by maven coordinate.
func Install(ctx context.Context, t vanilla.Target, loaderVersion string, e *events.EventEmitter) error {
	e.Emit("quilt_install_start", t.GameVersion+" + loader "+loaderVersion)

	if err := vanilla.Install(ctx, t, e); err != nil {
		return err
	}

	profile, err := FetchProfile(ctx, t.GameVersion, loaderVersion)
	if err != nil {
		return fmt.Errorf("fetch quilt profile: %w", err)
	}

	for _, lib := range profile.Libraries {
		base := lib.URL
		if base == "" {
			base = "https://maven.quiltmc.org/repository/release/"
		}
		if err := library.DownloadCoordinate(ctx, base, lib.Name, t.LibrariesDir, e); err != nil {
			return err
		}
	}

	e.Emit("quilt_install_done", profile.ID)
	return nil
}
