// Package fabric implements the Fabric install strategy: the vanilla
// baseline plus the loader's own coordinate-only libraries and main class,
// resolved from Fabric's meta server.
package fabric

import (
	"context"
	"fmt"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/httpclient"
	"github.com/voxforge/launcher-core/src/library"
	"github.com/voxforge/launcher-core/src/loader/vanilla"
)

const (
	profileURLFmt = "https://meta.fabricmc.net/v2/versions/loader/%s/%s/profile/json"
	loaderListURL = "https://meta.fabricmc.net/v2/versions/loader"
)

// ProfileLibrary is one entry in a Fabric loader profile's library list:
// named only by maven coordinate and the repository it lives in, never by
// descriptor artifact/sha1 (the loader doesn't publish digests for these).
type ProfileLibrary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Profile is the version profile Fabric's meta server returns for a
// (game version, loader version) pair.
type Profile struct {
	ID           string           `json:"id"`
	InheritsFrom string           `json:"inheritsFrom"`
	MainClass    string           `json:"mainClass"`
	Libraries    []ProfileLibrary `json:"libraries"`
}

// LoaderListEntry is one entry in the global Fabric loader version index.
type LoaderListEntry struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// FetchProfile downloads the Fabric version profile for (gameVersion, loaderVersion).
func FetchProfile(ctx context.Context, gameVersion, loaderVersion string) (*Profile, error) {
	url := fmt.Sprintf(profileURLFmt, gameVersion, loaderVersion)
	var p Profile
	if err := httpclient.Shared().GetJSON(ctx, url, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LatestLoaderVersion returns the first stable entry in Fabric's loader
// index, or the first entry if none are marked stable.
func LatestLoaderVersion(ctx context.Context) (string, error) {
	var entries []LoaderListEntry
	if err := httpclient.Shared().GetJSON(ctx, loaderListURL, &entries); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("fabric loader index returned no entries")
	}
	for _, e := range entries {
		if e.Stable {
			return e.Version, nil
		}
	}
	return entries[0].Version, nil
}

// Install runs the vanilla baseline against t.GameVersion, then fetches the
// Fabric profile for loaderVersion and downloads each of its libraries by
// maven coordinate.
func Install(ctx context.Context, t vanilla.Target, loaderVersion string, e *events.EventEmitter) error {
	e.Emit("fabric_install_start", t.GameVersion+" + loader "+loaderVersion)

	if err := vanilla.Install(ctx, t, e); err != nil {
		return err
	}

	profile, err := FetchProfile(ctx, t.GameVersion, loaderVersion)
	if err != nil {
		return fmt.Errorf("fetch fabric profile: %w", err)
	}

	for _, lib := range profile.Libraries {
		base := lib.URL
		if base == "" {
			base = "https://maven.fabricmc.net/"
		}
		if err := library.DownloadCoordinate(ctx, base, lib.Name, t.LibrariesDir, e); err != nil {
			return err
		}
	}

	e.Emit("fabric_install_done", profile.ID)
	return nil
}
