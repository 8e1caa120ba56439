// Package neoforge implements the NeoForge / legacy-Forge install
// strategy: the vanilla baseline, then a strictly sequential pipeline that
// downloads and runs NeoForge's own installer, and finally resolves the
// installer-emitted version JSON's own library list. Game versions up to
// 1.20.1 use the Forge-branded installer artifacts NeoForge still
// publishes; later versions use NeoForge's own.
package neoforge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/antchfx/xmlquery"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/fetch"
	"github.com/voxforge/launcher-core/src/httpclient"
	"github.com/voxforge/launcher-core/src/library"
	"github.com/voxforge/launcher-core/src/loader/vanilla"
	"github.com/voxforge/launcher-core/src/mcerr"
)

const oldNeoForgeCeiling = "1.20.1"

// Target bundles the vanilla sub-tree plus the two extra paths and the java
// binary the installer step needs. VersionJSONPath/InstallerJarPath are
// functions rather than plain strings because they are keyed by the
// loader-derived version id, which this package itself computes.
type Target struct {
	Vanilla          vanilla.Target
	LoaderVersion    string
	JavaBin          string
	VersionJSONPath  func(versionID string) string
	InstallerJarPath func(versionID string) string
}

// IsOldNeoForge reports whether gameVersion predates the split between
// legacy Forge-branded installers and true NeoForge ones.
func IsOldNeoForge(gameVersion string) bool {
	v, err := semver.NewVersion(gameVersion)
	if err != nil {
		return false
	}
	ceiling := semver.MustParse(oldNeoForgeCeiling)
	return v.Compare(ceiling) <= 0
}

// VersionID computes the loader-emitted version identifier for (gameVersion, loaderVersion).
func VersionID(gameVersion, loaderVersion string) string {
	if IsOldNeoForge(gameVersion) {
		return fmt.Sprintf("forge-%s-%s", gameVersion, loaderVersion)
	}
	return fmt.Sprintf("neoforge-%s", loaderVersion)
}

func installerURL(gameVersion, loaderVersion, versionID string) string {
	if IsOldNeoForge(gameVersion) {
		return fmt.Sprintf(
			"https://maven.neoforged.net/releases/net/neoforged/forge/%s-%s/forge-%s-%s-installer.jar",
			gameVersion, loaderVersion, gameVersion, loaderVersion,
		)
	}
	return fmt.Sprintf(
		"https://maven.neoforged.net/releases/net/neoforged/neoforge/%s-%s/%s-installer.jar",
		gameVersion, loaderVersion, versionID,
	)
}

// LatestVersion reads NeoForge's (or legacy Forge's) maven-metadata.xml and
// returns the <release> element's text.
func LatestVersion(ctx context.Context, gameVersion string) (string, error) {
	artifact := "neoforge"
	if IsOldNeoForge(gameVersion) {
		artifact = "forge"
	}
	url := fmt.Sprintf("https://maven.neoforged.net/releases/net/neoforged/%s/maven-metadata.xml", artifact)

	body, err := httpclient.Shared().GetBytes(ctx, url)
	if err != nil {
		return "", err
	}

	doc, err := xmlquery.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parse maven metadata xml: %w", err)
	}
	node := xmlquery.FindOne(doc, "//release")
	if node == nil {
		return "", fmt.Errorf("%w: maven-metadata.xml missing <release>", mcerr.ErrManifestMissingField)
	}
	return strings.TrimSpace(node.InnerText()), nil
}

// profileLibrary is one entry in the installer-emitted version JSON's
// library list: either a fully verified artifact or a bare maven
// coordinate, mirroring the original's NeoForgeLibrary.
type profileLibrary struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Downloads struct {
		Artifact *struct {
			Path string `json:"path"`
			URL  string `json:"url"`
			SHA1 string `json:"sha1"`
			Size int64  `json:"size"`
		} `json:"artifact"`
	} `json:"downloads"`
}

type profile struct {
	MainClass string           `json:"mainClass"`
	Libraries []profileLibrary `json:"libraries"`
}

// Install runs the vanilla baseline, downloads and executes the NeoForge
// installer, then resolves and downloads the libraries named by the
// installer-emitted version JSON.
func Install(ctx context.Context, t Target, e *events.EventEmitter) error {
	gameVersion := t.Vanilla.GameVersion
	e.Emit("neoforge_install_start", gameVersion+" + loader "+t.LoaderVersion)

	if err := vanilla.Install(ctx, t.Vanilla, e); err != nil {
		return err
	}

	versionID := VersionID(gameVersion, t.LoaderVersion)
	installerPath := t.InstallerJarPath(versionID)

	if !fetch.Exists(installerPath) {
		url := installerURL(gameVersion, t.LoaderVersion, versionID)
		e.Emit("neoforge_installer_download_start", url)
		if err := fetch.Download(ctx, url, installerPath, "", 0, e); err != nil {
			return fmt.Errorf("download neoforge installer: %w", err)
		}
	}

	e.Emit("neoforge_installer_run_start", installerPath)
	if err := runInstaller(ctx, t.JavaBin, installerPath); err != nil {
		return err
	}

	emittedJSON := filepath.Join(t.Vanilla.Dir, "versions", versionID, versionID+".json")
	destJSON := t.VersionJSONPath(versionID)
	data, err := os.ReadFile(emittedJSON)
	if err != nil {
		return fmt.Errorf("read installer-emitted json %s: %w", emittedJSON, err)
	}
	if err := os.WriteFile(destJSON, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", destJSON, err)
	}
	os.Remove(installerPath)

	var prof profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return fmt.Errorf("parse neoforge profile json: %w", err)
	}

	for _, lib := range prof.Libraries {
		if lib.Downloads.Artifact != nil && lib.Downloads.Artifact.URL != "" {
			target := filepath.Join(t.Vanilla.LibrariesDir, filepath.FromSlash(lib.Downloads.Artifact.Path))
			if fetch.Exists(target) {
				continue
			}
			a := lib.Downloads.Artifact
			if err := fetch.Download(ctx, a.URL, target, a.SHA1, a.Size, e); err != nil {
				return fmt.Errorf("neoforge library %s: %w", lib.Name, err)
			}
			continue
		}

		base := lib.URL
		if base == "" {
			base = "https://maven.neoforged.net/releases/"
		}
		if err := library.DownloadCoordinate(ctx, base, lib.Name, t.Vanilla.LibrariesDir, e); err != nil {
			return err
		}
	}

	e.Emit("neoforge_install_done", versionID)
	return nil
}

func runInstaller(ctx context.Context, javaBin, installerPath string) error {
	cmd := exec.CommandContext(ctx, javaBin, "-jar", installerPath, "--fat", "--fat-include-minecraft-lib")
	cmd.Dir = filepath.Dir(installerPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return fmt.Errorf("%w: %s", mcerr.InstallerFailure(exitCode), strings.TrimSpace(string(output)))
	}
	return nil
}
