// Package profile binds a (name, loader, loader-version, game-version)
// identity tuple to its on-disk layout and dispatches install, uninstall,
// and main-class resolution to the loader named by the tuple. Any loader's
// own version JSON (Fabric/Quilt's profile doc, NeoForge's
// installer-emitted doc) can supply a main class without each loader
// subpackage re-implementing the lookup.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/fetch"
	"github.com/voxforge/launcher-core/src/javart"
	"github.com/voxforge/launcher-core/src/launchargs"
	"github.com/voxforge/launcher-core/src/library"
	"github.com/voxforge/launcher-core/src/loader"
	"github.com/voxforge/launcher-core/src/loader/fabric"
	"github.com/voxforge/launcher-core/src/loader/neoforge"
	"github.com/voxforge/launcher-core/src/loader/optifine"
	"github.com/voxforge/launcher-core/src/loader/quilt"
	"github.com/voxforge/launcher-core/src/manifest"
	"github.com/voxforge/launcher-core/src/platform"
	"github.com/voxforge/launcher-core/src/process"
)

// Profile names one self-contained installation of the game.
type Profile struct {
	Name          string
	Loader        string // vanilla | fabric | quilt | neoforge | forge | optifine
	LoaderVersion string
	GameVersion   string
	DataRoot      string
}

func (p Profile) Dir() string          { return filepath.Join(p.DataRoot, p.Name) }
func (p Profile) JarPath() string      { return filepath.Join(p.Dir(), p.Name+".jar") }
func (p Profile) LibrariesDir() string { return filepath.Join(p.Dir(), "libraries") }
func (p Profile) NativesDir() string   { return filepath.Join(p.Dir(), "natives") }
func (p Profile) AssetsDir() string    { return filepath.Join(p.Dir(), "assets") }

// VersionJSONPath is the profile-root copy of a loader's own version
// document; populated only for NeoForge/legacy-Forge, the only strategy
// whose installer emits and this facade persists one.
func (p Profile) VersionJSONPath() string {
	if p.Loader != "neoforge" && p.Loader != "forge" {
		return ""
	}
	id := neoforge.VersionID(p.GameVersion, p.LoaderVersion)
	return filepath.Join(p.Dir(), id+".json")
}

// Install materialises the profile directory by dispatching to the
// strategy named by p.Loader. javaBin is the runtime binary external
// installers (NeoForge) invoke; vanilla-style strategies never use it.
func (p Profile) Install(ctx context.Context, javaBin string, e *events.EventEmitter) error {
	if err := os.MkdirAll(p.Dir(), 0o755); err != nil {
		return fmt.Errorf("create profile dir %s: %w", p.Dir(), err)
	}

	target := loader.Target{
		Name:          p.Name,
		GameVersion:   p.GameVersion,
		LoaderVersion: p.LoaderVersion,
		Dir:           p.Dir(),
		JavaBin:       javaBin,
	}
	return loader.Install(ctx, p.Loader, target, e)
}

// Uninstall removes the profile's entire directory tree.
func (p Profile) Uninstall() error {
	return os.RemoveAll(p.Dir())
}

// LoadVersionJSON reads a loader-emitted version document from path and
// completes it: if the document declares inheritsFrom, the named game
// version's own descriptor is resolved upstream and merged in (child
// overrides, parent libraries first), so callers always get a descriptor
// with a main class, asset index, and full library list.
func LoadVersionJSON(ctx context.Context, path string) (*manifest.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read version json %s: %w", path, err)
	}

	var doc manifest.Descriptor
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse version json %s: %w", path, err)
	}

	if doc.InheritsFrom != "" {
		parent, err := manifest.Resolve(ctx, doc.InheritsFrom)
		if err != nil {
			return nil, fmt.Errorf("resolve parent version %s: %w", doc.InheritsFrom, err)
		}
		doc.MergeParent(parent)
	}
	return &doc, nil
}

// LaunchOptions carries everything a launch needs beyond the profile
// itself: the player identity, where runtime slots live and which
// distribution fills them, and the supervisor's output callbacks and
// termination signal.
type LaunchOptions struct {
	Identity     launchargs.Identity
	RuntimesRoot string
	Distribution javart.Distribution // nil means Temurin
	// RuntimeProgress observes a runtime archive download on a cache miss.
	RuntimeProgress fetch.ProgressFunc
	OnStdout        process.OutputFunc
	OnStderr        process.OutputFunc
	// Terminator, when signalled, kills the running child. Nil disables
	// external termination.
	Terminator <-chan struct{}
}

// Launch resolves the runtime the profile's game version requires
// (downloading it on first use), assembles the classpath and argument
// vector, then spawns and supervises the child until it exits or
// opts.Terminator fires.
func (p Profile) Launch(ctx context.Context, opts LaunchOptions, e *events.EventEmitter) error {
	desc, err := manifest.Resolve(ctx, p.GameVersion)
	if err != nil {
		return fmt.Errorf("resolve descriptor for %s: %w", p.GameVersion, err)
	}

	dist := opts.Distribution
	if dist == nil {
		dist = javart.Temurin{}
	}
	javaBin, err := javart.Find(opts.RuntimesRoot, dist, desc.RequiredJavaMajor())
	if err != nil {
		javaBin, err = javart.Download(ctx, opts.RuntimesRoot, dist, desc.RequiredJavaMajor(), opts.RuntimeProgress, e)
		if err != nil {
			return err
		}
	}

	mainClass, err := p.MainClass(ctx)
	if err != nil {
		return err
	}

	redownload := func(ctx context.Context) error {
		return library.DownloadArtifacts(ctx, desc.Libraries, p.LibrariesDir(), e)
	}
	classpath, err := launchargs.ResolveClasspath(ctx, p.LibrariesDir(), p.JarPath(), platform.Current, redownload)
	if err != nil {
		return err
	}

	assetIndexID := desc.AssetIndex.ID
	if assetIndexID == "" {
		assetIndexID = p.GameVersion
	}
	args := launchargs.Build(launchargs.Profile{
		GameVersion:  p.GameVersion,
		Dir:          p.Dir(),
		JarPath:      p.JarPath(),
		LibrariesDir: p.LibrariesDir(),
		NativesDir:   p.NativesDir(),
		AssetsDir:    p.AssetsDir(),
		AssetIndexID: assetIndexID,
		MainClass:    mainClass,
	}, classpath, opts.Identity)

	e.Emit("launch_start", p.Name)
	child, err := process.Execute(ctx, javaBin, args, p.Dir())
	if err != nil {
		return err
	}
	if err := process.HandleIO(child, opts.OnStdout, opts.OnStderr, opts.Terminator); err != nil {
		e.Emit("error", err.Error())
		return err
	}
	e.Emit("launch_done", p.Name)
	return nil
}

// MainClass resolves the main entry-point class for this profile. NeoForge
// and legacy Forge read it back from the persisted installer-emitted
// document; Fabric and Quilt re-resolve their loader profile, which is
// cheap and avoids persisting a document nothing else reads; OptiFine
// returns the fixed optifine.MainClass; every other loader falls back to
// the vanilla descriptor's own mainClass field.
func (p Profile) MainClass(ctx context.Context) (string, error) {
	switch p.Loader {
	case "neoforge", "forge":
		doc, err := LoadVersionJSON(ctx, p.VersionJSONPath())
		if err != nil {
			return "", err
		}
		return doc.MainClass, nil

	case "fabric":
		fp, err := fabric.FetchProfile(ctx, p.GameVersion, p.LoaderVersion)
		if err != nil {
			return "", fmt.Errorf("resolve fabric main class: %w", err)
		}
		return fp.MainClass, nil

	case "quilt":
		qp, err := quilt.FetchProfile(ctx, p.GameVersion, p.LoaderVersion)
		if err != nil {
			return "", fmt.Errorf("resolve quilt main class: %w", err)
		}
		return qp.MainClass, nil

	case "optifine":
		return optifine.MainClass, nil

	default:
		desc, err := manifest.Resolve(ctx, p.GameVersion)
		if err != nil {
			return "", fmt.Errorf("resolve main class for %s: %w", p.GameVersion, err)
		}
		return desc.MainClass, nil
	}
}
