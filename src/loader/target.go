// Package loader dispatches a profile install to the strategy named by its
// loader field, and defines the filesystem handle ("Target") every strategy
// operates against. Individual strategies live in subpackages (vanilla,
// fabric, quilt, neoforge, optifine); dispatch itself is a flat switch.
package loader

import (
	"context"
	"path/filepath"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/loader/fabric"
	"github.com/voxforge/launcher-core/src/loader/neoforge"
	"github.com/voxforge/launcher-core/src/loader/optifine"
	"github.com/voxforge/launcher-core/src/loader/quilt"
	"github.com/voxforge/launcher-core/src/loader/vanilla"
)

// Target names the on-disk sub-trees a strategy writes into and the
// version/loader identity it resolves against. It carries no knowledge of
// how a profile composes these paths; that is the facade's job.
type Target struct {
	Name          string // profile name; also names the client/loader jar (<name>.jar)
	GameVersion   string
	LoaderVersion string
	Dir           string // <data_root>/<name>
	JavaBin       string // runtime binary used to invoke external installers (NeoForge)
}

func (t Target) JarPath() string          { return filepath.Join(t.Dir, t.Name+".jar") }
func (t Target) LibrariesDir() string     { return filepath.Join(t.Dir, "libraries") }
func (t Target) NativesDir() string       { return filepath.Join(t.Dir, "natives") }
func (t Target) AssetsDir() string        { return filepath.Join(t.Dir, "assets") }
func (t Target) VersionJSONPath(id string) string {
	return filepath.Join(t.Dir, id+".json")
}
func (t Target) InstallerJarPath(id string) string {
	return filepath.Join(t.Dir, id+"-installer.jar")
}

func toVanillaTarget(t Target) vanilla.Target {
	return vanilla.Target{
		GameVersion:  t.GameVersion,
		Dir:          t.Dir,
		JarPath:      t.JarPath(),
		LibrariesDir: t.LibrariesDir(),
		NativesDir:   t.NativesDir(),
		AssetsDir:    t.AssetsDir(),
	}
}

// Install dispatches to the strategy named by loaderName. An unrecognised
// loader emits a diagnostic and returns nil rather than an error: unknown
// loaders succeed without side effects.
func Install(ctx context.Context, loaderName string, t Target, e *events.EventEmitter) error {
	vt := toVanillaTarget(t)

	switch loaderName {
	case "vanilla":
		return vanilla.Install(ctx, vt, e)
	case "fabric":
		return fabric.Install(ctx, vt, t.LoaderVersion, e)
	case "quilt":
		return quilt.Install(ctx, vt, t.LoaderVersion, e)
	case "neoforge", "forge":
		return neoforge.Install(ctx, neoforge.Target{
			Vanilla:          vt,
			LoaderVersion:    t.LoaderVersion,
			JavaBin:          t.JavaBin,
			VersionJSONPath:  func(id string) string { return t.VersionJSONPath(id) },
			InstallerJarPath: func(id string) string { return t.InstallerJarPath(id) },
		}, e)
	case "optifine":
		return optifine.Install(ctx, vt, t.Dir, e)
	default:
		e.Emit("loader_unknown", loaderName)
		return nil
	}
}
