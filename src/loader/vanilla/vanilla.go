// Package vanilla implements the baseline install strategy: resolve the
// version descriptor, then fetch the client jar, libraries, natives, and
// assets concurrently, since each targets a disjoint sub-tree of the
// profile directory.
package vanilla

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/voxforge/launcher-core/src/assets"
	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/fetch"
	"github.com/voxforge/launcher-core/src/library"
	"github.com/voxforge/launcher-core/src/manifest"
)

// Target is the sub-tree of a profile directory vanilla-style strategies
// write into. Defined here rather than imported from the loader package so
// that fabric/quilt/neoforge/optifine can depend on vanilla without a
// cycle back through the dispatcher.
type Target struct {
	GameVersion  string
	Dir          string
	JarPath      string
	LibrariesDir string
	NativesDir   string
	AssetsDir    string
}

// Install resolves the descriptor for t.GameVersion and fetches client,
// libraries, natives, and assets concurrently.
func Install(ctx context.Context, t Target, e *events.EventEmitter) error {
	e.Emit("vanilla_install_start", t.GameVersion)

	desc, err := manifest.Resolve(ctx, t.GameVersion)
	if err != nil {
		return fmt.Errorf("resolve manifest for %s: %w", t.GameVersion, err)
	}

	if err := InstallDescriptor(ctx, desc, t, e); err != nil {
		return err
	}

	e.Emit("vanilla_install_done", t.GameVersion)
	return nil
}

// InstallDescriptor runs the four sub-pipelines against an already-resolved
// descriptor. OptiFine, which resolves the descriptor itself after writing
// its own client jar, calls this directly instead of Install.
func InstallDescriptor(ctx context.Context, desc *manifest.Descriptor, t Target, e *events.EventEmitter) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if fetch.Exists(t.JarPath) {
			return nil
		}
		e.Emit("client_download_start", t.JarPath)
		return fetch.Download(gctx, desc.Downloads.Client.URL, t.JarPath, desc.Downloads.Client.SHA1, desc.Downloads.Client.Size, e)
	})

	g.Go(func() error {
		return library.DownloadArtifacts(gctx, desc.Libraries, t.LibrariesDir, e)
	})

	g.Go(func() error {
		return library.DownloadNatives(gctx, desc.Libraries, t.LibrariesDir, t.NativesDir, e)
	})

	g.Go(func() error {
		return assets.Download(gctx, desc, t.GameVersion, t.AssetsDir, e)
	})

	if err := g.Wait(); err != nil {
		e.Emit("error", err.Error())
		return err
	}
	return nil
}
