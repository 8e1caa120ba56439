// Package assets resolves a version's asset index (modern or legacy) and
// downloads every object it references into a content-addressed objects
// directory keyed by the first two hex characters of each object's hash.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/fetch"
	"github.com/voxforge/launcher-core/src/httpclient"
	"github.com/voxforge/launcher-core/src/manifest"
	"github.com/voxforge/launcher-core/src/mcerr"
)

const (
	resourcesBaseURL  = "https://resources.download.minecraft.net"
	legacyIndexURLFmt = "https://launchermeta.mojang.com/v1/packages/1863782e33ce7b584fc45b037325a1964e095d3e/%s.json"
)

// Index is an asset index document: a flat map of logical asset name to the
// object it resolves to.
type Index struct {
	Objects map[string]Object `json:"objects"`
}

// Object is one entry in an asset index: the SHA-1 hash (which doubles as
// its content-addressed filename) and its size.
type Object struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// Download resolves and fetches every object a version's descriptor points
// at, writing the index itself to <assetsDir>/indexes/<id>.json and objects
// to <assetsDir>/objects/<hh>/<hash>. On the legacy path the index is also
// written under gameVersion's name, which old clients look it up by.
func Download(ctx context.Context, desc *manifest.Descriptor, gameVersion, assetsDir string, e *events.EventEmitter) error {
	indexesDir := filepath.Join(assetsDir, "indexes")
	objectsDir := filepath.Join(assetsDir, "objects")
	for _, dir := range []string{indexesDir, objectsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create assets dir %s: %w", dir, err)
		}
	}

	if desc.HasModernAssetIndex() {
		return downloadModern(ctx, desc, indexesDir, objectsDir, e)
	}
	if desc.Assets != "" {
		e.Emit("assets_legacy", desc.Assets)
		return downloadLegacy(ctx, desc.Assets, gameVersion, indexesDir, objectsDir, e)
	}
	return fmt.Errorf("%w: assetIndex", mcerr.ErrManifestMissingField)
}

func downloadModern(ctx context.Context, desc *manifest.Descriptor, indexesDir, objectsDir string, e *events.EventEmitter) error {
	indexPath := filepath.Join(indexesDir, desc.AssetIndex.ID+".json")

	if !fetch.Exists(indexPath) {
		e.Emit("asset_index_download_start", desc.AssetIndex.URL)
		if err := fetch.Download(ctx, desc.AssetIndex.URL, indexPath, desc.AssetIndex.SHA1, desc.AssetIndex.Size, e); err != nil {
			return err
		}
	}

	index, err := readIndex(indexPath)
	if err != nil {
		return err
	}
	return downloadObjects(ctx, index, objectsDir, e)
}

func downloadLegacy(ctx context.Context, assetsID, gameVersion, indexesDir, objectsDir string, e *events.EventEmitter) error {
	url := fmt.Sprintf(legacyIndexURLFmt, assetsID)
	indexPath := filepath.Join(indexesDir, assetsID+".json")

	body, err := httpclient.Shared().GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(indexPath, body, 0o644); err != nil {
		return fmt.Errorf("write legacy asset index %s: %w", indexPath, err)
	}
	// Old clients look the index up by the requested game version too, so a
	// second copy lands under that name when it differs from the asset id.
	if gameVersion != "" && gameVersion != assetsID {
		versionPath := filepath.Join(indexesDir, gameVersion+".json")
		if err := os.WriteFile(versionPath, body, 0o644); err != nil {
			return fmt.Errorf("write legacy asset index %s: %w", versionPath, err)
		}
	}

	var index Index
	if err := json.Unmarshal(body, &index); err != nil {
		return fmt.Errorf("decode legacy asset index %s: %w", url, err)
	}
	return downloadObjects(ctx, &index, objectsDir, e)
}

func readIndex(path string) (*Index, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset index %s: %w", path, err)
	}
	var index Index
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("decode asset index %s: %w", path, err)
	}
	return &index, nil
}

// downloadObjects fetches every object not already present on disk.
// Progress is emitted every 50 objects and on the final one. Downloads run
// sequentially: asset objects are tiny and numerous, and fanning out risks
// upstream rate limits.
func downloadObjects(ctx context.Context, index *Index, objectsDir string, e *events.EventEmitter) error {
	total := len(index.Objects)
	e.Emit("assets_discovered", total)

	current := 0
	downloaded := 0
	for name, obj := range index.Objects {
		current++

		if len(obj.Hash) < 2 {
			return fmt.Errorf("%w: malformed hash for asset %s", mcerr.ErrManifestMissingField, name)
		}
		prefix := obj.Hash[:2]
		objectPath := filepath.Join(objectsDir, prefix, obj.Hash)

		if !fetch.Exists(objectPath) {
			url := fmt.Sprintf("%s/%s/%s", resourcesBaseURL, prefix, obj.Hash)
			if err := fetch.Download(ctx, url, objectPath, obj.Hash, obj.Size, e); err != nil {
				return fmt.Errorf("asset %s: %w", name, err)
			}
			downloaded++
		}

		if current%50 == 0 || current == total {
			e.Emit("assets_progress", fmt.Sprintf("%d/%d", current, total))
		}
	}

	e.Emit("assets_done", fmt.Sprintf("%s new", humanize.Comma(int64(downloaded))))
	return nil
}
