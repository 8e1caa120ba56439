// Package manifest walks the upstream version graph (global index, then
// per-version descriptor) and exposes the fields the rest of the pipeline
// needs: required runtime major version, client JAR descriptor, library
// list, and asset index pointer.
package manifest

import (
	"context"
	"fmt"

	"github.com/voxforge/launcher-core/src/httpclient"
	"github.com/voxforge/launcher-core/src/mcerr"
	"github.com/voxforge/launcher-core/src/platform"
)

const versionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// Index is the global version index.
type Index struct {
	Versions []IndexEntry `json:"versions"`
}

// IndexEntry names one version and where to fetch its descriptor.
type IndexEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Download is a verified artifact reference: URL plus its expected SHA-1
// and size.
type Download struct {
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
}

// Rule is one entry in a library's OS-gated rule list.
type Rule struct {
	Action string `json:"action"`
	OS     struct {
		Name string `json:"name"`
	} `json:"os"`
}

// Library is one entry in a version descriptor's library list. At most one
// Artifact and any number of Classifiers are populated.
type Library struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Downloads struct {
		Artifact    *Download           `json:"artifact"`
		Classifiers map[string]Download `json:"classifiers"`
	} `json:"downloads"`
	Natives map[string]string `json:"natives"`
	Rules   []Rule             `json:"rules"`
	Extract struct {
		Exclude []string `json:"exclude"`
	} `json:"extract"`
}

// Descriptor is the per-version JSON object returned by the upstream
// metadata service, never persisted verbatim by this system except where a
// loader strategy needs the raw bytes on disk.
type Descriptor struct {
	MainClass    string `json:"mainClass"`
	InheritsFrom string `json:"inheritsFrom"`
	Downloads    struct {
		Client Download `json:"client"`
	} `json:"downloads"`
	Libraries  []Library `json:"libraries"`
	AssetIndex struct {
		ID   string `json:"id"`
		URL  string `json:"url"`
		SHA1 string `json:"sha1"`
		Size int64  `json:"size"`
	} `json:"assetIndex"`
	Assets      string `json:"assets"`
	JavaVersion struct {
		MajorVersion uint32 `json:"majorVersion"`
	} `json:"javaVersion"`
}

// RequiredJavaMajor returns the runtime major version the descriptor
// requires, defaulting to 8 for ancient descriptors that omit javaVersion
// entirely (legacy versions predate the field).
func (d *Descriptor) RequiredJavaMajor() uint32 {
	if d.JavaVersion.MajorVersion == 0 {
		return 8
	}
	return d.JavaVersion.MajorVersion
}

// HasModernAssetIndex reports whether the descriptor carries the modern
// assetIndex block (vs. only the legacy "assets" id string).
func (d *Descriptor) HasModernAssetIndex() bool {
	return d.AssetIndex.ID != "" && d.AssetIndex.URL != ""
}

// FetchIndex downloads the global version index.
func FetchIndex(ctx context.Context) (*Index, error) {
	var idx Index
	if err := httpclient.Shared().GetJSON(ctx, versionManifestURL, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// Resolve fetches the global index, finds gameVersion within it, then
// fetches and returns its per-version descriptor.
func Resolve(ctx context.Context, gameVersion string) (*Descriptor, error) {
	idx, err := FetchIndex(ctx)
	if err != nil {
		return nil, err
	}

	var entry *IndexEntry
	for i := range idx.Versions {
		if idx.Versions[i].ID == gameVersion {
			entry = &idx.Versions[i]
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: version %s not found in manifest", mcerr.ErrManifestMissingField, gameVersion)
	}

	var desc Descriptor
	if err := httpclient.Shared().GetJSON(ctx, entry.URL, &desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

// MergeParent fills d's empty fields from parent and prepends parent's
// libraries to d's own, the way loader-emitted version documents that
// declare inheritsFrom expect to be completed: the child overrides, the
// parent supplies everything the child leaves blank.
func (d *Descriptor) MergeParent(parent *Descriptor) {
	if d.MainClass == "" {
		d.MainClass = parent.MainClass
	}
	if d.Downloads.Client.URL == "" {
		d.Downloads.Client = parent.Downloads.Client
	}
	if d.AssetIndex.ID == "" {
		d.AssetIndex = parent.AssetIndex
	}
	if d.Assets == "" {
		d.Assets = parent.Assets
	}
	if d.JavaVersion.MajorVersion == 0 {
		d.JavaVersion = parent.JavaVersion
	}
	merged := append([]Library{}, parent.Libraries...)
	d.Libraries = append(merged, d.Libraries...)
}

// ShouldInclude evaluates a library's rule list against the current OS.
func ShouldInclude(rules []Rule) bool {
	return ShouldIncludeForOS(rules, platform.Current)
}

// ShouldIncludeForOS evaluates a library's rule list against an arbitrary OS
// identity. Evaluation starts denied; for each rule whose os is absent or
// equals os, the running decision is set to that rule's action; the final
// decision wins. Later matching rules override earlier ones, including an
// earlier disallow.
func ShouldIncludeForOS(rules []Rule, os platform.OS) bool {
	if len(rules) == 0 {
		return true
	}

	osName, err := platform.SimpleName(os)
	if err != nil {
		return false
	}

	allowed := false
	for _, rule := range rules {
		if rule.OS.Name != "" && rule.OS.Name != osName {
			continue
		}
		allowed = rule.Action == "allow"
	}
	return allowed
}
