// Package library downloads a version descriptor's rule-filtered library
// artifacts, and resolves, downloads and extracts the platform-specific
// native classifier for each library that carries one.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxforge/launcher-core/src/archive"
	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/fetch"
	"github.com/voxforge/launcher-core/src/manifest"
	"github.com/voxforge/launcher-core/src/mcerr"
	"github.com/voxforge/launcher-core/src/platform"
)

// DownloadArtifacts fetches every rule-included library's main artifact
// into librariesDir, at the path artifactPath derives. Libraries excluded
// by their rules are skipped and reported.
func DownloadArtifacts(ctx context.Context, libs []manifest.Library, librariesDir string, e *events.EventEmitter) error {
	for _, lib := range libs {
		if !manifest.ShouldInclude(lib.Rules) {
			e.Emit("library_skipped", lib.Name+" (os rules)")
			continue
		}

		artifact := lib.Downloads.Artifact
		if artifact == nil || artifact.URL == "" {
			continue
		}

		path, err := artifactPath(lib)
		if err != nil {
			return err
		}
		target := filepath.Join(librariesDir, filepath.FromSlash(path))

		if fetch.Exists(target) {
			continue
		}

		e.Emit("library_download_start", lib.Name)
		if err := fetch.Download(ctx, artifact.URL, target, artifact.SHA1, artifact.Size, e); err != nil {
			e.Emit("library_failed", lib.Name)
			return fmt.Errorf("library %s: %w", lib.Name, err)
		}
		e.Emit("library_done", lib.Name)
	}
	return nil
}

// artifactPath derives the on-disk path for an artifact-carrying library
// from the part of its URL after a "/libraries/" segment, or from its maven
// coordinate when the URL has no such segment. The descriptor's own
// artifact path field is not read.
func artifactPath(lib manifest.Library) (string, error) {
	if lib.Downloads.Artifact.URL == "" {
		return "", mcerr.ManifestMissingField("libraries[" + lib.Name + "].downloads.artifact.url")
	}
	idx := strings.Index(lib.Downloads.Artifact.URL, "/libraries/")
	if idx >= 0 {
		return lib.Downloads.Artifact.URL[idx+len("/libraries/"):], nil
	}
	return mavenPathFromCoordinate(lib.Name)
}

// mavenPathFromCoordinate converts a "group:artifact:version[:classifier]"
// maven coordinate into its relative repository path, used by artifactPath
// for artifact URLs that carry no "/libraries/" segment.
func mavenPathFromCoordinate(coordinate string) (string, error) {
	return MavenPath(coordinate)
}

// MavenPath is the exported form of the same conversion, also used by
// DownloadCoordinate for libraries (Fabric, Quilt, NeoForge) that are named
// only by maven coordinate and a repository base URL.
func MavenPath(coordinate string) (string, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: malformed maven coordinate %q", mcerr.ErrManifestMissingField, coordinate)
	}
	group, artifact, version := parts[0], parts[1], parts[2]
	classifier := ""
	if len(parts) > 3 {
		classifier = "-" + parts[3]
	}
	groupPath := strings.ReplaceAll(group, ".", "/")
	fileName := fmt.Sprintf("%s-%s%s.jar", artifact, version, classifier)
	return fmt.Sprintf("%s/%s/%s/%s", groupPath, artifact, version, fileName), nil
}

// DownloadCoordinate fetches a single maven-coordinate library from baseURL
// (a maven repository root) into librariesDir, skipping the SHA-1/size
// check entirely: Fabric and Quilt loader metadata names libraries by
// coordinate only, with no digest to verify against.
func DownloadCoordinate(ctx context.Context, baseURL, coordinate, librariesDir string, e *events.EventEmitter) error {
	path, err := MavenPath(coordinate)
	if err != nil {
		return err
	}
	target := filepath.Join(librariesDir, filepath.FromSlash(path))
	if fetch.Exists(target) {
		return nil
	}

	url := strings.TrimRight(baseURL, "/") + "/" + path
	e.Emit("library_download_start", coordinate)
	if err := fetch.Download(ctx, url, target, "", 0, e); err != nil {
		e.Emit("library_failed", coordinate)
		return fmt.Errorf("library %s: %w", coordinate, err)
	}
	e.Emit("library_done", coordinate)
	return nil
}

// DownloadNatives resolves, downloads, and extracts the native classifier
// for every rule-included library that carries one for the current OS,
// deleting the downloaded jar after a successful extraction.
func DownloadNatives(ctx context.Context, libs []manifest.Library, librariesDir, nativesDir string, e *events.EventEmitter) error {
	if err := os.MkdirAll(nativesDir, 0o755); err != nil {
		return fmt.Errorf("create natives dir %s: %w", nativesDir, err)
	}

	osName, err := platform.SimpleName(platform.Current)
	if err != nil {
		return err
	}

	extracted := 0
	for _, lib := range libs {
		if !manifest.ShouldInclude(lib.Rules) {
			continue
		}
		if len(lib.Natives) == 0 {
			continue
		}

		template, ok := lib.Natives[osName]
		if !ok {
			continue
		}
		classifierKey := strings.ReplaceAll(template, "${arch}", platform.ArchBits(platform.CurrentArch))

		classifier, ok := lib.Downloads.Classifiers[classifierKey]
		if !ok {
			e.Emit("native_missing_classifier", lib.Name+" ("+classifierKey+")")
			continue
		}

		// The jar lands inside natives/ itself, next to what it will be
		// extracted into, and is deleted after extraction so the directory
		// never keeps an archive. Keeping it out of libraries/ also keeps
		// a failed extraction off the classpath.
		jarPath := filepath.Join(nativesDir, filepath.Base(classifier.URL))
		e.Emit("native_download_start", lib.Name)
		if err := fetch.Download(ctx, classifier.URL, jarPath, classifier.SHA1, classifier.Size, e); err != nil {
			return fmt.Errorf("native %s: %w", lib.Name, err)
		}

		data, err := os.ReadFile(jarPath)
		if err != nil {
			return fmt.Errorf("read native jar %s: %w", jarPath, err)
		}
		if err := archive.Extract(data, platform.Zip, nativesDir, archive.Excludes(lib.Extract.Exclude)); err != nil {
			return fmt.Errorf("extract native %s: %w", lib.Name, err)
		}
		os.Remove(jarPath)

		extracted++
		e.Emit("native_extracted", lib.Name)
	}

	if extracted == 0 {
		e.Emit("natives_none", nativesDir)
	}
	return nil
}

// ClasspathJars recursively walks librariesDir and returns every jar found,
// in the lexical order filepath.Walk visits them. Used by the launch-argument builder to assemble the
// classpath; re-download-on-empty is the caller's responsibility.
func ClasspathJars(librariesDir string) ([]string, error) {
	var jars []string
	err := filepath.Walk(librariesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".jar") {
			jars = append(jars, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk libraries dir %s: %w", librariesDir, err)
	}
	return jars, nil
}
