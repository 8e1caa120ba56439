// Package optifine implements the OptiFine install strategy: a two-hop
// HTML scrape of optifine.net's obfuscated mirror-download flow, followed
// by the ordinary vanilla library/native/asset pipeline.
package optifine

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/voxforge/launcher-core/src/events"
	"github.com/voxforge/launcher-core/src/httpclient"
	"github.com/voxforge/launcher-core/src/loader/vanilla"
	"github.com/voxforge/launcher-core/src/manifest"
)

const downloadsPageURL = "https://optifine.net/downloads"

// MainClass is the fixed entry-point class used in place of a resolved
// descriptor value: OptiFine's jar substitutes the vanilla client's
// bootstrap with its own installer, and the full OptiFine transform (that
// installer actually patching the client jar) is deferred, so launching
// targets the installer frame directly.
const MainClass = "optifine.InstallerFrame"

var anchorMatcher = cascadia.MustCompile("a[href]")

// FindMirrorLink scans the OptiFine downloads page for the first anchor
// whose href names an "adloadx?f=OptiFine_..." entry, whose text contains
// "Mirror", and whose href contains gameVersion.
func FindMirrorLink(doc *goquery.Document, gameVersion string) (string, error) {
	var found string
	doc.FindMatcher(anchorMatcher).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		text := s.Text()
		if strings.Contains(href, "adloadx?f=OptiFine_") && strings.Contains(text, "Mirror") && strings.Contains(href, gameVersion) {
			found = href
			return false
		}
		return true
	})
	if found == "" {
		return "", fmt.Errorf("no OptiFine mirror link found for %s", gameVersion)
	}
	if !strings.HasPrefix(found, "http") {
		found = "https://optifine.net/" + strings.TrimPrefix(found, "/")
	}
	return found, nil
}

// FindDownloadLink scans an adloadx page for the final "downloadx?f=...&x=..." link.
func FindDownloadLink(doc *goquery.Document) (jarName, downloadURL string, err error) {
	var href string
	doc.FindMatcher(anchorMatcher).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		h, ok := s.Attr("href")
		if ok && strings.Contains(h, "downloadx?f=") {
			href = h
			return false
		}
		return true
	})
	if href == "" {
		return "", "", fmt.Errorf("could not find final OptiFine download link")
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", "", fmt.Errorf("parse optifine download href %q: %w", href, err)
	}
	f := parsed.Query().Get("f")
	x := parsed.Query().Get("x")
	if f == "" || x == "" {
		return "", "", fmt.Errorf("optifine download href missing f/x parameters: %q", href)
	}
	return f, fmt.Sprintf("https://optifine.net/downloadx?f=%s&x=%s", f, x), nil
}

func fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := httpclient.Shared().GetText(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// DownloadClient runs the two-hop scrape and writes the resolved jar to
// <profileDir>/<name>.jar.
func DownloadClient(ctx context.Context, gameVersion, name, profileDir string) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir %s: %w", profileDir, err)
	}

	doc, err := fetchDocument(ctx, downloadsPageURL)
	if err != nil {
		return fmt.Errorf("fetch optifine downloads page: %w", err)
	}

	mirrorURL, err := FindMirrorLink(doc, gameVersion)
	if err != nil {
		return err
	}

	adloadxDoc, err := fetchDocument(ctx, mirrorURL)
	if err != nil {
		return fmt.Errorf("fetch optifine adloadx page: %w", err)
	}

	_, downloadURL, err := FindDownloadLink(adloadxDoc)
	if err != nil {
		return err
	}

	body, err := httpclient.Shared().GetBytes(ctx, downloadURL)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(profileDir, name+".jar")
	if err := os.WriteFile(outputPath, body, 0o644); err != nil {
		return fmt.Errorf("write optifine jar %s: %w", outputPath, err)
	}
	return nil
}

// Install scrapes and downloads the OptiFine client jar, then runs the
// vanilla library/native/asset pipeline against t's own version descriptor
// (OptiFine ships no loader-specific manifest of its own).
func Install(ctx context.Context, t vanilla.Target, profileDir string, e *events.EventEmitter) error {
	e.Emit("optifine_install_start", t.GameVersion)

	name := filepath.Base(profileDir)
	if err := DownloadClient(ctx, t.GameVersion, name, profileDir); err != nil {
		return err
	}

	desc, err := manifest.Resolve(ctx, t.GameVersion)
	if err != nil {
		return fmt.Errorf("resolve manifest for %s: %w", t.GameVersion, err)
	}
	if err := vanilla.InstallDescriptor(ctx, desc, t, e); err != nil {
		return err
	}

	e.Emit("optifine_install_done", t.GameVersion)
	return nil
}
