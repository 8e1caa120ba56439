package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxforge/launcher-core/src/manifest"
	"github.com/voxforge/launcher-core/src/platform"
)

func allowRule(os string) manifest.Rule {
	r := manifest.Rule{Action: "allow"}
	r.OS.Name = os
	return r
}

func disallowRule(os string) manifest.Rule {
	r := manifest.Rule{Action: "disallow"}
	r.OS.Name = os
	return r
}

func TestShouldInclude_NoRules(t *testing.T) {
	assert.True(t, manifest.ShouldInclude(nil))
}

var allOSes = []platform.OS{platform.Windows, platform.Linux, platform.OSX}

func TestShouldIncludeForOS_LastMatchingRuleWins(t *testing.T) {
	// A blanket allow followed by a disallow for the target OS must end up
	// excluded, and vice versa: order, not "any disallow wins", determines
	// the result, and this must hold for every OS identity, not just
	// whichever one happens to run the test.
	for _, os := range allOSes {
		name, err := platform.SimpleName(os)
		assert.NoError(t, err)

		rules := []manifest.Rule{allowRule(""), disallowRule(name)}
		assert.False(t, manifest.ShouldIncludeForOS(rules, os), "os=%s", name)

		rules = []manifest.Rule{disallowRule(name), allowRule("")}
		assert.True(t, manifest.ShouldIncludeForOS(rules, os), "os=%s", name)
	}
}

func TestShouldIncludeForOS_NoMatchDenies(t *testing.T) {
	rules := []manifest.Rule{allowRule("some-other-os-that-never-matches")}
	for _, os := range allOSes {
		assert.False(t, manifest.ShouldIncludeForOS(rules, os))
	}
}

func TestMergeParent_ChildOverridesParentLibrariesFirst(t *testing.T) {
	parent := &manifest.Descriptor{MainClass: "net.minecraft.client.main.Main", Assets: "1.20"}
	parent.Downloads.Client = manifest.Download{URL: "https://example.invalid/client.jar", SHA1: "aa", Size: 1}
	parent.AssetIndex.ID = "1.20"
	parent.JavaVersion.MajorVersion = 17
	parent.Libraries = []manifest.Library{{Name: "org.lwjgl:lwjgl:3.3.1"}}

	child := &manifest.Descriptor{MainClass: "net.neoforged.fancymodloader.BootstrapLauncher", InheritsFrom: "1.20.2"}
	child.Libraries = []manifest.Library{{Name: "net.neoforged:neoforge:20.2.88"}}

	child.MergeParent(parent)

	assert.Equal(t, "net.neoforged.fancymodloader.BootstrapLauncher", child.MainClass, "child main class wins")
	assert.Equal(t, "https://example.invalid/client.jar", child.Downloads.Client.URL)
	assert.Equal(t, "1.20", child.AssetIndex.ID)
	assert.Equal(t, uint32(17), child.JavaVersion.MajorVersion)
	assert.Equal(t, []string{"org.lwjgl:lwjgl:3.3.1", "net.neoforged:neoforge:20.2.88"},
		[]string{child.Libraries[0].Name, child.Libraries[1].Name}, "parent libraries come first")
}

func TestShouldIncludeForOS_OtherOSRuleIgnored(t *testing.T) {
	// A rule naming a different OS than the one being evaluated must not
	// affect the outcome.
	rules := []manifest.Rule{allowRule(""), disallowRule("windows")}
	assert.True(t, manifest.ShouldIncludeForOS(rules, platform.Linux))
	assert.True(t, manifest.ShouldIncludeForOS(rules, platform.OSX))
	assert.False(t, manifest.ShouldIncludeForOS(rules, platform.Windows))
}
