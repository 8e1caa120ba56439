// Package hostsguard detects Windows hosts file entries that redirect the
// game's authentication domains, a common leftover of cracked-launcher
// setups that breaks login silently. It is never called by the
// install/launch pipeline itself; the embedding shell decides when to
// run it.
package hostsguard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var blockedDomains = []string{"mojang.com", "minecraft.net"}

// Check reads the Windows hosts file (defaulting SystemDrive to "C:" when
// unset) and returns an error listing every non-comment line whose second
// whitespace-delimited token contains one of the game's authentication
// domains or vendorDomain. A missing hosts file is not an error.
func Check(vendorDomain string) error {
	systemDrive := os.Getenv("SystemDrive")
	if systemDrive == "" {
		systemDrive = "C:"
	}
	// The drive gets its own separator so "C:" resolves to the drive root,
	// not a drive-relative path.
	hostsPath := filepath.Join(systemDrive+string(filepath.Separator), "Windows", "System32", "drivers", "etc", "hosts")

	data, err := os.ReadFile(hostsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read hosts file %s: %w", hostsPath, err)
	}

	domains := blockedDomains
	if vendorDomain != "" {
		domains = append(append([]string{}, blockedDomains...), vendorDomain)
	}

	var flagged []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		domain := fields[1]
		for _, blocked := range domains {
			if strings.Contains(domain, blocked) {
				flagged = append(flagged, line)
				break
			}
		}
	}

	if len(flagged) > 0 {
		return fmt.Errorf(
			"hosts file %s blocks the game authentication server; remove these entries:\n%s",
			hostsPath, strings.Join(flagged, "\n"),
		)
	}
	return nil
}
