// Package platform identifies the host OS family, CPU architecture, and the
// archive/path conventions that follow from them. Every accessor fails for
// an unrecognised OS rather than guessing; the rest of the system treats
// "unknown" as unsupported.
package platform

import (
	"runtime"

	"github.com/voxforge/launcher-core/src/mcerr"
)

// OS is the closed set of operating system families the installer supports.
type OS string

const (
	Windows OS = "windows"
	Linux   OS = "linux"
	OSX     OS = "osx"
	Unknown OS = "unknown"
)

// Arch is the closed set of CPU architectures the installer supports.
type Arch string

const (
	X86         Arch = "x86"
	X64         Arch = "x64"
	ARM         Arch = "arm"
	AArch64     Arch = "aarch64"
	ArchUnknown Arch = "unknown"
)

// Current is the OS family of the host this process is running on.
var Current = detectOS()

// CurrentArch is the CPU architecture of the host this process is running on.
var CurrentArch = detectArch()

func detectOS() OS {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return OSX
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

func detectArch() Arch {
	switch runtime.GOARCH {
	case "386":
		return X86
	case "amd64":
		return X64
	case "arm":
		return ARM
	case "arm64":
		return AArch64
	default:
		return ArchUnknown
	}
}

// PathSeparator returns the Java classpath-list separator for os (";" on
// Windows, ":" elsewhere). This is the classpath separator, not
// os.PathListSeparator for the host Go is built for — they happen to
// coincide, but substituting the stdlib constant would be wrong on a
// cross-compiled build.
func PathSeparator(os OS) (string, error) {
	switch os {
	case Windows:
		return ";", nil
	case Linux, OSX:
		return ":", nil
	default:
		return "", mcerr.ErrUnsupportedPlatform
	}
}

// ArchiveFormat is the extension of the runtime distribution archive for os.
type ArchiveFormat string

const (
	Zip   ArchiveFormat = "zip"
	TarGz ArchiveFormat = "tar.gz"
)

func Archive(os OS) (ArchiveFormat, error) {
	switch os {
	case Windows:
		return Zip, nil
	case Linux, OSX:
		return TarGz, nil
	default:
		return "", mcerr.ErrUnsupportedPlatform
	}
}

// SimpleName is the Minecraft-internal OS token used in version manifest
// library rules and native classifiers.
func SimpleName(os OS) (string, error) {
	switch os {
	case Windows:
		return "windows", nil
	case Linux:
		return "linux", nil
	case OSX:
		return "osx", nil
	default:
		return "", mcerr.ErrUnsupportedPlatform
	}
}

// AdoptiumName is the OS token Temurin/Adoptium's download API expects.
func AdoptiumName(os OS) (string, error) {
	switch os {
	case Windows:
		return "windows", nil
	case Linux:
		return "linux", nil
	case OSX:
		return "mac", nil
	default:
		return "", mcerr.ErrUnsupportedPlatform
	}
}

// ArchBits is the "32" or "64" token substituted for ${arch} in native
// classifier templates.
func ArchBits(a Arch) string {
	if a == X86 {
		return "32"
	}
	return "64"
}
