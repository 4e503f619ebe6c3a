package release

import (
	"fmt"
	"strings"
)

// Platform combines an operating system family and a CPU architecture.
type Platform string

const (
	PlatformWinX86      Platform = "win-x86"
	PlatformWinX64      Platform = "win-x64"
	PlatformWinARM      Platform = "win-arm"
	PlatformWinARM64    Platform = "win-arm64"
	PlatformLinuxX64    Platform = "linux-x64"
	PlatformLinuxARM    Platform = "linux-arm"
	PlatformLinuxARM64  Platform = "linux-arm64"
	PlatformAlpineX64   Platform = "alpine-x64"
	PlatformAlpineARM64 Platform = "alpine-arm64"
	PlatformRHEL6X64    Platform = "rhel6-x64"
	PlatformOSXX64      Platform = "osx-x64"
	PlatformOSXARM64    Platform = "osx-arm64"
)

var Platforms = []Platform{
	PlatformWinX86,
	PlatformWinX64,
	PlatformWinARM,
	PlatformWinARM64,
	PlatformLinuxX64,
	PlatformLinuxARM,
	PlatformLinuxARM64,
	PlatformAlpineX64,
	PlatformAlpineARM64,
	PlatformRHEL6X64,
	PlatformOSXX64,
	PlatformOSXARM64,
}

func (p Platform) String() string {
	return string(p)
}

func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform [%s], expected one of %v", s, Platforms)
}

// FileNameID is the platform identifier as it appears in artifact file names.
// Only the file name is remapped, url path segments keep the original value.
func (p Platform) FileNameID() string {
	switch p {
	case PlatformAlpineX64:
		return "linux-musl-x64"
	case PlatformAlpineARM64:
		return "linux-musl-arm64"
	case PlatformRHEL6X64:
		return "rhel.6-x64"
	default:
		return string(p)
	}
}
