package release

import (
	"fmt"
	"strings"
)

// Kind is the category of artifact published on the feed.
type Kind string

const (
	KindSDK                   Kind = "sdk"
	KindRuntime               Kind = "runtime"
	KindAspNetRuntime         Kind = "aspnet-runtime"
	KindHostingBundle         Kind = "hosting-bundle"
	KindWindowsDesktopRuntime Kind = "windows-desktop-runtime"
)

// Kinds lists every supported kind in documentation order.
var Kinds = []Kind{
	KindSDK,
	KindRuntime,
	KindAspNetRuntime,
	KindHostingBundle,
	KindWindowsDesktopRuntime,
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind is case insensitive.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown artifact kind [%s], expected one of %v", s, Kinds)
}

// URLSegment is the feed path segment artifacts of this kind live under.
func (k Kind) URLSegment() string {
	switch k {
	case KindSDK:
		return "Sdk"
	case KindRuntime, KindWindowsDesktopRuntime:
		return "Runtime"
	case KindAspNetRuntime, KindHostingBundle:
		return "aspnetcore/Runtime"
	}
	panic(fmt.Sprintf("release: unhandled kind %q", string(k)))
}

// MetadataSegment is the feed path segment of the latest.version endpoint.
// Every non sdk kind shares the Runtime endpoint.
func (k Kind) MetadataSegment() string {
	if k == KindSDK {
		return "Sdk"
	}
	return "Runtime"
}

// FilePrefix is the leading part of artifact file names.
func (k Kind) FilePrefix() string {
	switch k {
	case KindSDK:
		return "dotnet-sdk"
	case KindRuntime:
		return "dotnet-runtime"
	case KindAspNetRuntime:
		return "aspnetcore-runtime"
	case KindHostingBundle:
		return "dotnet-hosting"
	case KindWindowsDesktopRuntime:
		return "windowsdesktop-runtime"
	}
	panic(fmt.Sprintf("release: unhandled kind %q", string(k)))
}

// OutputDirName is the sub directory of a channel the artifacts are stored in.
func (k Kind) OutputDirName() string {
	if k == KindSDK {
		return "SDK"
	}
	return "Runtime"
}
