package release

import (
	"fmt"
	"strings"
)

// Format is the packaging of an artifact. Not every platform is published in
// every format, unsupported pairs simply fail on the feed.
type Format string

const (
	FormatExe   Format = "exe"
	FormatZip   Format = "zip"
	FormatTarGz Format = "tar.gz"
	FormatPkg   Format = "pkg"
)

var Formats = []Format{
	FormatExe,
	FormatZip,
	FormatTarGz,
	FormatPkg,
}

func (f Format) String() string {
	return string(f)
}

func ParseFormat(s string) (Format, error) {
	normalized := strings.TrimPrefix(s, ".")
	for _, f := range Formats {
		if strings.EqualFold(normalized, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown package format [%s], expected one of %v", s, Formats)
}
