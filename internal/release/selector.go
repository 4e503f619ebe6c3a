package release

import (
	"regexp"
	"strings"
)

const (
	SelectorCurrent Selector = "Current"
	SelectorLTS     Selector = "LTS"
)

var twoPartVersion = regexp.MustCompile(`\d+\.\d+`)

// Selector identifies a release train, either an alias or an explicit A.B version.
type Selector string

// NewSelector normalizes the known aliases case insensitively, anything else
// is kept as given.
func NewSelector(s string) Selector {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.EqualFold(trimmed, string(SelectorLTS)):
		return SelectorLTS
	case strings.EqualFold(trimmed, string(SelectorCurrent)):
		return SelectorCurrent
	}
	return Selector(trimmed)
}

func (s Selector) String() string {
	return string(s)
}

// IsExplicit reports whether the selector already carries a two part version.
func (s Selector) IsExplicit() bool {
	return twoPartVersion.MatchString(string(s))
}

// ExtractChannel returns the first two part version found in version.
func ExtractChannel(version string) (string, bool) {
	match := twoPartVersion.FindString(version)
	return match, match != ""
}
