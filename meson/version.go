package meson

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var versionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:rc\d+)?)`)

// ParseVersion extracts a canonical semantic version ("v1.3.2") from the
// output of meson --version or a release title.
func ParseVersion(out string) (string, error) {
	m := versionRe.FindStringSubmatch(strings.TrimSpace(out))
	if m == nil {
		return "", fmt.Errorf("no version in %q", out)
	}
	v := m[1]
	// meson tags release candidates as 1.4.0rc1
	if i := strings.Index(v, "rc"); i > 0 {
		v = v[:i] + "-" + v[i:]
	}
	v = semver.Canonical("v" + v)
	if v == "" {
		return "", fmt.Errorf("invalid version in %q", out)
	}
	return v, nil
}

// Newer reports whether version a is newer than b. Both must be canonical.
func Newer(a, b string) bool {
	return semver.Compare(a, b) > 0
}
