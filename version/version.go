package version // import "github.com/bookdenapp/bookden/version"

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current release. Bump the minor part whenever the
// database schema changes.
var Version = "0.2.1"

func GetCurrentVersion() string {
	return Version
}

// GetSchemaVersion returns the version used to stamp migration history,
// patch releases never carry schema changes.
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

func GetMinorVersion(version string) string {
	versionList := strings.Split(version, ".")
	if len(versionList) < 3 {
		return "0.0"
	}
	return strings.Join(versionList[:2], ".")
}

func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) > -1
}

func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) > 0
}

type SortVersion []string

func (s SortVersion) Len() int {
	return len(s)
}

func (s SortVersion) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s SortVersion) Less(i, j int) bool {
	return semver.Compare(fmt.Sprintf("v%s", s[i]), fmt.Sprintf("v%s", s[j])) == -1
}
