package installer

import (
	"path/filepath"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// versionToken matches a version embedded in a package file name:
// "app-v10", "MyTool_1.2.3", "tool-2.0.1-beta".
var versionToken = regexp.MustCompile(`(?i)(?:^|[-_ .])v?(\d+(?:\.\d+)*(?:-[0-9a-z.]+)?)$`)

// ParseVersionToken extracts the version embedded at the end of a package file
// name. It returns nil when the name carries no version.
//
//	"app-v10.zip"        -> 10
//	"MyTool-1.2.3.zip"   -> 1.2.3
//	"MyTool.zip"         -> nil
func ParseVersionToken(fileName string) *goversion.Version {
	stem := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	m := versionToken.FindStringSubmatch(stem)
	if m == nil {
		return nil
	}
	v, err := goversion.NewVersion(m[1])
	if err != nil {
		return nil
	}
	return v
}

// CompareVersions compares two version strings.
// Returns:
//   - negative if v1 < v2
//   - zero if v1 == v2
//   - positive if v1 > v2
//
// A version that does not parse sorts before one that does; two unparsable
// versions compare equal.
func CompareVersions(v1, v2 string) int {
	a, errA := goversion.NewVersion(v1)
	b, errB := goversion.NewVersion(v2)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return a.Compare(b)
}

// InstallAction represents the type of installation action.
type InstallAction int

const (
	ActionFreshInstall InstallAction = iota
	ActionUpgrade
	ActionDowngrade
	ActionReinstall
)

// String returns the action name.
func (a InstallAction) String() string {
	switch a {
	case ActionFreshInstall:
		return "Fresh Install"
	case ActionUpgrade:
		return "Upgrade"
	case ActionDowngrade:
		return "Downgrade"
	case ActionReinstall:
		return "Reinstall"
	default:
		return "Install"
	}
}

// DetermineAction determines the installation action based on versions.
// An unknown existing version with an existing install counts as a reinstall.
func DetermineAction(installed bool, existingVersion, newVersion string) InstallAction {
	if !installed {
		return ActionFreshInstall
	}
	if existingVersion == "" || newVersion == "" {
		return ActionReinstall
	}

	cmp := CompareVersions(newVersion, existingVersion)
	switch {
	case cmp > 0:
		return ActionUpgrade
	case cmp < 0:
		return ActionDowngrade
	default:
		return ActionReinstall
	}
}
