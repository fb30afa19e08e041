package updater

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrDevelopmentBuild is returned when the running binary was not built from
// a release tag and so cannot be compared with one.
var ErrDevelopmentBuild = errors.New("development build has no release version")

// newerRelease reports whether tag names a release after the running
// version. Both sides may carry a leading "v".
func newerRelease(running, tag string) (bool, error) {
	if running == "" || running == "dev" {
		return false, ErrDevelopmentBuild
	}
	have, err := semver.NewVersion(running)
	if err != nil {
		return false, fmt.Errorf("running version %q: %w", running, err)
	}
	published, err := semver.NewVersion(tag)
	if err != nil {
		return false, fmt.Errorf("release tag %q: %w", tag, err)
	}
	return published.GreaterThan(have), nil
}
