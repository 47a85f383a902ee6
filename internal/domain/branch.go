package domain

import (
	"fmt"
	"strings"
)

// DefaultRemote is the remote release branches are read from.
const DefaultRemote = "origin"

// BranchFor returns the remote release branch of a version on the default remote.
// "v0.2022.04.11.09.09.stable_01" on channel "stable" maps to
// "origin/stable_release/v0.2022.04.11.09.09.stable".
func BranchFor(version, channel string) (string, error) {
	return RemoteBranchFor(DefaultRemote, version, channel)
}

// RemoteBranchFor is BranchFor with an explicit remote name.
// The version must contain a "_" separator.
func RemoteBranchFor(remote, version, channel string) (string, error) {
	i := strings.Index(version, "_")
	if i < 0 {
		return "", fmt.Errorf("%w: %q has no \"_\" separator", ErrInvalidVersion, version)
	}
	if remote == "" {
		remote = DefaultRemote
	}
	return fmt.Sprintf("%s/%s_release/%s", remote, channel, version[:i]), nil
}
