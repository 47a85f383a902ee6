package domain

import "strings"

// MaxReleases is the number of most recent releases fetched from upstream.
const MaxReleases = 100

// Release is a published release as reported by the release-metadata service.
type Release struct {
	Name    string `json:"name" yaml:"name"`       // Human label, e.g. "Stable v123"
	Version string `json:"version" yaml:"version"` // Tag name, e.g. "v0.2022.04.11.09.09.stable_01"
}

// SelectPreviousRelease finds the release the current version should be diffed against.
//
// releases must be ordered newest first. A candidate is eligible when its name
// starts with the channel (case-insensitive) and its version is not part of the
// current release family, so earlier cherrypicks of the same release are skipped.
// The first eligible candidate older than currentVersion wins.
//
// Returns ErrPreviousReleaseNotFound when no candidate qualifies.
func SelectPreviousRelease(releases []Release, currentVersion, channel string) (string, error) {
	family := ReleaseFamily(currentVersion)
	channel = strings.ToLower(channel)

	for _, r := range releases {
		if !strings.HasPrefix(strings.ToLower(r.Name), channel) {
			continue
		}
		if strings.HasPrefix(r.Version, family) {
			continue
		}
		if IsNewer(currentVersion, r.Version) {
			return r.Version, nil
		}
	}
	return "", ErrPreviousReleaseNotFound
}
