package domain

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// IsNewer reports whether version a sorts strictly after version b.
//
// Versions are compared as opaque strings with a numeric-aware, case-insensitive
// collation: digit runs are compared by value ("11" > "9") and letter case is
// ignored. Every release tag has the same shape
// (e.g. "v0.2022.04.11.09.09.stable_01"), which is what makes this ordering
// meaningful. Malformed versions are still compared by the same collation,
// but no particular ordering is guaranteed for them.
func IsNewer(a, b string) bool {
	// A Collator keeps internal buffers, so one is created per comparison.
	c := collate.New(language.Und, collate.Numeric, collate.Loose)
	return c.CompareString(a, b) > 0
}

// cherrypickSuffixLen is the length of the trailing "_NN" sequence of a version.
const cherrypickSuffixLen = 3

// ReleaseFamily returns the version prefix shared by every cherrypick of the
// same release, i.e. the version without its trailing "_NN" suffix.
// "v0.2022.04.11.09.09.stable_01" -> "v0.2022.04.11.09.09.stable".
func ReleaseFamily(version string) string {
	if len(version) < cherrypickSuffixLen {
		return ""
	}
	return version[:len(version)-cherrypickSuffixLen]
}
