package simplerevision

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// InitialVersion is the version assigned to a document's first revision.
const InitialVersion = "1.0.0"

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ParseVersion splits a "major.minor.patch" version string into its
// numeric components.
func ParseVersion(version string) (major, minor, patch int, err error) {
	if !versionPattern.MatchString(version) {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	parts := strings.Split(version, ".")
	major, _ = strconv.Atoi(parts[0])
	minor, _ = strconv.Atoi(parts[1])
	patch, _ = strconv.Atoi(parts[2])
	return major, minor, patch, nil
}

// FormatVersion renders numeric components as a version string.
func FormatVersion(major, minor, patch int) string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

// IncrementVersion returns the version that follows current for the
// given version type. Incrementing major resets minor and patch;
// incrementing minor resets patch.
func IncrementVersion(current string, versionType VersionType) (string, error) {
	major, minor, patch, err := ParseVersion(current)
	if err != nil {
		return "", err
	}

	switch versionType {
	case VersionTypeMajor:
		major++
		minor = 0
		patch = 0
	case VersionTypeMinor:
		minor++
		patch = 0
	case VersionTypePatch:
		patch++
	default:
		return "", fmt.Errorf("invalid version type: %q", versionType)
	}

	return FormatVersion(major, minor, patch), nil
}

// CompareVersions returns -1, 0, or 1 as v1 is ordered before, equal
// to, or after v2.
func CompareVersions(v1, v2 string) (int, error) {
	maj1, min1, pat1, err := ParseVersion(v1)
	if err != nil {
		return 0, err
	}
	maj2, min2, pat2, err := ParseVersion(v2)
	if err != nil {
		return 0, err
	}

	a := [3]int{maj1, min1, pat1}
	b := [3]int{maj2, min2, pat2}
	for i := range a {
		if a[i] < b[i] {
			return -1, nil
		}
		if a[i] > b[i] {
			return 1, nil
		}
	}
	return 0, nil
}

// IsValidVersion reports whether version is a well-formed
// "major.minor.patch" string.
func IsValidVersion(version string) bool {
	_, _, _, err := ParseVersion(version)
	return err == nil
}

// significantContentDelta is the rune-count change within a single
// section above which a content edit counts as a structural change.
const significantContentDelta = 100

// DetermineVersionType classifies the change from old to new content:
// document title changes, section additions/removals, and large
// content rewrites bump the minor version; small in-place content
// edits bump the patch version.
func DetermineVersionType(old, new DocumentContent) VersionType {
	if old.Title != new.Title {
		return VersionTypeMinor
	}

	diff := ComputeDiff(old, new)
	if len(diff.SectionsAdded) > 0 || len(diff.SectionsRemoved) > 0 {
		return VersionTypeMinor
	}
	for _, change := range diff.SectionsModified {
		delta := len([]rune(change.New.Content)) - len([]rune(change.Old.Content))
		if delta < 0 {
			delta = -delta
		}
		if delta > significantContentDelta {
			return VersionTypeMinor
		}
	}

	return VersionTypePatch
}
