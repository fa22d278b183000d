package simplerevision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Run("valid versions", func(t *testing.T) {
		major, minor, patch, err := ParseVersion("1.2.3")
		require.NoError(t, err)
		assert.Equal(t, 1, major)
		assert.Equal(t, 2, minor)
		assert.Equal(t, 3, patch)

		major, minor, patch, err = ParseVersion("10.20.30")
		require.NoError(t, err)
		assert.Equal(t, 10, major)
		assert.Equal(t, 20, minor)
		assert.Equal(t, 30, patch)
	})

	t.Run("invalid versions", func(t *testing.T) {
		invalid := []string{"1.2", "1.2.3.4", "1.2.a", "a.b.c", "", "v1.2.3", "1.2.-3"}
		for _, version := range invalid {
			_, _, _, err := ParseVersion(version)
			assert.ErrorIs(t, err, ErrInvalidVersion, "version %q", version)
		}
	})
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", FormatVersion(1, 2, 3))
	assert.Equal(t, "0.0.0", FormatVersion(0, 0, 0))
	assert.Equal(t, "10.20.30", FormatVersion(10, 20, 30))
}

func TestIncrementVersion(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		versionType VersionType
		want        string
	}{
		{"major resets minor and patch", "1.2.3", VersionTypeMajor, "2.0.0"},
		{"minor resets patch", "1.2.3", VersionTypeMinor, "1.3.0"},
		{"patch keeps the rest", "1.2.3", VersionTypePatch, "1.2.4"},
		{"initial minor", "1.0.0", VersionTypeMinor, "1.1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IncrementVersion(tt.current, tt.versionType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid version type", func(t *testing.T) {
		_, err := IncrementVersion("1.2.3", VersionType("huge"))
		assert.Error(t, err)
	})

	t.Run("invalid current version", func(t *testing.T) {
		_, err := IncrementVersion("1.2", VersionTypeMinor)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"1.2.3", "1.2.3", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.3.0", "1.2.9", 1},
		{"1.2.4", "1.2.3", 1},
		{"1.2.3", "2.0.0", -1},
		{"1.2.3", "1.3.0", -1},
		{"1.2.3", "1.2.4", -1},
	}

	for _, tt := range tests {
		got, err := CompareVersions(tt.v1, tt.v2)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.v1, tt.v2)
	}

	_, err := CompareVersions("1.2", "1.2.3")
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestIsValidVersion(t *testing.T) {
	assert.True(t, IsValidVersion("1.2.3"))
	assert.True(t, IsValidVersion("0.0.1"))
	assert.True(t, IsValidVersion("10.20.30"))

	assert.False(t, IsValidVersion("1.2"))
	assert.False(t, IsValidVersion("1.2.3.4"))
	assert.False(t, IsValidVersion("1.2.a"))
	assert.False(t, IsValidVersion("a.b.c"))
}

func TestDetermineVersionType(t *testing.T) {
	base := DocumentContent{
		Title: "Guide",
		Sections: []Section{
			{Title: "Intro", Content: "original text", Order: 1},
		},
	}

	t.Run("title change is minor", func(t *testing.T) {
		changed := base
		changed.Title = "New Guide"
		assert.Equal(t, VersionTypeMinor, DetermineVersionType(base, changed))
	})

	t.Run("section add is minor", func(t *testing.T) {
		changed := base
		changed.Sections = append([]Section{}, base.Sections...)
		changed.Sections = append(changed.Sections, Section{Title: "Extra", Content: "more", Order: 2})
		assert.Equal(t, VersionTypeMinor, DetermineVersionType(base, changed))
	})

	t.Run("section remove is minor", func(t *testing.T) {
		changed := base
		changed.Sections = []Section{}
		assert.Equal(t, VersionTypeMinor, DetermineVersionType(base, changed))
	})

	t.Run("section title change is minor", func(t *testing.T) {
		changed := base
		changed.Sections = []Section{{Title: "Renamed", Content: "original text", Order: 1}}
		assert.Equal(t, VersionTypeMinor, DetermineVersionType(base, changed))
	})

	t.Run("large content rewrite is minor", func(t *testing.T) {
		changed := base
		changed.Sections = []Section{{Title: "Intro", Content: strings.Repeat("expanded content ", 20), Order: 1}}
		assert.Equal(t, VersionTypeMinor, DetermineVersionType(base, changed))
	})

	t.Run("small content edit is patch", func(t *testing.T) {
		changed := base
		changed.Sections = []Section{{Title: "Intro", Content: "original text, slightly edited", Order: 1}}
		assert.Equal(t, VersionTypePatch, DetermineVersionType(base, changed))
	})

	t.Run("no change is patch", func(t *testing.T) {
		assert.Equal(t, VersionTypePatch, DetermineVersionType(base, base))
	})
}
