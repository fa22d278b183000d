package simplerevision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func content(title string, sections ...Section) DocumentContent {
	return DocumentContent{Title: title, Sections: sections}
}

func TestComputeDiffIdentity(t *testing.T) {
	doc := content("Intro",
		Section{Title: "A", Content: "a1", Order: 1},
		Section{Title: "B", Content: "b1", Order: 2},
	)

	diff := ComputeDiff(doc, doc)
	assert.Empty(t, diff.SectionsAdded)
	assert.Empty(t, diff.SectionsRemoved)
	assert.Empty(t, diff.SectionsModified)
	assert.True(t, diff.Empty())
}

func TestComputeDiffAddedAndModified(t *testing.T) {
	v1 := content("Intro",
		Section{Title: "A", Content: "a1", Order: 1},
	)
	v2 := content("Intro",
		Section{Title: "A", Content: "a2", Order: 1},
		Section{Title: "B", Content: "b1", Order: 2},
	)

	diff := ComputeDiff(v1, v2)

	require.Len(t, diff.SectionsAdded, 1)
	assert.Equal(t, "B", diff.SectionsAdded[0].Title)
	assert.Empty(t, diff.SectionsRemoved)
	require.Len(t, diff.SectionsModified, 1)
	assert.Equal(t, "a1", diff.SectionsModified[0].Old.Content)
	assert.Equal(t, "a2", diff.SectionsModified[0].New.Content)
}

func TestComputeDiffRemoved(t *testing.T) {
	v1 := content("Intro",
		Section{Title: "A", Content: "a1", Order: 1},
		Section{Title: "B", Content: "b1", Order: 2},
	)
	v2 := content("Intro",
		Section{Title: "A", Content: "a1", Order: 1},
	)

	diff := ComputeDiff(v1, v2)

	assert.Empty(t, diff.SectionsAdded)
	require.Len(t, diff.SectionsRemoved, 1)
	assert.Equal(t, "B", diff.SectionsRemoved[0].Title)
	assert.Empty(t, diff.SectionsModified)
}

func TestComputeDiffDisjoint(t *testing.T) {
	v1 := content("Intro",
		Section{Title: "A", Content: "a1", Order: 1},
		Section{Title: "B", Content: "b1", Order: 2},
	)
	v2 := content("Intro",
		Section{Title: "C", Content: "c1", Order: 1},
		Section{Title: "D", Content: "d1", Order: 2},
	)

	diff := ComputeDiff(v1, v2)

	assert.Len(t, diff.SectionsAdded, 2)
	assert.Len(t, diff.SectionsRemoved, 2)
	assert.Empty(t, diff.SectionsModified)
}

func TestComputeDiffEmptySides(t *testing.T) {
	doc := content("Intro",
		Section{Title: "A", Content: "a1", Order: 1},
	)
	empty := content("Intro")

	t.Run("empty from side", func(t *testing.T) {
		diff := ComputeDiff(empty, doc)
		assert.Len(t, diff.SectionsAdded, 1)
		assert.Empty(t, diff.SectionsRemoved)
		assert.Empty(t, diff.SectionsModified)
	})

	t.Run("empty to side", func(t *testing.T) {
		diff := ComputeDiff(doc, empty)
		assert.Empty(t, diff.SectionsAdded)
		assert.Len(t, diff.SectionsRemoved, 1)
		assert.Empty(t, diff.SectionsModified)
	})
}

// The inverse law: adds in one direction are removals in the other.
func TestComputeDiffInverse(t *testing.T) {
	a := content("Doc",
		Section{Title: "A", Content: "a1", Order: 1},
		Section{Title: "B", Content: "b1", Order: 2},
	)
	b := content("Doc",
		Section{Title: "B", Content: "b2", Order: 1},
		Section{Title: "C", Content: "c1", Order: 2},
	)

	forward := ComputeDiff(a, b)
	backward := ComputeDiff(b, a)

	assert.ElementsMatch(t, forward.SectionsAdded, backward.SectionsRemoved)
	assert.ElementsMatch(t, forward.SectionsRemoved, backward.SectionsAdded)
	assert.Len(t, forward.SectionsModified, len(backward.SectionsModified))
}

func TestComputeDiffDuplicateTitles(t *testing.T) {
	// Two sections sharing a title: matching pairs by closest order so
	// the section at order 5 lines up with the candidate at order 4,
	// not the one at order 1.
	v1 := content("Doc",
		Section{Title: "Notes", Content: "first", Order: 1},
		Section{Title: "Notes", Content: "fifth", Order: 5},
	)
	v2 := content("Doc",
		Section{Title: "Notes", Content: "first", Order: 1},
		Section{Title: "Notes", Content: "fourth", Order: 4},
	)

	diff := ComputeDiff(v1, v2)

	assert.Empty(t, diff.SectionsAdded)
	assert.Empty(t, diff.SectionsRemoved)
	require.Len(t, diff.SectionsModified, 1)
	assert.Equal(t, "fifth", diff.SectionsModified[0].Old.Content)
	assert.Equal(t, "fourth", diff.SectionsModified[0].New.Content)
}

func TestComputeDiffDuplicateTitleRemainder(t *testing.T) {
	// Unmatched duplicates fall through to added/removed.
	v1 := content("Doc",
		Section{Title: "Notes", Content: "only", Order: 1},
	)
	v2 := content("Doc",
		Section{Title: "Notes", Content: "only", Order: 1},
		Section{Title: "Notes", Content: "second copy", Order: 2},
	)

	diff := ComputeDiff(v1, v2)

	require.Len(t, diff.SectionsAdded, 1)
	assert.Equal(t, "second copy", diff.SectionsAdded[0].Content)
	assert.Empty(t, diff.SectionsRemoved)
	assert.Empty(t, diff.SectionsModified)
}
