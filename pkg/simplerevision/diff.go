package simplerevision

// ComputeDiff computes the section-level structural diff between two
// document contents. It is a pure function: no I/O, no state.
//
// Sections are matched across the two sides by title, since titles are
// business-meaningful headings rather than positional slots. When a
// title occurs more than once on a side, candidates are paired by
// closest Order value; any unmatched remainder falls through to the
// added or removed list. Matched pairs with identical content are
// omitted from the result.
//
// FromVersion and ToVersion on the result are left empty; the service
// annotates them when it knows which revisions were compared.
func ComputeDiff(from, to DocumentContent) DiffResult {
	fromByTitle := groupByTitle(from.Sections)
	toByTitle := groupByTitle(to.Sections)

	diff := DiffResult{
		SectionsAdded:    []Section{},
		SectionsRemoved:  []Section{},
		SectionsModified: []SectionChange{},
	}

	// Walk the from side in document order so output ordering is stable.
	seen := make(map[string]bool, len(fromByTitle))
	for _, sec := range from.Sections {
		if seen[sec.Title] {
			continue
		}
		seen[sec.Title] = true

		olds := fromByTitle[sec.Title]
		news := toByTitle[sec.Title]
		if len(news) == 0 {
			diff.SectionsRemoved = append(diff.SectionsRemoved, olds...)
			continue
		}

		matched, leftoverOld, leftoverNew := pairByOrder(olds, news)
		for _, pair := range matched {
			if pair.Old.Content != pair.New.Content {
				diff.SectionsModified = append(diff.SectionsModified, pair)
			}
		}
		diff.SectionsRemoved = append(diff.SectionsRemoved, leftoverOld...)
		diff.SectionsAdded = append(diff.SectionsAdded, leftoverNew...)
	}

	// Titles that only exist on the to side.
	for _, sec := range to.Sections {
		if _, ok := fromByTitle[sec.Title]; !ok {
			diff.SectionsAdded = append(diff.SectionsAdded, sec)
		}
	}

	return diff
}

func groupByTitle(sections []Section) map[string][]Section {
	grouped := make(map[string][]Section, len(sections))
	for _, sec := range sections {
		grouped[sec.Title] = append(grouped[sec.Title], sec)
	}
	return grouped
}

// pairByOrder greedily pairs sections sharing a title by the smallest
// absolute difference in Order. Each side's sections are consumed at
// most once.
func pairByOrder(olds, news []Section) (matched []SectionChange, leftoverOld, leftoverNew []Section) {
	usedNew := make([]bool, len(news))

	for _, old := range olds {
		best := -1
		bestDist := 0
		for j, candidate := range news {
			if usedNew[j] {
				continue
			}
			dist := old.Order - candidate.Order
			if dist < 0 {
				dist = -dist
			}
			if best == -1 || dist < bestDist {
				best = j
				bestDist = dist
			}
		}
		if best == -1 {
			leftoverOld = append(leftoverOld, old)
			continue
		}
		usedNew[best] = true
		matched = append(matched, SectionChange{Old: old, New: news[best]})
	}

	for j, candidate := range news {
		if !usedNew[j] {
			leftoverNew = append(leftoverNew, candidate)
		}
	}

	return matched, leftoverOld, leftoverNew
}
