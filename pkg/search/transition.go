package search

import (
	"slices"
	"strings"
)

// Matches reports whether item contains term, ignoring case.
// No trimming or tokenization is applied.
func Matches(item, term string) bool {
	return strings.Contains(strings.ToLower(item), strings.ToLower(term))
}

// IsBlank reports whether term is empty or whitespace only.
// Blank terms match nothing.
func IsBlank(term string) bool {
	return strings.TrimSpace(term) == ""
}

// Advance computes the state after s from the candidate collection.
// The next page is the slice [PageNumber*pageSize, (PageNumber+1)*pageSize)
// of the matching candidates; an empty page yields PhaseDone.
func Advance(candidates []string, pageSize int, s State) State {
	var page []string
	if !IsBlank(s.SearchTerm) && pageSize > 0 {
		page = pageOf(candidates, s.SearchTerm, s.PageNumber*pageSize, pageSize)
	}

	phase := PhaseDone
	if len(page) > 0 {
		phase = PhaseHasItems
	}

	return s.with(s.PageNumber+1, page, phase)
}

// pageOf returns up to size matches of term after skipping the first skip.
func pageOf(candidates []string, term string, skip, size int) []string {
	lowerTerm := strings.ToLower(term)

	var page []string
	seen := 0
	for _, item := range candidates {
		if !strings.Contains(strings.ToLower(item), lowerTerm) {
			continue
		}
		if seen++; seen <= skip {
			continue
		}
		page = append(page, item)
		if len(page) == size {
			break
		}
	}

	return slices.Clip(page)
}

// Continue reports whether s is emitted. The terminal state is not.
func Continue(s State) bool {
	return s.Phase != PhaseDone
}

// Project converts a state into its stream result.
func Project(s State) Result {
	if s.Phase == PhaseNew {
		return StreamStarting{SearchTerm: s.SearchTerm}
	}
	return PageReady{
		SearchTerm: s.SearchTerm,
		PageNumber: s.PageNumber,
		Items:      s.Items,
	}
}
