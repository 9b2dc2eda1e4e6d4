package dedup

import (
	"strings"

	"deskscan-engine/internal/domain"
)

// companySimFloor is a fixed constant, independent of the caller-supplied
// threshold: a loose title threshold alone must never merge postings from
// different employers.
const companySimFloor = 0.9

// IsDuplicate reports whether a and b describe the same job opening. Three
// sufficient conditions, checked in order (order affects only performance;
// each is OR'd):
//
//  1. identical normalized title and company
//  2. title similarity >= threshold and company similarity >= 0.9
//  3. identical non-generic URL
//
// Pure predicate: no side effects, no errors, symmetric in a and b.
func IsDuplicate(a, b domain.JobRecord, threshold float64) bool {
	ta, tb := Normalize(a.Title), Normalize(b.Title)

	// Two placeholder titles ("N/A", "-") both normalize to "" and would
	// trivially satisfy the text rules. Such records carry no text identity;
	// only a shared posting URL can tie them together.
	if ta == "" && tb == "" {
		return samePostingURL(a.URL, b.URL)
	}

	if ta == tb && Normalize(a.Company) == Normalize(b.Company) {
		return true
	}

	if Similarity(a.Title, b.Title) >= threshold &&
		Similarity(a.Company, b.Company) >= companySimFloor {
		return true
	}

	return samePostingURL(a.URL, b.URL)
}

// samePostingURL treats equal non-empty URLs as the same posting, unless the
// URL is a generic search link and thus shared by unrelated jobs.
func samePostingURL(u1, u2 string) bool {
	if u1 == "" || u2 == "" || u1 != u2 {
		return false
	}
	return !strings.Contains(strings.ToLower(u1), "search")
}
