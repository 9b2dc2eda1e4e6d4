package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deskscan-engine/internal/domain"
)

func job(title, company string) domain.JobRecord {
	return domain.JobRecord{Title: title, Company: company}
}

func TestIsDuplicateExactMatch(t *testing.T) {
	a := job("IT Support", "Acme")
	b := job("it  support!", "ACME")
	assert.True(t, IsDuplicate(a, b, 0.85), "normalized-identical title+company")
}

func TestIsDuplicateFuzzyMatch(t *testing.T) {
	// title ratio ~0.927, companies identical
	a := job("IT Support Engineer", "Acme Corp")
	b := job("IT Support Engineer II", "Acme Corp")
	assert.True(t, IsDuplicate(a, b, 0.85))
	assert.False(t, IsDuplicate(a, b, 0.95), "stricter threshold rejects the pair")

	// identical title, near-identical company (ratio ~0.971 >= 0.9 floor)
	c := job("Service Desk Analyst", "Globex Corporation")
	d := job("Service Desk Analyst", "Globex Corporatio")
	assert.True(t, IsDuplicate(c, d, 0.85))
}

func TestIsDuplicateCompanyFloorIsFixed(t *testing.T) {
	// same title, different employers: a loose title threshold must not merge
	a := job("Help Desk Analyst", "Acme")
	b := job("Help Desk Analyst", "Globex")
	assert.False(t, IsDuplicate(a, b, 0.7))
	assert.False(t, IsDuplicate(a, b, 0.85))
}

func TestIsDuplicateURLIdentity(t *testing.T) {
	a := domain.JobRecord{Title: "IT Support Engineer", Company: "Acme", URL: "https://x.com/job/123"}
	b := domain.JobRecord{Title: "Desktop Support", Company: "Globex", URL: "https://x.com/job/123"}
	assert.True(t, IsDuplicate(a, b, 0.85), "shared non-generic URL alone is sufficient")

	a.URL = "https://x.com/search?q=it"
	b.URL = "https://x.com/search?q=it"
	assert.False(t, IsDuplicate(a, b, 0.85), "generic search URLs carry no identity")

	a.URL = ""
	b.URL = "https://x.com/job/123"
	assert.False(t, IsDuplicate(a, b, 0.85), "missing URL never matches")
}

func TestIsDuplicateEmptyTitles(t *testing.T) {
	// Placeholder-only records must not merge on matching emptiness.
	a := job("-", "N/A")
	b := job("--", "N/A")
	assert.False(t, IsDuplicate(a, b, 0.85))

	// The URL rule still applies as a fallback signal.
	a.URL = "https://x.com/job/9"
	b.URL = "https://x.com/job/9"
	assert.True(t, IsDuplicate(a, b, 0.85))
}

func TestIsDuplicateSymmetric(t *testing.T) {
	pairs := [][2]domain.JobRecord{
		{job("IT Support", "Acme"), job("IT Support", "Acme")},
		{job("IT Support Engineer", "Acme Corp"), job("IT Support Engineer II", "Acme Corp")},
		{job("Help Desk Analyst", "Acme"), job("Help Desk Analyst", "Globex")},
		{
			{Title: "A", Company: "B", URL: "https://x.com/job/1"},
			{Title: "C", Company: "D", URL: "https://x.com/job/1"},
		},
	}
	for _, th := range []float64{0.7, 0.85, 1.0} {
		for _, p := range pairs {
			assert.Equal(t, IsDuplicate(p[0], p[1], th), IsDuplicate(p[1], p[0], th))
		}
	}
}
