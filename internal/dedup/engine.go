package dedup

import "deskscan-engine/internal/domain"

// Dedup walks records in input order, testing each one against every record
// already accepted; the first occurrence of a duplicate group survives and
// later ones are dropped. Survivor order equals input order, and re-running
// Dedup on its own output removes nothing.
//
// The scan is an explicit nested loop, O(n^2) worst case. Batch sizes are
// bounded by scraper output (hundreds of records), so the quadratic bound is
// acceptable and keeps the first-seen-survives ordering exact. Pre-grouping
// by normalized company would cut comparisons if batches ever grow; not
// needed for correctness.
func Dedup(records []domain.JobRecord, threshold float64) (unique []domain.JobRecord, removed int) {
	if len(records) == 0 {
		return nil, 0
	}

	unique = make([]domain.JobRecord, 0, len(records))
	for _, rec := range records {
		dup := false
		for _, kept := range unique {
			if IsDuplicate(rec, kept, threshold) {
				dup = true
				removed++
				break
			}
		}
		if !dup {
			unique = append(unique, rec)
		}
	}
	return unique, removed
}
