package dedup

import "deskscan-engine/internal/domain"

// SourceBatch is the raw output of one scraper in one cycle. The order of
// batches handed to Merge is the source-processing order; callers must keep
// it fixed across runs so identical inputs merge identically.
type SourceBatch struct {
	Source  string
	Records []domain.JobRecord
}

// SourceRemoved is one source's within-batch duplicate count, reported in
// processing order.
type SourceRemoved struct {
	Source  string `json:"source"`
	Removed int    `json:"removed"`
}

// MergeStats reports what one merge cycle did. Informational only; the
// numbers never feed back into which records survive.
type MergeStats struct {
	PerSource          []SourceRemoved `json:"per_source"`
	CrossSourceRemoved int             `json:"cross_source_removed"`
	FinalRemoved       int             `json:"final_removed"`
	TrulyNew           int             `json:"truly_new"`
	TotalRemoved       int             `json:"total_removed"`
}

// Merge runs the three-stage pipeline for one scraping cycle:
//
//  1. dedup each source batch in isolation, catching one scraper's own
//     redundant listings before sources mix
//  2. dedup the concatenation of the cleaned batches, catching the same job
//     posted on two sites
//  3. dedup the old accepted set followed by the cleaned new batch
//
// The engine keeps first occurrences, and accepted is fed first in stage 3,
// so every previously accepted record survives untouched and only genuinely
// new records are appended. accepted itself is never mutated; the returned
// slice is the updated set.
func Merge(accepted []domain.JobRecord, batches []SourceBatch, threshold float64) ([]domain.JobRecord, MergeStats) {
	var stats MergeStats

	var fresh []domain.JobRecord
	for _, b := range batches {
		clean, removed := Dedup(b.Records, threshold)
		stats.PerSource = append(stats.PerSource, SourceRemoved{Source: b.Source, Removed: removed})
		stats.TotalRemoved += removed
		fresh = append(fresh, clean...)
	}

	fresh, stats.CrossSourceRemoved = Dedup(fresh, threshold)
	stats.TotalRemoved += stats.CrossSourceRemoved

	combined := make([]domain.JobRecord, 0, len(accepted)+len(fresh))
	combined = append(combined, accepted...)
	combined = append(combined, fresh...)

	final, finalRemoved := Dedup(combined, threshold)
	stats.FinalRemoved = finalRemoved
	stats.TotalRemoved += finalRemoved
	stats.TrulyNew = len(final) - len(accepted)

	return final, stats
}
