package types

import (
	"context"

	"deskscan-engine/internal/domain"
)

// ScrapeResult is one source's raw batch for a cycle. Records carry no
// dedup guarantee; the merge pipeline owns that.
type ScrapeResult struct {
	Source  string
	Records []domain.JobRecord
}

type ScrapeStatus struct {
	LastRunAt  string `json:"last_run_at"`
	LastOkAt   string `json:"last_ok_at"`
	LastError  string `json:"last_error"`
	LastAdded  int    `json:"last_added"`
	LastPurged int    `json:"last_purged"` // duplicates removed last cycle
	Running    bool   `json:"running"`
}

// Fetcher is one listing-site scraper. Fetch is best-effort: a partial
// batch with nil error is fine, and errors never abort sibling sources.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}
