// Package session owns the accepted set between merge cycles. The dedup
// core treats the set as a value handed in and returned; Session is the
// caller that holds that value, serializes cycles, and snapshots the result
// to sqlite so a restart resumes with the prior session's surviving set.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"deskscan-engine/internal/dedup"
	"deskscan-engine/internal/domain"
	"deskscan-engine/internal/store"
)

type Session struct {
	mu         sync.Mutex
	db         *sql.DB
	accepted   []domain.JobRecord
	removed    int // cumulative duplicates removed across cycles
	lastUpdate time.Time
}

// Totals mirrors the dashboard counters over the current accepted set.
type Totals struct {
	Total             int    `json:"total"`
	Sources           int    `json:"sources"`
	Companies         int    `json:"companies"`
	Remote            int    `json:"remote"`
	Hybrid            int    `json:"hybrid"`
	PostedToday       int    `json:"posted_today"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	LastUpdate        string `json:"last_update,omitempty"`
}

// Load restores the prior session's surviving set from the snapshot table.
func Load(ctx context.Context, db *sql.DB) (*Session, error) {
	accepted, err := store.LoadSnapshot(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &Session{db: db, accepted: accepted}, nil
}

// Cycle merges one scraping cycle's batches into the set and persists the
// result. The in-memory set only advances when the snapshot write succeeds,
// so memory and disk never diverge.
func (s *Session) Cycle(batches []dedup.SourceBatch, threshold float64) (dedup.MergeStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	final, stats := dedup.Merge(s.accepted, batches, threshold)

	if err := store.ReplaceSnapshot(context.Background(), s.db, final); err != nil {
		return stats, fmt.Errorf("persist snapshot: %w", err)
	}

	s.accepted = final
	s.removed += stats.TotalRemoved
	s.lastUpdate = time.Now()
	return stats, nil
}

// Snapshot returns a copy of the accepted set; callers may filter or export
// it freely without racing the next cycle.
func (s *Session) Snapshot() []domain.JobRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.JobRecord, len(s.accepted))
	copy(out, s.accepted)
	return out
}

func (s *Session) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accepted)
}

// Clear is the explicit Populated->Empty transition. It also resets the
// cumulative duplicate counter, matching a fresh session.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.ClearSnapshot(context.Background(), s.db); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	s.accepted = nil
	s.removed = 0
	s.lastUpdate = time.Time{}
	return nil
}

func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Totals{
		Total:             len(s.accepted),
		DuplicatesRemoved: s.removed,
	}

	sources := map[string]bool{}
	companies := map[string]bool{}
	today := time.Now().Format("2006-01-02")
	for _, r := range s.accepted {
		sources[r.Source] = true
		companies[r.Company] = true
		mode := strings.ToLower(r.WorkMode)
		if strings.Contains(mode, "remote") {
			t.Remote++
		}
		if strings.Contains(mode, "hybrid") {
			t.Hybrid++
		}
		if r.DatePosted == today {
			t.PostedToday++
		}
	}
	t.Sources = len(sources)
	t.Companies = len(companies)

	if !s.lastUpdate.IsZero() {
		t.LastUpdate = s.lastUpdate.Format(time.RFC3339)
	}
	return t
}
