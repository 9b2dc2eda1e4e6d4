package httpapi

import (
	"context"
	"sync/atomic"

	"deskscan-engine/internal/config"
	"deskscan-engine/internal/dedup"
	"deskscan-engine/internal/events"
	"deskscan-engine/internal/scrape"
	"deskscan-engine/internal/session"
)

type Deps struct {
	Sess *session.Session

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores types.ScrapeStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Cycle entrypoint (inject for testability)
	RunCycle func(ctx context.Context, cfg config.Config, sess *session.Session, progress scrape.Progress) (dedup.MergeStats, error)
}
