package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"deskscan-engine/internal/config"
	"deskscan-engine/internal/dedup"
	"deskscan-engine/internal/events"
	"deskscan-engine/internal/scrape"
	"deskscan-engine/internal/scrape/types"
	"deskscan-engine/internal/session"
)

type ScrapeHandler struct {
	Sess         *session.Session
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // types.ScrapeStatus
	Hub          *events.Hub
	RunCycle     func(ctx context.Context, cfg config.Config, sess *session.Session, progress scrape.Progress) (dedup.MergeStats, error)
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(types.ScrapeStatus)
	writeJSON(w, st)
}

// Run kicks off one cycle in the background. At most one cycle runs at a
// time; a second POST while running is refused, not queued.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(types.ScrapeStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScrapeStatus.Store(types.ScrapeStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		cfg := h.CfgVal.Load().(config.Config)

		h.Hub.Publish(events.Make(events.TypeCycleStarted, nil))
		stats, err := h.RunCycle(context.Background(), cfg, h.Sess, func(source string, found int) {
			h.Hub.Publish(events.Make(events.TypeSourceDone, events.SourceDone{
				Source: source, Found: found,
			}))
		})
		h.Hub.Publish(events.Make(events.TypeCycleFinished, events.CycleFinished{
			New: stats.TrulyNew, Removed: stats.TotalRemoved, AcceptedSize: h.Sess.Size(),
		}))

		now := time.Now().Format(time.RFC3339)
		next := h.ScrapeStatus.Load().(types.ScrapeStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = stats.TrulyNew
		next.LastPurged = stats.TotalRemoved
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScrapeStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
