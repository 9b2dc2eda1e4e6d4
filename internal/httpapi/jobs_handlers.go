package httpapi

import (
	"net/http"
	"strings"
	"time"

	"deskscan-engine/internal/domain"
	"deskscan-engine/internal/events"
	"deskscan-engine/internal/export"
	"deskscan-engine/internal/session"
)

type JobsHandler struct {
	Sess *session.Session
	Hub  *events.Hub
}

// List serves the accepted set in first-seen order, optionally narrowed by
// ?source=, ?work_mode= and ?q= (substring over title+company).
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	source := strings.ToLower(strings.TrimSpace(params.Get("source")))
	mode := strings.ToLower(strings.TrimSpace(params.Get("work_mode")))
	q := strings.ToLower(strings.TrimSpace(params.Get("q")))

	jobs := filterJobs(h.Sess.Snapshot(), source, mode, q)
	writeJSON(w, map[string]any{"total": len(jobs), "jobs": jobs})
}

func filterJobs(jobs []domain.JobRecord, source, mode, q string) []domain.JobRecord {
	out := jobs[:0]
	for _, j := range jobs {
		if source != "" && !strings.Contains(strings.ToLower(j.Source), source) {
			continue
		}
		if mode != "" && !strings.Contains(strings.ToLower(j.WorkMode), mode) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(j.Title+" "+j.Company), q) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func (h JobsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	jobs := h.Sess.Snapshot()

	name := "deskscan_jobs_" + time.Now().Format("20060102_150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)

	if err := export.WriteCSV(w, jobs); err != nil {
		// headers already out; nothing useful to send the client
		return
	}
}

func (h JobsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Sess.Clear(); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "clear_failed", err.Error())
		return
	}
	h.Hub.Publish(events.Make(events.TypeJobsCleared, nil))
	writeJSON(w, map[string]any{"ok": true})
}
