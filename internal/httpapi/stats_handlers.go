package httpapi

import (
	"net/http"

	"deskscan-engine/internal/session"
)

type StatsHandler struct {
	Sess *session.Session
}

func (h StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Sess.Totals())
}
