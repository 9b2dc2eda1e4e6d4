package httpapi

import (
	"net/http"

	"deskscan-engine/internal/session"
)

type HealthHandler struct {
	Sess *session.Session
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":       true,
		"accepted": h.Sess.Size(),
	})
}
