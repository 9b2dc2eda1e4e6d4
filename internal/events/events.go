// Package events fans scrape-cycle progress out to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

const (
	TypeCycleStarted  = "cycle_started"
	TypeSourceDone    = "source_done"
	TypeCycleFinished = "cycle_finished"
	TypeJobsCleared   = "jobs_cleared"
)

type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

func Make(typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{Type: typ, At: time.Now().UTC(), Data: raw}
	b, _ := json.Marshal(e)
	return string(b)
}

type SourceDone struct {
	Source string `json:"source"`
	Found  int    `json:"found"`
}

type CycleFinished struct {
	New          int `json:"new"`
	Removed      int `json:"removed"`
	AcceptedSize int `json:"accepted_size"`
}
