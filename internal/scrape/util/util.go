package util

import (
	"net/http"
	"strings"
	"time"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// SetBrowserHeaders makes req look like an ordinary browser visit; the UA
// rotates on the wall clock so consecutive requests don't all present the
// same agent.
func SetBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgents[int(time.Now().Unix())%len(userAgents)])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// InferWorkMode maps free text onto the record vocabulary when a source
// doesn't state the mode outright.
func InferWorkMode(location, title string) string {
	blob := strings.ToLower(location + " " + title)
	switch {
	case strings.Contains(blob, "remote") && strings.Contains(blob, "hybrid"):
		return "Remote/Hybrid"
	case strings.Contains(blob, "remote"):
		return "Remote"
	case strings.Contains(blob, "hybrid"):
		return "Hybrid"
	case strings.Contains(blob, "on-site") || strings.Contains(blob, "onsite") || strings.Contains(blob, "on site"):
		return "On-site"
	default:
		return "Remote/Hybrid"
	}
}
