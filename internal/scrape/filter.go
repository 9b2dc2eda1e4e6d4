package scrape

import (
	"strings"

	"deskscan-engine/internal/config"
	"deskscan-engine/internal/domain"
)

// ShouldKeepRecord enforces the producer contract of the dedup core: a
// record with no usable title never reaches it. The optional keyword filter
// then drops records matching none of the configured terms.
func ShouldKeepRecord(cfg config.Config, rec domain.JobRecord) (keep bool, reason string) {
	if strings.TrimSpace(rec.Title) == "" {
		return false, "missing_title"
	}

	if len(cfg.Filters.KeywordsAny) == 0 {
		return true, ""
	}

	blob := strings.ToLower(rec.Title + " " + rec.Company)
	for _, kw := range cfg.Filters.KeywordsAny {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(blob, k) {
			return true, ""
		}
	}
	return false, "no_keyword_match"
}
