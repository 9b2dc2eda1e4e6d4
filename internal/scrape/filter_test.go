package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deskscan-engine/internal/config"
	"deskscan-engine/internal/domain"
)

func TestShouldKeepRecordMissingTitle(t *testing.T) {
	var cfg config.Config

	keep, reason := ShouldKeepRecord(cfg, domain.JobRecord{Title: "   ", Company: "Acme"})
	assert.False(t, keep)
	assert.Equal(t, "missing_title", reason)
}

func TestShouldKeepRecordNoFilterKeepsAll(t *testing.T) {
	var cfg config.Config

	keep, reason := ShouldKeepRecord(cfg, domain.JobRecord{Title: "Anything At All"})
	assert.True(t, keep)
	assert.Empty(t, reason)
}

func TestShouldKeepRecordKeywordFilter(t *testing.T) {
	cfg := config.Config{}
	cfg.Filters.KeywordsAny = []string{"service desk", "help desk"}

	tests := []struct {
		name string
		rec  domain.JobRecord
		keep bool
	}{
		{"title match", domain.JobRecord{Title: "IT Service Desk Analyst"}, true},
		{"company match", domain.JobRecord{Title: "Analyst", Company: "Help Desk Heroes"}, true},
		{"case insensitive", domain.JobRecord{Title: "SERVICE DESK lead"}, true},
		{"no match", domain.JobRecord{Title: "Backend Engineer", Company: "Acme"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, reason := ShouldKeepRecord(cfg, tt.rec)
			assert.Equal(t, tt.keep, keep)
			if !tt.keep {
				assert.Equal(t, "no_keyword_match", reason)
			}
		})
	}
}

func TestShouldKeepRecordBlankKeywordsIgnored(t *testing.T) {
	cfg := config.Config{}
	cfg.Filters.KeywordsAny = []string{"  ", "desk"}

	keep, _ := ShouldKeepRecord(cfg, domain.JobRecord{Title: "Service Desk"})
	assert.True(t, keep)

	keep, reason := ShouldKeepRecord(cfg, domain.JobRecord{Title: "Engineer"})
	assert.False(t, keep)
	assert.Equal(t, "no_keyword_match", reason)
}
