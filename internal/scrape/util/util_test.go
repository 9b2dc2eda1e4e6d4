package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "IT Support", CleanText("  IT \t Support \n"))
	assert.Equal(t, "a b", CleanText("a\u00a0b")) // nbsp from scraped HTML
	assert.Equal(t, "", CleanText("   "))
}

func TestInferWorkMode(t *testing.T) {
	tests := []struct {
		location, title, want string
	}{
		{"Remote", "IT Support", "Remote"},
		{"Mumbai (Hybrid)", "IT Support", "Hybrid"},
		{"Remote", "Hybrid Support Role", "Remote/Hybrid"},
		{"Bengaluru", "On-site Support", "On-site"},
		{"Bengaluru", "IT Support", "Remote/Hybrid"}, // nothing stated
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferWorkMode(tt.location, tt.title), "%s / %s", tt.location, tt.title)
	}
}
