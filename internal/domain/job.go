package domain

// JobRecord is one scraped job posting. Records are immutable once built:
// deduplication only picks which representative survives, it never rewrites
// a record's fields.
//
// URL is optional. A URL containing "search" (case-insensitive) is a generic
// search-results link and carries no per-posting identity.
type JobRecord struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	WorkMode   string `json:"work_mode"` // Remote | Hybrid | Remote/Hybrid | On-site
	Experience string `json:"experience"`
	Salary     string `json:"salary"`
	Source     string `json:"source"`
	URL        string `json:"url,omitempty"`
	DatePosted string `json:"date_posted"`
	ScrapedAt  string `json:"scraped_at"`
}
