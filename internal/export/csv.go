// Package export renders the accepted set for download.
package export

import (
	"encoding/csv"
	"io"

	"deskscan-engine/internal/domain"
)

var csvHeader = []string{
	"title", "company", "location", "work_mode", "experience",
	"salary", "source", "url", "date_posted", "scraped_at",
}

// WriteCSV writes records as CSV in slice order, header first.
func WriteCSV(w io.Writer, records []domain.JobRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Title, r.Company, r.Location, r.WorkMode, r.Experience,
			r.Salary, r.Source, r.URL, r.DatePosted, r.ScrapedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
