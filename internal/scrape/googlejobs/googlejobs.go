// Package googlejobs scrapes the Google Jobs panel embedded in search
// results. The result URL is the search query itself, so these records never
// carry a per-posting identity URL.
package googlejobs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"deskscan-engine/internal/domain"
	"deskscan-engine/internal/scrape/types"
	"deskscan-engine/internal/scrape/util"
)

var searchKeywords = []string{
	"IT service desk",
	"help desk",
	"technical support",
	"IT support engineer",
	"service desk analyst",
	"desktop support engineer",
}

// cardsPerSearch caps how many cards one query contributes; the panel
// repeats results heavily past the first few.
const cardsPerSearch = 10

type Config struct {
	Location  string
	WorkModes []string
}

type Scraper struct {
	cfg Config
	hc  *http.Client
	lim *util.HostLimiter
}

func New(cfg Config, lim *util.HostLimiter) *Scraper {
	return &Scraper{
		cfg: cfg,
		hc:  &http.Client{Timeout: 20 * time.Second},
		lim: lim,
	}
}

func (s *Scraper) Name() string { return "googlejobs" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: "Google Jobs"}

	for _, kw := range searchKeywords {
		for _, mode := range s.cfg.WorkModes {
			query := fmt.Sprintf("%s %s %s", kw, mode, s.cfg.Location)
			searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query) + "&ibp=htl;jobs"

			doc, err := s.get(ctx, searchURL)
			if err != nil {
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				continue
			}

			res.Records = append(res.Records, parseJobsPanel(doc, s.cfg.Location, capitalize(mode), searchURL)...)
		}
	}

	return res, nil
}

func (s *Scraper) get(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := s.lim.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	util.SetBrowserHeaders(req)

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googlejobs get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googlejobs status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func parseJobsPanel(doc *goquery.Document, location, workMode, searchURL string) []domain.JobRecord {
	now := time.Now()
	var out []domain.JobRecord

	cards := doc.Find("div.PwjeAc")
	if cards.Length() == 0 {
		cards = doc.Find("li.iFjolb")
	}

	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= cardsPerSearch {
			return false
		}

		title := util.CleanText(card.Find("div.BjJfJf").First().Text())
		if title == "" {
			return true
		}

		company := util.CleanText(card.Find("div.vNEEBe").First().Text())
		if company == "" {
			company = "N/A"
		}

		loc := util.CleanText(card.Find("div.Qk80Jf").First().Text())
		if loc == "" {
			loc = location
		}

		out = append(out, domain.JobRecord{
			Title:      title,
			Company:    company,
			Location:   loc,
			WorkMode:   workMode,
			Experience: "See posting",
			Salary:     "Not disclosed",
			Source:     "Google Jobs",
			URL:        searchURL,
			DatePosted: now.Format("2006-01-02"),
			ScrapedAt:  now.Format("2006-01-02 15:04:05"),
		})
		return true
	})

	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
