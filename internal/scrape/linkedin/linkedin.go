// Package linkedin scrapes the public LinkedIn job search pages, no login.
package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"deskscan-engine/internal/domain"
	"deskscan-engine/internal/scrape/types"
	"deskscan-engine/internal/scrape/util"
)

var searchKeywords = []string{
	"IT service desk",
	"help desk",
	"service desk analyst",
	"desktop support",
	"L1 support",
}

// LinkedIn's f_WT filter values.
var workTypeParams = map[string]string{
	"remote": "2",
	"hybrid": "3",
}

var pageOffsets = []int{0, 25, 50}

type Config struct {
	Location  string
	WorkModes []string // remote, hybrid
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

func (s *Scraper) Name() string { return "linkedin" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: "LinkedIn"}

	for _, kw := range searchKeywords {
		for _, mode := range s.cfg.WorkModes {
			wt, ok := workTypeParams[mode]
			if !ok {
				continue
			}
			for _, start := range pageOffsets {
				searchURL := fmt.Sprintf(
					"https://www.linkedin.com/jobs/search?keywords=%s&location=%s&f_WT=%s&start=%d",
					url.QueryEscape(kw), url.QueryEscape(s.cfg.Location), wt, start,
				)

				doc, err := s.get(ctx, searchURL)
				if err != nil {
					if ctx.Err() != nil {
						return res, ctx.Err()
					}
					// one page down is not the whole source down
					continue
				}

				workMode := "Remote"
				if wt == "3" {
					workMode = "Hybrid"
				}
				res.Records = append(res.Records, parseSearchPage(doc, s.cfg.Location, workMode, searchURL)...)
			}
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
		return nil, fmt.Errorf("linkedin get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// parseSearchPage pulls job cards out of one result page. fallbackURL is
// recorded when a card has no link of its own; being a search URL it never
// becomes an identity signal downstream.
func parseSearchPage(doc *goquery.Document, location, workMode, fallbackURL string) []domain.JobRecord {
	now := time.Now()
	var out []domain.JobRecord

	cards := doc.Find("div.base-card")
	if cards.Length() == 0 {
		cards = doc.Find("div.job-search-card")
	}
	if cards.Length() == 0 {
		cards = doc.Find("li.jobs-search-results__list-item")
	}

	cards.Each(func(_ int, card *goquery.Selection) {
		title := util.CleanText(card.Find("h3.base-search-card__title").First().Text())
		if title == "" {
			title = util.CleanText(card.Find("h3").First().Text())
		}
		if title == "" {
			return // producer guarantee: no record without a title
		}

		company := util.CleanText(card.Find("h4.base-search-card__subtitle").First().Text())
		if company == "" {
			company = util.CleanText(card.Find("h4").First().Text())
		}
		if company == "" {
			company = "N/A"
		}

		loc := util.CleanText(card.Find("span.job-search-card__location").First().Text())
		if loc == "" {
			loc = location
		}

		jobURL := fallbackURL
		if href, ok := card.Find("a.base-card__full-link").First().Attr("href"); ok && href != "" {
			jobURL = href
		}

		posted := now.Format("2006-01-02")
		if dt, ok := card.Find("time").First().Attr("datetime"); ok && dt != "" {
			posted = dt
		}

		out = append(out, domain.JobRecord{
			Title:      title,
			Company:    company,
			Location:   loc,
			WorkMode:   workMode,
			Experience: "See posting",
			Salary:     "Not disclosed",
			Source:     "LinkedIn",
			URL:        jobURL,
			DatePosted: posted,
			ScrapedAt:  now.Format("2006-01-02 15:04:05"),
		})
	})

	return out
}
