// Package naukri scrapes Naukri.com keyword listing pages.
package naukri

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"deskscan-engine/internal/domain"
	"deskscan-engine/internal/scrape/types"
	"deskscan-engine/internal/scrape/util"
)

var searchKeywords = []string{"it service desk"}

const maxPages = 3

type Config struct {
	Location string
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

func (s *Scraper) Name() string { return "naukri" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: "Naukri.com"}

	for _, kw := range searchKeywords {
		slug := strings.ReplaceAll(strings.ToLower(kw), " ", "-")
		for page := 1; page <= maxPages; page++ {
			listURL := fmt.Sprintf("https://www.naukri.com/%s-jobs-in-%s-%d",
				slug, strings.ToLower(s.cfg.Location), page)

			doc, err := s.get(ctx, listURL)
			if err != nil {
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				continue
			}

			res.Records = append(res.Records, parseListPage(doc, s.cfg.Location)...)
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
		return nil, fmt.Errorf("naukri get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naukri status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func parseListPage(doc *goquery.Document, location string) []domain.JobRecord {
	now := time.Now()
	var out []domain.JobRecord

	tuples := doc.Find("article.jobTuple")
	if tuples.Length() == 0 {
		tuples = doc.Find("div.jobTuple")
	}

	tuples.Each(func(_ int, card *goquery.Selection) {
		titleEl := card.Find("a.title").First()
		title := util.CleanText(titleEl.Text())
		if title == "" {
			title = util.CleanText(card.Find("div.title").First().Text())
		}
		if title == "" {
			return
		}

		jobURL, _ := titleEl.Attr("href")
		if strings.HasPrefix(jobURL, "/") {
			jobURL = "https://www.naukri.com" + jobURL
		}

		company := util.CleanText(card.Find("a.subTitle").First().Text())
		if company == "" {
			company = util.CleanText(card.Find("div.companyInfo").First().Text())
		}
		if company == "" {
			company = "N/A"
		}

		loc := textOr(card, "li.location", "span.location", location)
		exp := textOr(card, "li.experience", "span.experience", "Not specified")
		salary := textOr(card, "li.salary", "span.salary", "Not disclosed")

		posted := util.CleanText(card.Find("span.jobTupleFooter").First().Text())
		if posted == "" {
			posted = now.Format("2006-01-02")
		}

		out = append(out, domain.JobRecord{
			Title:      title,
			Company:    company,
			Location:   loc,
			WorkMode:   util.InferWorkMode(loc, title),
			Experience: exp,
			Salary:     salary,
			Source:     "Naukri.com",
			URL:        jobURL,
			DatePosted: posted,
			ScrapedAt:  now.Format("2006-01-02 15:04:05"),
		})
	})

	return out
}

func textOr(card *goquery.Selection, primary, fallback, def string) string {
	if t := util.CleanText(card.Find(primary).First().Text()); t != "" {
		return t
	}
	if t := util.CleanText(card.Find(fallback).First().Text()); t != "" {
		return t
	}
	return def
}
