package scrape

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"deskscan-engine/internal/config"
	"deskscan-engine/internal/dedup"
	"deskscan-engine/internal/domain"
	"deskscan-engine/internal/metrics"
	"deskscan-engine/internal/scrape/googlejobs"
	"deskscan-engine/internal/scrape/linkedin"
	"deskscan-engine/internal/scrape/naukri"
	"deskscan-engine/internal/scrape/types"
	"deskscan-engine/internal/scrape/util"
	"deskscan-engine/internal/session"
)

// requestsPerSecond is the polite pace against any single site: one page
// every two seconds.
const requestsPerSecond = 0.5

const fetchTimeout = 5 * time.Minute

// Progress is called once per source with the filtered batch size, before
// the merge runs.
type Progress func(source string, found int)

// RunCycle executes one full scraping cycle: fetch every enabled source
// concurrently, filter out records the core must not see, then merge the
// batches into sess in the configured source order. Fetching is best-effort
// (a dead site contributes an empty batch); the merge order is what keeps
// the resulting set deterministic for identical scraper output.
func RunCycle(ctx context.Context, cfg config.Config, sess *session.Session, progress Progress) (dedup.MergeStats, error) {
	start := time.Now()
	limiter := util.NewHostLimiter(requestsPerSecond, 1)

	fetchers := buildFetchers(cfg, limiter)

	// Indexed results: completion order must not leak into merge order.
	results := make([]types.ScrapeResult, len(fetchers))

	var g errgroup.Group
	for i, f := range fetchers {
		i, f := i, f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			log.Printf("[%s] scraping...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[%s] error: %v", f.Name(), err)
				metrics.ScrapeErrors.WithLabelValues(f.Name()).Inc()
				return nil // never cancel sibling sources
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var batches []dedup.SourceBatch
	for _, res := range results {
		if res.Source == "" {
			continue // fetch failed; nothing to merge
		}

		kept := make([]domain.JobRecord, 0, len(res.Records))
		for _, rec := range res.Records {
			ok, why := ShouldKeepRecord(cfg, rec)
			if !ok {
				log.Printf("[%s] skipped (%s) title=%q company=%q", res.Source, why, rec.Title, rec.Company)
				continue
			}
			kept = append(kept, rec)
		}

		metrics.JobsScraped.WithLabelValues(res.Source).Add(float64(len(kept)))
		if progress != nil {
			progress(res.Source, len(kept))
		}
		batches = append(batches, dedup.SourceBatch{Source: res.Source, Records: kept})
	}

	stats, err := sess.Cycle(batches, cfg.Dedup.Threshold)
	if err != nil {
		return stats, err
	}

	for _, ps := range stats.PerSource {
		metrics.DuplicatesRemoved.WithLabelValues("per_source").Add(float64(ps.Removed))
	}
	metrics.DuplicatesRemoved.WithLabelValues("cross_source").Add(float64(stats.CrossSourceRemoved))
	metrics.DuplicatesRemoved.WithLabelValues("final_merge").Add(float64(stats.FinalRemoved))
	metrics.AcceptedJobs.Set(float64(sess.Size()))
	metrics.CycleDuration.Observe(time.Since(start).Seconds())

	log.Printf("[scrape] cycle done new=%d removed=%d set=%d dur=%.1fs",
		stats.TrulyNew, stats.TotalRemoved, sess.Size(), time.Since(start).Seconds())

	return stats, nil
}

// buildFetchers instantiates enabled sources in config order; that order is
// the fixed source-processing order of the merge.
func buildFetchers(cfg config.Config, limiter *util.HostLimiter) []types.Fetcher {
	var fetchers []types.Fetcher
	for _, src := range cfg.Sources {
		if !src.Enabled {
			continue
		}
		switch src.Name {
		case "linkedin":
			fetchers = append(fetchers, linkedin.New(linkedin.Config{
				Location:  cfg.Scrape.Location,
				WorkModes: cfg.Scrape.WorkModes,
			}, limiter))
		case "naukri":
			fetchers = append(fetchers, naukri.New(naukri.Config{
				Location: cfg.Scrape.Location,
			}, limiter))
		case "googlejobs":
			fetchers = append(fetchers, googlejobs.New(googlejobs.Config{
				Location:  cfg.Scrape.Location,
				WorkModes: cfg.Scrape.WorkModes,
			}, limiter))
		}
	}
	return fetchers
}
