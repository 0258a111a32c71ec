// Package crawler ties one scrape to the job store: scrape, reconcile
// against the stored window, persist.
package crawler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/dedup"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
)

type Crawler struct {
	scraper   scraper.Scraper
	store     *dedup.Store
	retention time.Duration
	clock     func() time.Time
}

func New(s scraper.Scraper, store *dedup.Store, retention time.Duration) *Crawler {
	if retention <= 0 {
		retention = dedup.DefaultRetention
	}
	return &Crawler{
		scraper:   s,
		store:     store,
		retention: retention,
		clock:     time.Now,
	}
}

// WithClock overrides the reconciliation clock
func (c *Crawler) WithClock(clock func() time.Time) *Crawler {
	c.clock = clock
	return c
}

// RunOnce scrapes, reconciles and saves. When saving fails the reconciled
// result is still returned alongside the error so the caller can report it.
func (c *Crawler) RunOnce(ctx context.Context) (dedup.Result, error) {
	log.Printf("🚀 Starting %s job scraping at %s", c.scraper.Name(), c.clock().Format(scraper.TimeLayout))

	current, err := c.scraper.Scrape(ctx)
	if err != nil {
		return dedup.Result{}, fmt.Errorf("scrape %s: %w", c.scraper.Name(), err)
	}
	log.Printf("📦 Found %d total job listings", len(current))

	var res dedup.Result
	saveErr := c.store.Update(ctx, func(previous []scraper.Job) []scraper.Job {
		res = dedup.Reconcile(current, previous, c.clock(), c.retention)
		log.Printf("🔍 Deduplication: %d current -> %d new, %d/%d previous kept",
			len(current), len(res.New), len(res.Kept), len(previous))
		return res.All
	})
	if saveErr != nil {
		if res.All == nil {
			// the lock was never acquired, still report what would be new
			res = dedup.Reconcile(current, c.store.Load(), c.clock(), c.retention)
		}
		return res, fmt.Errorf("failed to persist jobs: %w", saveErr)
	}

	log.Printf("✨ Identified %d new job postings", len(res.New))
	return res, nil
}
