package linkedin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/browser"
	"github.com/Divyaj16/JobCrawler/internal/config"
	"github.com/Divyaj16/JobCrawler/internal/extract"
	"github.com/Divyaj16/JobCrawler/internal/filter"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
	"github.com/PuerkitoBio/goquery"
)

var ErrNoCards = errors.New("no job cards found with any selector")

// Backoff is the pause between attempts, multiplied by the attempt number
type Backoff struct {
	EmptyMin, EmptyMax time.Duration
	ErrorMin, ErrorMax time.Duration
}

func DefaultBackoff() Backoff {
	return Backoff{
		EmptyMin: 5 * time.Second,
		EmptyMax: 10 * time.Second,
		ErrorMin: 10 * time.Second,
		ErrorMax: 15 * time.Second,
	}
}

type LinkedInScraper struct {
	cfg      *config.Config
	renderer browser.Renderer
	rules    extract.Rules
	policy   filter.Policy

	// extractFn reads one card, extract.Extract unless a test swaps it
	extractFn func(*goquery.Selection, extract.Rules) extract.Fields

	Clock   func() time.Time
	Backoff Backoff

	stats filter.Stats
}

func NewLinkedInScraper(cfg *config.Config, renderer browser.Renderer) *LinkedInScraper {
	return &LinkedInScraper{
		cfg:       cfg,
		renderer:  renderer,
		rules:     extract.NewRules(cfg.Selectors, cfg.JobURL),
		policy:    cfg.Policy(),
		extractFn: extract.Extract,
		Clock:     time.Now,
		Backoff:   DefaultBackoff(),
	}
}

func (s *LinkedInScraper) Name() string {
	return scraper.SourceLinkedIn
}

// Stats returns the counters of the last attempt
func (s *LinkedInScraper) Stats() filter.Stats {
	return s.stats
}

// Scrape retries the whole fetch-extract cycle until one attempt yields at
// least one valid job. Running out of attempts is not an error: the result
// is simply empty. Only cancellation of ctx is returned.
func (s *LinkedInScraper) Scrape(ctx context.Context) ([]scraper.Job, error) {
	maxRetries := s.cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		html, err := s.renderer.Render(ctx, s.cfg.JobURL)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			log.Printf("❌ Error scraping LinkedIn (attempt %d/%d): %v", attempt, maxRetries, err)
			// restart the browser on the next attempt
			if closeErr := s.renderer.Close(); closeErr != nil {
				log.Printf("⚠️ Failed to close browser: %v", closeErr)
			}
			if err := s.pause(ctx, attempt, maxRetries, s.Backoff.ErrorMin, s.Backoff.ErrorMax); err != nil {
				return nil, err
			}
			continue
		}

		jobs, err := s.ExtractJobs(html)
		s.stats.Log()
		if err != nil {
			log.Printf("⚠️ %v (attempt %d/%d)", err, attempt, maxRetries)
		} else if len(jobs) > 0 {
			return jobs, nil
		} else {
			log.Printf("⚠️ No valid jobs found (attempt %d/%d)", attempt, maxRetries)
		}

		if err := s.pause(ctx, attempt, maxRetries, s.Backoff.EmptyMin, s.Backoff.EmptyMax); err != nil {
			return nil, err
		}
	}

	log.Printf("❌ Giving up after %d attempts", maxRetries)
	return []scraper.Job{}, nil
}

func (s *LinkedInScraper) pause(ctx context.Context, attempt, maxRetries int, min, max time.Duration) error {
	if attempt >= maxRetries {
		return nil
	}
	log.Printf("🔁 Retry %d/%d...", attempt, maxRetries)
	scale := time.Duration(attempt)
	return browser.RandomDelay(ctx, min*scale, max*scale)
}

// ExtractJobs parses rendered HTML and returns the valid jobs in page order.
// A card that fails to extract is logged and skipped.
func (s *LinkedInScraper) ExtractJobs(html string) ([]scraper.Job, error) {
	s.stats = filter.Stats{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	cards := extract.Cards(doc.Selection, s.cfg.Selectors.Cards, s.rules.BaseURL)
	log.Printf("📄 Total unique job cards after deduplication: %d", len(cards))
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	s.stats.Cards = len(cards)
	now := s.Clock()
	jobs := make([]scraper.Job, 0, len(cards))
	for i, card := range cards {
		job, reason, err := s.processCard(card, now)
		if err != nil {
			log.Printf("⚠️ Error extracting job data from card %d: %v", i, err)
			s.stats.Failed++
			continue
		}
		s.stats.Record(reason)
		if reason != filter.ReasonNone {
			continue
		}

		jobs = append(jobs, job)
		if len(jobs) <= 5 {
			log.Printf("      ✅ Found valid job %d: %s at %s", len(jobs), job.Title, job.Company)
		}
	}
	return jobs, nil
}

func (s *LinkedInScraper) processCard(card *goquery.Selection, now time.Time) (job scraper.Job, reason filter.Reason, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected card structure: %v", r)
		}
	}()

	fields := s.extractFn(card, s.rules)
	job, reason = filter.Validate(fields, s.policy, now)
	switch reason {
	case filter.ReasonMasked:
		log.Printf("      🙈 Skipping masked job data: %s at %s", fields[extract.FieldTitle], fields[extract.FieldCompany])
	case filter.ReasonExcluded:
		log.Printf("      🚫 Skipped excluded keyword: %s", fields[extract.FieldTitle])
	}
	return job, reason, nil
}
