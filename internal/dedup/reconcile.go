package dedup

import (
	"time"

	"github.com/Divyaj16/JobCrawler/internal/scraper"
	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultRetention is how long previously stored jobs survive across runs
const DefaultRetention = time.Hour

type Result struct {
	// New are current jobs whose identity key was not seen before
	New []scraper.Job
	// Kept are previous jobs still inside the retention window
	Kept []scraper.Job
	// All is what gets persisted: Kept followed by New
	All []scraper.Job
}

// Reconcile merges this run's jobs into the previous set.
//
// A current job is new when its (title, company, location) key matches
// neither a previous job nor an earlier job of the same batch. Previous jobs
// older than now-window are dropped. The union is not deduplicated again, so
// a kept job and a new job may share a key if they were scraped in different
// runs inside the window.
func Reconcile(current, previous []scraper.Job, now time.Time, window time.Duration) Result {
	seen := mapset.NewThreadUnsafeSetWithSize[scraper.Key](len(previous) + len(current))
	for _, prev := range previous {
		seen.Add(prev.Key())
	}

	res := Result{
		New:  []scraper.Job{},
		Kept: []scraper.Job{},
	}
	for _, job := range current {
		// Add reports false when the key is already present
		if !seen.Add(job.Key()) {
			continue
		}
		job.EmailSent = false
		res.New = append(res.New, job)
	}

	cutoff := now.Add(-window)
	for _, prev := range previous {
		if !prev.ScrapedAt.Before(cutoff) {
			res.Kept = append(res.Kept, prev)
		}
	}

	res.All = make([]scraper.Job, 0, len(res.Kept)+len(res.New))
	res.All = append(res.All, res.Kept...)
	res.All = append(res.All, res.New...)
	return res
}
