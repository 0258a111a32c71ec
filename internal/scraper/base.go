// Define the job record shared by every stage
// Define an interface for all scrapers

package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	SourceLinkedIn = "LinkedIn"

	DefaultLocation   = "Unknown Location"
	DefaultDatePosted = "Recent"

	// TimeLayout is how scrapedAt is stored on disk (local time, no zone)
	TimeLayout = "2006-01-02 15:04:05"
)

// Timestamp is a time.Time that marshals as TimeLayout
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	// the on-disk format has second precision
	return Timestamp{Time: t.Local().Truncate(time.Second)}
}

func (t Timestamp) String() string {
	return t.Local().Format(TimeLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

type Job struct {
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	DatePosted string    `json:"datePosted"`
	URL        string    `json:"url"`
	Source     string    `json:"source"`
	ScrapedAt  Timestamp `json:"scrapedAt"`
	EmailSent  bool      `json:"emailSent"`
}

// Key identifies the real-world posting. Exact, case-sensitive comparison.
type Key struct {
	Title    string
	Company  string
	Location string
}

func (j Job) Key() Key {
	return Key{Title: j.Title, Company: j.Company, Location: j.Location}
}

// UnmarshalJSON also accepts the snake_case keys written by older crawler
// versions (date_posted, scraped_date, email_sent).
func (j *Job) UnmarshalJSON(data []byte) error {
	type plain Job
	var aux struct {
		plain
		LegacyDatePosted *string    `json:"date_posted"`
		LegacyScrapedAt  *Timestamp `json:"scraped_date"`
		LegacyEmailSent  *bool      `json:"email_sent"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*j = Job(aux.plain)
	if j.DatePosted == "" && aux.LegacyDatePosted != nil {
		j.DatePosted = *aux.LegacyDatePosted
	}
	if j.ScrapedAt.IsZero() && aux.LegacyScrapedAt != nil {
		j.ScrapedAt = *aux.LegacyScrapedAt
	}
	if aux.LegacyEmailSent != nil && *aux.LegacyEmailSent {
		j.EmailSent = true
	}
	return nil
}

// Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	// Scrape runs one full fetch-extract cycle
	Scrape(ctx context.Context) ([]Job, error)

	// Name is the platform name
	Name() string
}
