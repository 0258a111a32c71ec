// Reject cards missing mandatory data
// Reject masked (obfuscated) cards
// Apply keyword exclusion
// Fill defaults and build the Job

package filter

import (
	"strings"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/extract"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaskChar is what LinkedIn substitutes for hidden titles/companies
const DefaultMaskChar = "*"

type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissing
	ReasonMasked
	ReasonExcluded
	ReasonNoURL
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "valid"
	case ReasonMissing:
		return "missing data"
	case ReasonMasked:
		return "masked data"
	case ReasonExcluded:
		return "excluded keyword"
	case ReasonNoURL:
		return "no url"
	default:
		return "unknown"
	}
}

// Policy is the static filtering configuration
type Policy struct {
	// RequiredKeywords is informational only: the search URL already filters
	// by keyword, so relevance never requires a hit.
	RequiredKeywords []string
	ExcludedKeywords []string
	MaskChar         string
}

// Validate turns extracted fields into a Job, or reports why the card was
// dropped. It never fails: every rejection is a Reason.
func Validate(fields extract.Fields, policy Policy, now time.Time) (scraper.Job, Reason) {
	title, hasTitle := fields.Get(extract.FieldTitle)
	company, hasCompany := fields.Get(extract.FieldCompany)
	if !hasTitle || !hasCompany || title == "" || company == "" {
		return scraper.Job{}, ReasonMissing
	}

	if isMasked(title, policy.MaskChar) || isMasked(company, policy.MaskChar) {
		return scraper.Job{}, ReasonMasked
	}

	if !IsRelevant(title, policy) {
		return scraper.Job{}, ReasonExcluded
	}

	job := scraper.Job{
		Title:      title,
		Company:    company,
		Location:   scraper.DefaultLocation,
		DatePosted: scraper.DefaultDatePosted,
		URL:        fields[extract.FieldURL],
		Source:     scraper.SourceLinkedIn,
		ScrapedAt:  scraper.NewTimestamp(now),
	}
	if location, ok := fields.Get(extract.FieldLocation); ok && location != "" {
		job.Location = location
	}
	if date, ok := fields.Get(extract.FieldDatePosted); ok && date != "" {
		job.DatePosted = date
	}

	// a listing without a link is not actionable
	if job.URL == "" {
		return scraper.Job{}, ReasonNoURL
	}
	return job, ReasonNone
}

// IsRelevant reports whether title passes the keyword policy. Excluded
// keywords match as case-insensitive substrings.
func IsRelevant(title string, policy Policy) bool {
	// plain lowercasing: "strasse" must not match "Straße"
	lower := cases.Lower(language.Und)
	folded := lower.String(title)
	for _, kw := range policy.ExcludedKeywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(folded, lower.String(kw)) {
			return false
		}
	}
	return true
}

func isMasked(s, maskChar string) bool {
	if maskChar == "" {
		maskChar = DefaultMaskChar
	}
	return strings.Contains(s, maskChar)
}
