package config

import "github.com/Divyaj16/JobCrawler/internal/extract"

// Selector lists are ordered by how reliably they hit on the current public
// job search markup, legacy variants last. First match wins per field.
func DefaultSelectors() extract.Selectors {
	return extract.Selectors{
		Title: []string{
			"h3.base-search-card__title a",
			"h3.base-search-card__title",
			".job-search-card__title a",
			".job-search-card__title",
			`h3 a[data-tracking-control-name="public_jobs_jserp-result_search-card"]`,
			".base-card__full-link",
			`a[data-tracking-control-name="public_jobs_jserp-result_search-card"]`,
			".job-search-card .job-search-card__title",
			"h4.job-search-card__title",
			"h3.job-search-card__title",
			"a.job-search-card__title-link",
		},
		Company: []string{
			"h4.base-search-card__subtitle",
			".job-search-card__subtitle-link",
			".base-search-card__subtitle a",
			`h4 a[data-tracking-control-name="public_jobs_jserp-result_job-search-card-subtitle"]`,
			".job-search-card__subtitle",
			"h4.job-search-card__subtitle",
			".base-search-card__subtitle",
			`a[data-tracking-control-name="public_jobs_jserp-result_job-search-card-subtitle"]`,
			".job-search-card .job-search-card__subtitle",
		},
		Location: []string{
			"span.job-search-card__location",
			".base-search-card__metadata span",
			".job-search-card__location",
			`span[data-tracking-control-name="public_jobs_jserp-result_job-search-card-location"]`,
		},
		URL: []string{
			"a.base-card__full-link",
			".base-search-card__title a",
			"h3 a",
			`a[data-tracking-control-name="public_jobs_jserp-result_search-card"]`,
			`a[href*="/jobs/view/"]`,
			".job-search-card__title a",
			"a.job-search-card__title-link",
			`.job-search-card a[href*="/jobs/view/"]`,
			`a[data-entity-urn*="jobPosting"]`,
		},
		Date: []string{
			"time.job-search-card__listdate",
			"time",
			".job-search-card__listdate--new",
			`span[data-tracking-control-name="public_jobs_jserp-result_job-search-card-date"]`,
		},
		Cards: []string{
			"div.base-card",
			".job-search-card",
			".base-search-card",
			"li[data-occludable-job-id]",
			".jobs-search__results-list li",
			`div[data-entity-urn*="jobPosting"]`,
			".jobs-search-results__list-item",
			"div.job-search-card",
			"li.jobs-search-results__list-item",
		},
	}
}
