package linkedin

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/config"
	"github.com/Divyaj16/JobCrawler/internal/extract"
	"github.com/Divyaj16/JobCrawler/internal/filter"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	html string
	err  error
}

// stubRenderer replays responses in order, repeating the last one
type stubRenderer struct {
	responses []response
	renders   int
	closes    int
}

func (r *stubRenderer) Render(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := r.renders
	if i >= len(r.responses) {
		i = len(r.responses) - 1
	}
	r.renders++
	return r.responses[i].html, r.responses[i].err
}

func (r *stubRenderer) Close() error {
	r.closes++
	return nil
}

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)

func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/search.html")
	require.NoError(t, err)
	return string(data)
}

func newTestScraper(t *testing.T, r *stubRenderer) *LinkedInScraper {
	t.Helper()
	cfg := config.Default(t.TempDir())
	s := NewLinkedInScraper(cfg, r)
	s.Clock = func() time.Time { return fixedNow }
	s.Backoff = Backoff{}
	return s
}

func TestExtractJobs(t *testing.T) {
	s := newTestScraper(t, &stubRenderer{})

	jobs, err := s.ExtractJobs(fixture(t))

	require.NoError(t, err)
	assert.Equal(t, filter.Stats{Cards: 5, Valid: 2, Masked: 1, Missing: 1, NoURL: 1}, s.Stats())
	assert.Equal(t, []scraper.Job{
		{
			Title:      "Data Engineer",
			Company:    "Acme Corp",
			Location:   "Austin, TX",
			DatePosted: "2 days ago",
			URL:        "https://www.linkedin.com/jobs/view/data-engineer-at-acme-3811111111",
			Source:     scraper.SourceLinkedIn,
			ScrapedAt:  scraper.NewTimestamp(fixedNow),
		},
		{
			Title:      "Python Developer",
			Company:    "Globex",
			Location:   scraper.DefaultLocation,
			DatePosted: scraper.DefaultDatePosted,
			URL:        "https://www.linkedin.com/jobs/view/python-developer-at-globex-3822222222",
			Source:     scraper.SourceLinkedIn,
			ScrapedAt:  scraper.NewTimestamp(fixedNow),
		},
	}, jobs)
}

func TestExtractJobs_NoCards(t *testing.T) {
	s := newTestScraper(t, &stubRenderer{})

	jobs, err := s.ExtractJobs(`<html><body><h1>Sign in to continue</h1></body></html>`)

	assert.ErrorIs(t, err, ErrNoCards)
	assert.Empty(t, jobs)
}

func TestExtractJobs_ExcludedKeyword(t *testing.T) {
	s := newTestScraper(t, &stubRenderer{})
	s.policy.ExcludedKeywords = []string{"python"}

	jobs, err := s.ExtractJobs(fixture(t))

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 1, s.Stats().Excluded)
}

func TestScrape_Retries(t *testing.T) {
	empty := `<html><body><div class="base-card"><h3 class="base-search-card__title">*** ***</h3><h4 class="base-search-card__subtitle">x</h4></div></body></html>`

	tests := []struct {
		name        string
		responses   []response
		wantJobs    int
		wantRenders int
		wantCloses  int
	}{
		{
			name:        "first attempt succeeds",
			responses:   []response{{html: fixture(t)}},
			wantJobs:    2,
			wantRenders: 1,
		},
		{
			name: "error then empty then success",
			responses: []response{
				{err: errors.New("net::ERR_TIMED_OUT")},
				{html: empty},
				{html: fixture(t)},
			},
			wantJobs:    2,
			wantRenders: 3,
			wantCloses:  1,
		},
		{
			name:        "gives up after max retries",
			responses:   []response{{html: `<html><body>blocked</body></html>`}},
			wantJobs:    0,
			wantRenders: 3,
		},
		{
			name:        "every attempt errors",
			responses:   []response{{err: errors.New("browser crashed")}},
			wantJobs:    0,
			wantRenders: 3,
			wantCloses:  3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRenderer{responses: tt.responses}
			s := newTestScraper(t, r)

			jobs, err := s.Scrape(context.Background())

			require.NoError(t, err)
			assert.NotNil(t, jobs)
			assert.Len(t, jobs, tt.wantJobs)
			assert.Equal(t, tt.wantRenders, r.renders)
			assert.Equal(t, tt.wantCloses, r.closes)
		})
	}
}

func TestScrape_Canceled(t *testing.T) {
	r := &stubRenderer{responses: []response{{html: fixture(t)}}}
	s := newTestScraper(t, r)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs, err := s.Scrape(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, jobs)
}

func TestScrape_CanceledDuringBackoff(t *testing.T) {
	r := &stubRenderer{responses: []response{{html: `<html><body></body></html>`}}}
	s := newTestScraper(t, r)
	s.Backoff = Backoff{EmptyMin: time.Hour, EmptyMax: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := s.Scrape(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, r.renders)
}

func TestName(t *testing.T) {
	assert.Equal(t, "LinkedIn", newTestScraper(t, &stubRenderer{}).Name())
}

func TestExtractJobs_CardPanicIsIsolated(t *testing.T) {
	s := newTestScraper(t, &stubRenderer{})
	s.extractFn = func(card *goquery.Selection, rules extract.Rules) extract.Fields {
		if strings.Contains(card.Text(), "Python Developer") {
			panic("unexpected markup")
		}
		return extract.Extract(card, rules)
	}

	jobs, err := s.ExtractJobs(fixture(t))

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Data Engineer", jobs[0].Title)
	assert.Equal(t, filter.Stats{Cards: 5, Valid: 1, Masked: 1, Missing: 1, NoURL: 1, Failed: 1}, s.Stats())
}
