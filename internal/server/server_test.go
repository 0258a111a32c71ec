package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/dedup"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobsResponse struct {
	Count int           `json:"count"`
	Jobs  []scraper.Job `json:"jobs"`
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := dedup.NewStore(filepath.Join(t.TempDir(), "database.json"))
	at := scraper.NewTimestamp(time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local))
	require.NoError(t, store.Save([]scraper.Job{
		{Title: "A", Company: "Acme", Location: "Remote", URL: "u1", Source: scraper.SourceLinkedIn, ScrapedAt: at, EmailSent: true},
		{Title: "B", Company: "Beta", Location: "Remote", URL: "u2", Source: scraper.SourceLinkedIn, ScrapedAt: at},
	}))
	r := NewRouter(store)

	tests := []struct {
		path      string
		wantCount int
		wantFirst string
	}{
		{"/jobs", 2, "A"},
		{"/jobs/new", 1, "B"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			var body jobsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCount, body.Count)
			require.Len(t, body.Jobs, tt.wantCount)
			assert.Equal(t, tt.wantFirst, body.Jobs[0].Title)
		})
	}
}

func TestRouter_EmptyStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(dedup.NewStore(filepath.Join(t.TempDir(), "database.json")))

	for _, path := range []string{"/", "/jobs", "/jobs/new"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/new", nil))
	assert.JSONEq(t, `{"count":0,"jobs":[]}`, w.Body.String())
}
