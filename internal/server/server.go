package server

import (
	"net/http"

	"github.com/Divyaj16/JobCrawler/internal/dedup"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
	"github.com/gin-gonic/gin"
)

// NewRouter exposes the job store read-only over HTTP
func NewRouter(store *dedup.Store) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "JobCrawler API is running!",
			"status":  "healthy",
		})
	})

	r.GET("/jobs", func(c *gin.Context) {
		jobs := store.Load()
		c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
	})

	//jobs the notifier has not delivered yet
	r.GET("/jobs/new", func(c *gin.Context) {
		pending := []scraper.Job{}
		for _, job := range store.Load() {
			if !job.EmailSent {
				pending = append(pending, job)
			}
		}
		c.JSON(http.StatusOK, gin.H{"count": len(pending), "jobs": pending})
	})

	return r
}
