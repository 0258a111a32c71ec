package dedup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/scraper"
	"github.com/gofrs/flock"
)

// Store is the flat-file job database: a pretty-printed JSON array replaced
// in full on every save.
type Store struct {
	filePath string
	lock     *flock.Flock
}

func NewStore(filePath string) *Store {
	return &Store{
		filePath: filePath,
		lock:     flock.New(filePath + ".lock"),
	}
}

func (s *Store) Path() string {
	return s.filePath
}

// Load reads the stored jobs. A missing or unreadable file means no history,
// never an error.
func (s *Store) Load() []scraper.Job {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ Failed to read %s: %v", s.filePath, err)
		}
		return []scraper.Job{}
	}

	var jobs []scraper.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		log.Printf("⚠️ Failed to parse %s, starting without history: %v", s.filePath, err)
		return []scraper.Job{}
	}
	if jobs == nil {
		jobs = []scraper.Job{}
	}
	log.Printf("📋 Loaded %d previously stored jobs", len(jobs))
	return jobs
}

// Save replaces the store with jobs. The file is written next to the target
// and renamed over it, so a failed write leaves the old store intact.
func (s *Store) Save(jobs []scraper.Job) error {
	if jobs == nil {
		jobs = []scraper.Job{}
	}
	data, err := json.MarshalIndent(jobs, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal jobs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.filePath, err)
	}
	log.Printf("💾 Saved %d jobs to %s", len(jobs), s.filePath)
	return nil
}

// Update runs load -> fn -> save while holding the store's lock file, so the
// crawler and the notifier never interleave their writes.
func (s *Store) Update(ctx context.Context, fn func(jobs []scraper.Job) []scraper.Job) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	locked, err := s.lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to lock store: %w", err)
	}
	if !locked {
		return fmt.Errorf("store %s is locked by another process", s.filePath)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			log.Printf("⚠️ Failed to unlock store: %v", err)
		}
	}()

	return s.Save(fn(s.Load()))
}
