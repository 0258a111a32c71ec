package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Divyaj16/JobCrawler/internal/browser"
	"github.com/Divyaj16/JobCrawler/internal/config"
	"github.com/Divyaj16/JobCrawler/internal/crawler"
	"github.com/Divyaj16/JobCrawler/internal/dedup"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
	"github.com/Divyaj16/JobCrawler/internal/scraper/linkedin"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if opts == nil {
		return
	}

	//load config
	cfg, err := config.LoadFromFlags(opts)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔧 Config loaded. Keywords: %v", cfg.Keywords)

	//stop cleanly on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer, err := browser.New(cfg.Renderer, cfg.BrowserOptions(filepath.Join("logs", "screenshots")))
	if err != nil {
		log.Fatalf("❌ Failed to init browser: %v", err)
	}
	defer renderer.Close()

	store := dedup.NewStore(cfg.DatabaseFile)
	c := crawler.New(linkedin.NewLinkedInScraper(cfg, renderer), store, cfg.Retention())

	res, err := c.RunOnce(ctx)
	printNew(res.New)
	if err != nil {
		log.Printf("❌ %v", err)
		renderer.Close()
		os.Exit(1)
	}
	log.Printf("✅ Done. %d jobs stored in %s", len(res.All), store.Path())
}

func printNew(jobs []scraper.Job) {
	if len(jobs) == 0 {
		fmt.Println("No new job postings found.")
		return
	}
	fmt.Printf("\n🎉 %d new job postings:\n", len(jobs))
	for i, job := range jobs {
		fmt.Printf("\n%d. %s\n", i+1, job.Title)
		fmt.Printf("   Company:  %s\n", job.Company)
		fmt.Printf("   Location: %s\n", job.Location)
		fmt.Printf("   Posted:   %s\n", job.DatePosted)
		fmt.Printf("   URL:      %s\n", job.URL)
	}
}
