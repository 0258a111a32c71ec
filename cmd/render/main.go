// Render the search page (or read a saved one) and run extraction on it
// without touching the job database. Handy when LinkedIn changes markup.
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
	"github.com/Divyaj16/JobCrawler/internal/scraper/linkedin"
	"github.com/jessevdk/go-flags"
)

type options struct {
	config.Flags
	Out  string `long:"out" description:"Save the rendered HTML to this file"`
	From string `long:"from" description:"Extract from a saved HTML file instead of rendering"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("❌ %v", err)
	}

	cfg, err := config.LoadFromFlags(&opts.Flags)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	html, err := pageHTML(ctx, cfg, opts)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, []byte(html), 0644); err != nil {
			log.Fatalf("❌ Failed to save HTML: %v", err)
		}
		fmt.Printf("💾 HTML saved: %s\n", opts.Out)
	}

	s := linkedin.NewLinkedInScraper(cfg, nil)
	jobs, err := s.ExtractJobs(html)
	s.Stats().Log()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	for i, job := range jobs {
		fmt.Printf("%d. %s | %s | %s | %s\n", i+1, job.Title, job.Company, job.Location, job.URL)
	}
	fmt.Println("✨ Test complete!")
}

func pageHTML(ctx context.Context, cfg *config.Config, opts options) (string, error) {
	if opts.From != "" {
		data, err := os.ReadFile(opts.From)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", opts.From, err)
		}
		return string(data), nil
	}

	renderer, err := browser.New(cfg.Renderer, cfg.BrowserOptions(filepath.Join("logs", "screenshots")))
	if err != nil {
		return "", err
	}
	defer renderer.Close()

	fmt.Printf("🌐 Rendering with %s...\n", cfg.Renderer)
	return renderer.Render(ctx, cfg.JobURL)
}
