package main

import (
	"log"
	"os"

	"github.com/Divyaj16/JobCrawler/internal/config"
	"github.com/Divyaj16/JobCrawler/internal/dedup"
	"github.com/Divyaj16/JobCrawler/internal/server"
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

	cfg, err := config.LoadFromFlags(opts)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	r := server.NewRouter(dedup.NewStore(cfg.DatabaseFile))

	log.Printf("Server listening on port %s", opts.Port)
	if err := r.Run(":" + opts.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
