package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Divyaj16/JobCrawler/internal/config"
	"github.com/Divyaj16/JobCrawler/internal/dedup"
	"github.com/Divyaj16/JobCrawler/internal/telegram"
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
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
	}
	log.Println("🤖 Telegram Bot initialized.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := dedup.NewStore(cfg.DatabaseFile)
	sent, err := bot.NotifyPending(ctx, store)
	if err != nil {
		log.Fatalf("❌ Failed to notify: %v", err)
	}
	if sent == 0 {
		log.Println("📭 Nothing new to send")
		return
	}
	if err := bot.SendStatus(fmt.Sprintf("Sent %d new job postings", sent)); err != nil {
		log.Printf("⚠️ Failed to send summary: %v", err)
	}
	log.Printf("✅ Sent %d jobs to Telegram", sent)
}
