package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/dedup"
	"github.com/Divyaj16/JobCrawler/internal/scraper"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Telegram API the notifier uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    Sender
	chatID int64
	// Pause between messages, Telegram answers 429 when flooded
	Pause time.Duration
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return NewBotWithSender(api, chatID), nil
}

func NewBotWithSender(api Sender, chatID int64) *Bot {
	return &Bot{
		api:    api,
		chatID: chatID,
		Pause:  time.Second,
	}
}

func escape(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text)
}

// FormatJob renders a job as a MarkdownV2 message body
func FormatJob(job scraper.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💼 *%s*\n", escape(job.Title))
	fmt.Fprintf(&b, "🏢 %s\n", escape(job.Company))
	fmt.Fprintf(&b, "📍 %s\n", escape(job.Location))
	fmt.Fprintf(&b, "📅 %s\n", escape(job.DatePosted))
	fmt.Fprintf(&b, "🔖 Source: %s\n", escape(job.Source))
	return b.String()
}

func (b *Bot) SendJob(job scraper.Job) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatJob(job))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", job.URL),
		),
	)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}

// NotifyPending sends every stored job not yet delivered and marks it sent.
// Jobs whose delivery fails stay pending for the next run.
func (b *Bot) NotifyPending(ctx context.Context, store *dedup.Store) (sent int, err error) {
	err = store.Update(ctx, func(jobs []scraper.Job) []scraper.Job {
		for i := range jobs {
			if jobs[i].EmailSent {
				continue
			}
			if ctx.Err() != nil {
				break
			}
			if sendErr := b.SendJob(jobs[i]); sendErr != nil {
				log.Printf("⚠️ Failed to send job to Telegram: %v", sendErr)
				continue
			}
			jobs[i].EmailSent = true
			sent++
			log.Printf("  📨 %s @ %s", jobs[i].Title, jobs[i].Company)

			if b.Pause > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(b.Pause):
				}
			}
		}
		return jobs
	})
	return sent, err
}
