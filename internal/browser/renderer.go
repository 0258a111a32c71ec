// Package browser renders client-side pages to HTML through a headless
// browser. Playwright is the default engine, go-rod the alternate.
package browser

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// Renderer loads a page, lets its scripts run and returns the final HTML.
// Close releases the browser; the next Render starts a fresh one.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
	Close() error
}

type Options struct {
	Headless    bool
	UserAgents  []string
	CookiesPath string
	// ScreenshotDir receives a capture when rendering fails. Empty disables it.
	ScreenshotDir string
	Pacing        Pacing
}

// Pacing holds the human-like pauses used while driving the page
type Pacing struct {
	// Settle is waited after navigation, before interacting
	SettleMin, SettleMax time.Duration
	// Scroll is waited after every scroll to the bottom
	ScrollMin, ScrollMax time.Duration
	// MaxStaleScrolls stops scrolling after that many rounds without growth
	MaxStaleScrolls int
	// MaxScrollRounds caps the total number of rounds
	MaxScrollRounds int
}

func DefaultPacing() Pacing {
	return Pacing{
		SettleMin:       3 * time.Second,
		SettleMax:       6 * time.Second,
		ScrollMin:       2 * time.Second,
		ScrollMax:       4 * time.Second,
		MaxStaleScrolls: 15,
		MaxScrollRounds: 40,
	}
}

const (
	KindPlaywright = "playwright"
	KindRod        = "rod"
)

func New(kind string, opts Options) (Renderer, error) {
	switch kind {
	case "", KindPlaywright:
		return NewPlaywrightRenderer(opts), nil
	case KindRod:
		return NewRodRenderer(opts), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", kind)
	}
}

func pickUserAgent(agents []string) string {
	if len(agents) == 0 {
		return ""
	}
	return agents[rand.Intn(len(agents))]
}

// RandomDelay waits a random duration in [min, max], or until ctx is done
func RandomDelay(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min + 1)))
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// closeOnCancel calls closer once ctx is done, so calls that ignore ctx
// return early. stop disarms it.
func closeOnCancel(ctx context.Context, closer func() error) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		if err := closer(); err != nil {
			log.Printf("⚠️ Failed to close page on cancel: %v", err)
		}
	})
}
