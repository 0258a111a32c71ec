package browser

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// RodRenderer drives Chrome through go-rod with the stealth page patches
type RodRenderer struct {
	opts        Options
	screenshots *ScreenshotDebugger

	mu      sync.Mutex
	lnch    *launcher.Launcher
	browser *rod.Browser
}

func NewRodRenderer(opts Options) *RodRenderer {
	return &RodRenderer{
		opts:        opts,
		screenshots: NewScreenshotDebugger(opts.ScreenshotDir),
	}
}

func (r *RodRenderer) start() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().
		Headless(r.opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("window-size", "1366,768")
	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	r.lnch = l
	r.browser = b
	log.Println("✅ Browser initialized successfully (rod)!")
	return b, nil
}

func (r *RodRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	b, err := r.start()
	if err != nil {
		return "", err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return "", fmt.Errorf("browser: create tab: %w", err)
	}
	defer page.Close()

	if ua := pickUserAgent(r.opts.UserAgents); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      ua,
			AcceptLanguage: "en-US,en;q=0.9",
		}); err != nil {
			log.Printf("⚠️ Failed to set user agent: %v", err)
		}
	}
	if r.opts.CookiesPath != "" {
		if cookies, err := LoadCookies(r.opts.CookiesPath); err != nil {
			log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
		} else {
			params := make([]*proto.NetworkCookieParam, len(cookies))
			for i, c := range cookies {
				params[i] = c.ToRod()
			}
			if err := page.SetCookies(params); err != nil {
				log.Printf("⚠️ Failed to add cookies: %v", err)
			}
		}
	}

	html, err := r.render(ctx, page, pageURL)
	if err != nil {
		r.screenshots.CaptureAndLog("linkedin-render-failed", "🚨 Render failed: "+err.Error(), func(path string) error {
			data, shotErr := page.Screenshot(true, nil)
			if shotErr != nil {
				return shotErr
			}
			return os.WriteFile(path, data, 0644)
		})
		return "", err
	}
	return html, nil
}

func (r *RodRenderer) render(ctx context.Context, page *rod.Page, pageURL string) (string, error) {
	log.Printf("🌐 Fetching: %s", pageURL)

	navCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return "", fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		log.Printf("⚠️ Wait load timeout: %v", err)
	}

	p := rodPage{page.Context(ctx)}
	pacing := r.opts.Pacing
	if err := RandomDelay(ctx, pacing.SettleMin, pacing.SettleMax); err != nil {
		return "", err
	}
	acceptConsent(ctx, p, pacing)
	if err := humanScroll(ctx, p, pacing); err != nil {
		return "", fmt.Errorf("scrolling failed: %w", err)
	}
	if err := RandomDelay(ctx, pacing.SettleMin/2, pacing.SettleMax/2); err != nil {
		return "", err
	}

	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("browser: get DOM: %w", err)
	}
	return html, nil
}

func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.lnch != nil {
		r.lnch.Cleanup()
		r.lnch = nil
		log.Println("🧹 Browser closed")
	}
	return err
}

type rodPage struct {
	page *rod.Page
}

func (p rodPage) evalJS(js string, args ...any) (any, error) {
	res, err := p.page.Eval(js, args...)
	if err != nil {
		return nil, err
	}
	return res.Value.Val(), nil
}
