package browser

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

var chromiumArgs = []string{
	"--no-sandbox",
	"--disable-dev-shm-usage",
	"--disable-blink-features=AutomationControlled",
	"--disable-extensions",
	"--disable-plugins",
	"--disable-gpu",
	"--window-size=1366,768",
}

type PlaywrightRenderer struct {
	opts        Options
	screenshots *ScreenshotDebugger

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywrightRenderer(opts Options) *PlaywrightRenderer {
	return &PlaywrightRenderer{
		opts:        opts,
		screenshots: NewScreenshotDebugger(opts.ScreenshotDir),
	}
}

// start launches Chromium on first use (or after Close)
func (r *PlaywrightRenderer) start() (playwright.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless:          playwright.Bool(r.opts.Headless),
		Args:              chromiumArgs,
		IgnoreDefaultArgs: []string{"--enable-automation"},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}
	r.pw = pw
	r.browser = browser
	log.Println("✅ Browser initialized successfully!")
	return browser, nil
}

func (r *PlaywrightRenderer) newContext(browser playwright.Browser) (playwright.BrowserContext, error) {
	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1366, Height: 768},
		Locale:   playwright.String("en-US"),
		ExtraHttpHeaders: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
	if ua := pickUserAgent(r.opts.UserAgents); ua != "" {
		opts.UserAgent = playwright.String(ua)
	}

	browserCtx, err := browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	if err := browserCtx.AddInitScript(playwright.Script{Content: playwright.String(hideWebdriverJS)}); err != nil {
		log.Printf("⚠️ Failed to add stealth script: %v", err)
	}

	if r.opts.CookiesPath != "" {
		cookies, err := LoadCookies(r.opts.CookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
		} else {
			pwCookies := make([]playwright.OptionalCookie, len(cookies))
			for i, c := range cookies {
				pwCookies[i] = c.ToPlaywright()
			}
			if err := browserCtx.AddCookies(pwCookies); err != nil {
				log.Printf("⚠️ Failed to add cookies: %v", err)
			} else {
				log.Printf("🍪 Loaded %d cookies", len(pwCookies))
			}
		}
	}
	return browserCtx, nil
}

func (r *PlaywrightRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	browser, err := r.start()
	if err != nil {
		return "", err
	}
	browserCtx, err := r.newContext(browser)
	if err != nil {
		return "", err
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("failed to create new page: %w", err)
	}
	// Goto and WaitFor only know their own timeouts
	stop := closeOnCancel(ctx, func() error { return page.Close() })
	defer stop()

	html, err := r.render(ctx, page, pageURL)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		r.screenshots.CaptureAndLog("linkedin-render-failed", "🚨 Render failed: "+err.Error(), func(path string) error {
			_, shotErr := page.Screenshot(playwright.PageScreenshotOptions{
				Path:     playwright.String(path),
				FullPage: playwright.Bool(true),
			})
			return shotErr
		})
		return "", err
	}
	return html, nil
}

func (r *PlaywrightRenderer) render(ctx context.Context, page playwright.Page, pageURL string) (string, error) {
	log.Printf("🌐 Fetching: %s", pageURL)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return "", fmt.Errorf("failed to load %s: %w", pageURL, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := page.Locator("body").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return "", fmt.Errorf("page body never appeared: %w", err)
	}

	p := playwrightPage{page}
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

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return html, nil
}

// Close shuts the browser down; safe to call more than once
func (r *PlaywrightRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	if r.browser != nil {
		if err := r.browser.Close(); err != nil {
			firstErr = err
		}
		r.browser = nil
	}
	if r.pw != nil {
		if err := r.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.pw = nil
		log.Println("🧹 Browser closed")
	}
	return firstErr
}

type playwrightPage struct {
	page playwright.Page
}

func (p playwrightPage) evalJS(js string, args ...any) (any, error) {
	return p.page.Evaluate(js, args...)
}
