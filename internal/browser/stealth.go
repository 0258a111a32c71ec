package browser

import (
	"context"
	"fmt"
	"log"
)

// hideWebdriverJS removes the most obvious automation marker
const hideWebdriverJS = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

const (
	scrollHeightJS = `() => document.body ? document.body.scrollHeight : 0`
	scrollBottomJS = `() => window.scrollTo(0, document.body.scrollHeight)`
	scrollNudgeJS  = `() => window.scrollTo(0, document.body.scrollHeight * 0.8)`

	// clicks the first visible, enabled button whose text matches pattern
	clickButtonJS = `(pattern) => {
		const re = new RegExp(pattern);
		const btn = Array.from(document.querySelectorAll('button')).find(
			b => re.test(b.textContent || '') && b.offsetParent !== null && !b.disabled);
		if (!btn) return false;
		btn.click();
		return true;
	}`

	showMorePattern = `Show more|See more jobs`
	consentPattern  = `Accept|Allow`
)

// jsPage is the slice of a browser page the scrolling logic needs
type jsPage interface {
	evalJS(js string, args ...any) (any, error)
}

func scrollHeight(p jsPage) (int, error) {
	v, err := p.evalJS(scrollHeightJS)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected scrollHeight %T", v)
	}
}

func clickButton(p jsPage, pattern string) bool {
	v, err := p.evalJS(clickButtonJS, pattern)
	if err != nil {
		return false
	}
	clicked, _ := v.(bool)
	return clicked
}

// acceptConsent dismisses a cookie banner if one is showing
func acceptConsent(ctx context.Context, p jsPage, pacing Pacing) {
	if clickButton(p, consentPattern) {
		log.Println("🍪 Accepted cookie banner")
		_ = RandomDelay(ctx, pacing.ScrollMin/2, pacing.ScrollMax/2)
	}
}

// humanScroll keeps scrolling to the bottom and clicking "Show more" until
// the page stops growing, so lazily loaded cards get rendered.
func humanScroll(ctx context.Context, p jsPage, pacing Pacing) error {
	log.Println("📜 Scrolling to load all available jobs...")
	stale := 0
	for round := 0; stale < pacing.MaxStaleScrolls && round < pacing.MaxScrollRounds; round++ {
		current, err := scrollHeight(p)
		if err != nil {
			return err
		}
		if _, err := p.evalJS(scrollBottomJS); err != nil {
			return err
		}
		if err := RandomDelay(ctx, pacing.ScrollMin, pacing.ScrollMax); err != nil {
			return err
		}

		if clickButton(p, showMorePattern) {
			log.Println("👆 Clicked 'Show more jobs' button")
			if err := RandomDelay(ctx, pacing.ScrollMin, pacing.ScrollMax); err != nil {
				return err
			}
		}

		next, err := scrollHeight(p)
		if err != nil {
			return err
		}
		if next == current {
			stale++
			if stale >= 3 {
				// scrolling up and back down sometimes re-triggers the loader
				_, _ = p.evalJS(scrollNudgeJS)
				_, _ = p.evalJS(scrollBottomJS)
			}
		} else {
			stale = 0
		}
		log.Printf("   Scroll round %d, stale %d/%d, page height: %d", round+1, stale, pacing.MaxStaleScrolls, next)
	}
	log.Println("✅ Finished scrolling")
	return nil
}
