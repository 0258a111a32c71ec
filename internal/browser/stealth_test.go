package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage grows by 100px on each scroll to the bottom while grows > 0
type fakePage struct {
	height      int
	grows       int
	showMore    int
	consent     bool
	heightCalls int
	bottomCalls int
	clicks      int
	err         error
}

func (p *fakePage) evalJS(js string, args ...any) (any, error) {
	if p.err != nil {
		return nil, p.err
	}
	switch js {
	case scrollHeightJS:
		p.heightCalls++
		return float64(p.height), nil
	case scrollBottomJS:
		p.bottomCalls++
		if p.grows > 0 {
			p.height += 100
			p.grows--
		}
		return nil, nil
	case scrollNudgeJS:
		return nil, nil
	case clickButtonJS:
		switch args[0] {
		case showMorePattern:
			if p.showMore > 0 {
				p.showMore--
				p.clicks++
				p.height += 50
				return true, nil
			}
		case consentPattern:
			return p.consent, nil
		}
		return false, nil
	}
	return nil, errors.New("unexpected script")
}

func zeroPacing(maxStale, maxRounds int) Pacing {
	return Pacing{MaxStaleScrolls: maxStale, MaxScrollRounds: maxRounds}
}

func TestHumanScroll(t *testing.T) {
	tests := []struct {
		name       string
		page       *fakePage
		pacing     Pacing
		wantRounds int
		wantClicks int
	}{
		{
			name:       "stops after stale rounds",
			page:       &fakePage{height: 1000, grows: 2},
			pacing:     zeroPacing(3, 40),
			wantRounds: 5,
		},
		{
			name:       "round cap",
			page:       &fakePage{height: 1000, grows: 1000},
			pacing:     zeroPacing(3, 4),
			wantRounds: 4,
		},
		{
			name:       "show more resets staleness",
			page:       &fakePage{height: 1000, showMore: 2},
			pacing:     zeroPacing(2, 40),
			wantRounds: 4,
			wantClicks: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := humanScroll(context.Background(), tt.page, tt.pacing)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRounds*2, tt.page.heightCalls)
			assert.Equal(t, tt.wantClicks, tt.page.clicks)
		})
	}
}

func TestHumanScroll_NudgesWhenStale(t *testing.T) {
	p := &fakePage{height: 1000}

	require.NoError(t, humanScroll(context.Background(), p, zeroPacing(4, 40)))

	// 4 rounds plus one extra bottom scroll per nudge (stale 3 and 4)
	assert.Equal(t, 6, p.bottomCalls)
}

func TestHumanScroll_Errors(t *testing.T) {
	boom := errors.New("target closed")
	err := humanScroll(context.Background(), &fakePage{err: boom}, zeroPacing(3, 10))
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pacing := zeroPacing(3, 10)
	pacing.ScrollMin, pacing.ScrollMax = time.Second, 2*time.Second
	err = humanScroll(ctx, &fakePage{height: 10}, pacing)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAcceptConsent(t *testing.T) {
	p := &fakePage{consent: true}
	acceptConsent(context.Background(), p, zeroPacing(0, 0))
	assert.Equal(t, 0, p.clicks, "consent is not a show more click")

	assert.True(t, clickButton(p, consentPattern))
	assert.False(t, clickButton(&fakePage{}, consentPattern))
}

func TestScrollHeight(t *testing.T) {
	h, err := scrollHeight(&fakePage{height: 1234})
	require.NoError(t, err)
	assert.Equal(t, 1234, h)
}

func TestRandomDelay(t *testing.T) {
	assert.NoError(t, RandomDelay(context.Background(), 0, 0))
	assert.NoError(t, RandomDelay(context.Background(), time.Millisecond, 2*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, RandomDelay(ctx, time.Hour, 2*time.Hour), context.Canceled)
	assert.ErrorIs(t, RandomDelay(ctx, 0, 0), context.Canceled)
}

func TestCloseOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closed := make(chan struct{})
	closeOnCancel(ctx, func() error {
		close(closed)
		return nil
	})

	cancel()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("page was not closed after cancel")
	}
}

func TestCloseOnCancel_Stopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	called := make(chan struct{}, 1)
	stop := closeOnCancel(ctx, func() error {
		called <- struct{}{}
		return errors.New("already closed")
	})

	assert.True(t, stop())
	cancel()

	select {
	case <-called:
		t.Fatal("closer ran after stop")
	case <-time.After(50 * time.Millisecond):
	}
}
