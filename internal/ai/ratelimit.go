package ai

import (
	"context"
	"fmt"
	"time"

	"stockmaster/internal/core"

	"golang.org/x/time/rate"
)

// RateLimitedNarrator spaces calls to a paid provider. A call that cannot get
// a token before its context ends fails, and the reporter falls back to the
// local narrative.
type RateLimitedNarrator struct {
	next    core.NarrativeProvider
	limiter *rate.Limiter
}

// NewRateLimitedNarrator allows perMinute calls per minute with a burst of one.
func NewRateLimitedNarrator(next core.NarrativeProvider, perMinute int) *RateLimitedNarrator {
	return &RateLimitedNarrator{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (n *RateLimitedNarrator) GenerateSummary(ctx context.Context, req core.NarrativeRequest) (*core.NarrativeResponse, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("narrative rate limit: %w", err)
	}
	return n.next.GenerateSummary(ctx, req)
}
