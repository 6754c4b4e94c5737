package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles outgoing requests with a token bucket.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit allows perMinute requests per minute, bursting up to a
// quarter of that. perMinute <= 0 returns p unchanged.
func WithRateLimit(p Provider, perMinute int) Provider {
	if perMinute <= 0 {
		return p
	}
	burst := max(perMinute/4, 1)
	limit := rate.Every(time.Minute / time.Duration(perMinute))
	return &RateLimitedProvider{inner: p, limiter: rate.NewLimiter(limit, burst)}
}

func (r *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &ErrRateLimit{Err: err}
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitedProvider) ModelID() string {
	return r.inner.ModelID()
}
