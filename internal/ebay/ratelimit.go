package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the daily API call limit has been exhausted.
var ErrDailyLimitReached = errors.New("daily API limit reached")

const quotaWindow = 24 * time.Hour

// RateLimiter paces outbound marketplace calls. It combines a token bucket
// for per-second pacing with a rolling 24-hour quota that starts counting at
// construction and resets one window after it began.
type RateLimiter struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	used     int64
	maxDaily int64
	resetAt  time.Time
	nowFunc  func() time.Time
}

// QuotaSnapshot is a point-in-time view of the daily quota.
type QuotaSnapshot struct {
	Limit     int64
	Used      int64
	Remaining int64
	ResetAt   time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size, and daily limit.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(quotaWindow)
	return r
}

// Wait reserves one call from the daily quota and then blocks until the token
// bucket admits it or ctx is done. It returns ErrDailyLimitReached without
// blocking once the quota is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.reserve(); err != nil {
		return err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// Snapshot returns the current quota state.
func (r *RateLimiter) Snapshot() QuotaSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	return QuotaSnapshot{
		Limit:     r.maxDaily,
		Used:      r.used,
		Remaining: max(r.maxDaily-r.used, 0),
		ResetAt:   r.resetAt,
	}
}

// Sync adopts the usage eBay reports for the application, which also counts
// calls made outside this process. A non-positive limit or zero resetAt keeps
// the local value.
func (r *RateLimiter) Sync(used, limit int64, resetAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.used = max(used, 0)
	if limit > 0 {
		r.maxDaily = limit
	}
	if !resetAt.IsZero() {
		r.resetAt = resetAt
	}
}

func (r *RateLimiter) reserve() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	if r.used >= r.maxDaily {
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.used, r.maxDaily)
	}
	r.used++
	return nil
}

func (r *RateLimiter) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.used > 0 {
		r.used--
	}
}

func (r *RateLimiter) rollLocked() {
	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.used = 0
		r.resetAt = now.Add(quotaWindow)
	}
}
