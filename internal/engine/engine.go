// Package engine runs the gateway's background jobs. Today that is the quota
// sync, which keeps the gateway in step with eBay's own view of the
// application's call quota.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/ebay-listing-gateway/internal/ebay"
	"github.com/donaldgifford/ebay-listing-gateway/internal/metrics"
	"github.com/donaldgifford/ebay-listing-gateway/internal/notify"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/logger"
)

// DefaultWarnRatio is the remaining fraction of a quota at or below which a
// notification is sent.
const DefaultWarnRatio = 0.1

// QuotaSource reports the quota eBay tracks for the application.
type QuotaSource interface {
	GetQuotas(ctx context.Context) ([]ebay.QuotaState, error)
}

// Engine holds the dependencies of the background jobs.
type Engine struct {
	quotas      QuotaSource
	rateLimiter *ebay.RateLimiter
	notifier    notify.Notifier
	warnRatio   float64
	log         *slog.Logger

	mu sync.Mutex
	// alerted records, per resource, the window reset time an alert was
	// already sent for.
	alerted map[string]time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(eng *Engine) {
		eng.log = l
	}
}

// WithRateLimiter sets the outbound limiter kept in step with eBay's counts.
func WithRateLimiter(rl *ebay.RateLimiter) EngineOption {
	return func(eng *Engine) {
		eng.rateLimiter = rl
	}
}

// WithNotifier sets where low-quota alerts go.
func WithNotifier(n notify.Notifier) EngineOption {
	return func(eng *Engine) {
		eng.notifier = n
	}
}

// WithWarnRatio overrides DefaultWarnRatio. Values outside (0, 1] are ignored.
func WithWarnRatio(r float64) EngineOption {
	return func(eng *Engine) {
		if r > 0 && r <= 1 {
			eng.warnRatio = r
		}
	}
}

// NewEngine creates a new Engine. A nil quota source turns SyncQuota into a
// no-op.
func NewEngine(quotas QuotaSource, opts ...EngineOption) *Engine {
	eng := &Engine{
		quotas:    quotas,
		warnRatio: DefaultWarnRatio,
		log:       logger.Discard(),
		alerted:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.notifier == nil {
		eng.notifier = notify.NewNoOpNotifier(eng.log)
	}
	return eng
}

// SyncQuota publishes the upstream quota state as metrics and adopts the
// Browse counts into the rate limiter. At most one low-quota alert is sent per
// resource per window. Failures are logged, never returned.
func (eng *Engine) SyncQuota(ctx context.Context) {
	if eng.quotas == nil {
		return
	}

	eng.mu.Lock()
	defer eng.mu.Unlock()

	quotas, err := eng.quotas.GetQuotas(ctx)
	if err != nil {
		metrics.QuotaSyncsTotal.WithLabelValues("error").Inc()
		eng.log.Warn("quota sync failed", "error", err)
		return
	}
	metrics.QuotaSyncsTotal.WithLabelValues("success").Inc()

	for _, q := range quotas {
		metrics.EbayUpstreamLimit.WithLabelValues(q.Resource).Set(float64(q.Limit))
		metrics.EbayUpstreamRemaining.WithLabelValues(q.Resource).Set(float64(q.Remaining))
		metrics.EbayUpstreamResetTimestamp.WithLabelValues(q.Resource).Set(float64(q.ResetAt.Unix()))

		if q.Resource == ebay.ResourceBrowse && eng.rateLimiter != nil {
			eng.rateLimiter.Sync(q.Count, q.Limit, q.ResetAt)
			metrics.EbayDailyUsage.Set(float64(eng.rateLimiter.Snapshot().Used))
		}

		eng.log.Debug("quota synced",
			"resource", q.Resource,
			"count", q.Count,
			"limit", q.Limit,
			"remaining", q.Remaining,
		)

		eng.maybeAlert(ctx, q)
	}
}

func (eng *Engine) maybeAlert(ctx context.Context, q ebay.QuotaState) {
	if q.Limit <= 0 || float64(q.Remaining) > float64(q.Limit)*eng.warnRatio {
		return
	}
	if last, ok := eng.alerted[q.Resource]; ok && last.Equal(q.ResetAt) {
		return
	}

	alert := notify.QuotaAlert{
		Resource:  q.Resource,
		Used:      q.Count,
		Limit:     q.Limit,
		Remaining: q.Remaining,
		ResetAt:   q.ResetAt,
	}
	if err := eng.notifier.SendQuotaAlert(ctx, alert); err != nil {
		metrics.QuotaAlertsTotal.WithLabelValues("error").Inc()
		eng.log.Error("sending quota alert", "resource", q.Resource, "error", err)
		return
	}

	metrics.QuotaAlertsTotal.WithLabelValues("sent").Inc()
	eng.alerted[q.Resource] = q.ResetAt
	eng.log.Info("quota alert sent", "resource", q.Resource, "remaining", q.Remaining)
}
