// Package notify delivers operator notifications about the gateway's eBay
// API quota.
package notify

import (
	"context"
	"time"
)

// QuotaAlert describes an eBay API resource running low on its call quota.
type QuotaAlert struct {
	Resource  string
	Used      int64
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RemainingRatio returns the fraction of the limit still available, or 1 when
// the limit is unknown.
func (a QuotaAlert) RemainingRatio() float64 {
	if a.Limit <= 0 {
		return 1
	}
	return float64(a.Remaining) / float64(a.Limit)
}

// Notifier defines the interface for sending quota notifications.
type Notifier interface {
	SendQuotaAlert(ctx context.Context, alert QuotaAlert) error
}
