package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendQuotaAlert logs and discards the alert.
func (n *NoOpNotifier) SendQuotaAlert(_ context.Context, alert QuotaAlert) error {
	n.log.Debug("notification discarded (no backend configured)",
		"resource", alert.Resource,
		"remaining", alert.Remaining,
		"limit", alert.Limit,
	)
	return nil
}
