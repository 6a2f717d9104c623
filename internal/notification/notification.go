package notification

import (
    "context"
    "log/slog"
)

const (
    // KindReconciliationDiscrepancy reports a comparison run that found addresses out of sync.
    KindReconciliationDiscrepancy = "reconciliation_discrepancy"

    // DestinationWalletOps is the channel watched by whoever maintains expected quantities.
    DestinationWalletOps = "wallet-ops"
)

// Message describes a notification payload.
type Message struct {
    Kind        string
    Destination string
    Body        string
    Counts      map[string]int
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
    Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
    logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
    return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
    if n == nil || n.logger == nil {
        return nil
    }
    attrs := []any{"kind", message.Kind, "destination", message.Destination, "body", message.Body}
    for status, count := range message.Counts {
        attrs = append(attrs, slog.Int(status, count))
    }
    n.logger.Warn("notification", attrs...)
    return nil
}
