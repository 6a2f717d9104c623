package notification

import (
    "bytes"
    "context"
    "encoding/json"
    "log/slog"
    "testing"
)

func TestLoggerNotifierWritesCounts(t *testing.T) {
    var buf bytes.Buffer
    logger := slog.New(slog.NewJSONHandler(&buf, nil))
    n := NewLoggerNotifier(logger)

    err := n.Send(context.Background(), Message{
        Kind:   KindReconciliationDiscrepancy,
        Body:   "1 of 2 addresses out of sync",
        Counts: map[string]int{"mismatch": 1},
    })
    if err != nil {
        t.Fatalf("send: %v", err)
    }

    var entry map[string]any
    if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
        t.Fatalf("decode log line: %v", err)
    }
    if entry["kind"] != KindReconciliationDiscrepancy {
        t.Fatalf("unexpected kind %v", entry["kind"])
    }
    if entry["mismatch"] != float64(1) {
        t.Fatalf("expected mismatch count 1, got %v", entry["mismatch"])
    }
}

func TestNilLoggerNotifierIsNoop(t *testing.T) {
    var n *LoggerNotifier
    if err := n.Send(context.Background(), Message{Kind: KindReconciliationDiscrepancy}); err != nil {
        t.Fatalf("expected nil error, got %v", err)
    }
}
