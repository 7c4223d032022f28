package interaction

import (
	"context"

	pkgLog "ecommerce-support-agent/pkg/log"
)

// LogSink writes interaction records as structured log lines.
type LogSink struct {
	l pkgLog.Logger
}

// NewLogSink creates a sink backed by the application logger.
func NewLogSink(l pkgLog.Logger) *LogSink {
	return &LogSink{l: l}
}

func (s *LogSink) Write(ctx context.Context, rec Record) error {
	s.l.Infof(ctx,
		"interaction: session=%s intent=%s confidence=%.2f tool=%s latency=%s summary=%q utterance=%q",
		rec.SessionID, rec.Intent, rec.Confidence, rec.ToolUsed, rec.Latency, rec.ResultSummary, rec.Utterance,
	)
	return nil
}
