package sink

import (
	"context"
	"line-chat/contract"
	"line-chat/domain"
	"log/slog"
)

var _ contract.StatusSink = (*LogSink)(nil)

// LogSink writes one structured record per status event.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Consume(ctx context.Context, e domain.StatusEvent) error {
	level := slog.LevelInfo
	attrs := []slog.Attr{slog.String("kind", string(e.Kind)), slog.Time("at", e.At)}
	if e.ClientID != 0 {
		attrs = append(attrs, slog.Int64("client_id", int64(e.ClientID)), slog.String("ip", e.RemoteAddr))
	}
	if e.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	s.log.LogAttrs(ctx, level, e.String(), attrs...)
	return nil
}
