package workers

import (
	"context"
	"line-chat/contract"
	"line-chat/domain"
	"log/slog"
	"time"
)

const defaultSinkTimeout = 2 * time.Second

// StatusFanout hands every server status event to each sink in order.
// Delivery is best effort: a failing sink is logged and skipped.
// Run returns when the channel is closed and drained, or when ctx is done.
type StatusFanout struct {
	log         *slog.Logger
	events      <-chan domain.StatusEvent
	sinks       []contract.StatusSink
	sinkTimeout time.Duration
}

func NewStatusFanout(log *slog.Logger, events <-chan domain.StatusEvent, sinks ...contract.StatusSink) *StatusFanout {
	return &StatusFanout{
		log:         log,
		events:      events,
		sinks:       sinks,
		sinkTimeout: defaultSinkTimeout,
	}
}

func (w *StatusFanout) WithSinkTimeout(timeout time.Duration) *StatusFanout {
	w.sinkTimeout = timeout
	return w
}

func (w *StatusFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Status channel closed, fanout done")
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping status fanout")
			return nil
		}
	}
}

// Fanout delivers one event to every sink, each bounded by the sink timeout.
func (w *StatusFanout) Fanout(ctx context.Context, evt domain.StatusEvent) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Status sink failed", "kind", evt.Kind, "error", err)
		}
		cancel()
	}
}
