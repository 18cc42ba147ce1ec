package runtime

import (
	"line-chat/domain"
	"log/slog"
)

// publish hands a status event to the display pipeline without ever blocking
// the network goroutine that produced it. A nil channel disables reporting.
func publish(log *slog.Logger, status chan<- domain.StatusEvent, evt domain.StatusEvent) {
	if status == nil {
		return
	}
	select {
	case status <- evt:
	default:
		log.Debug("Status event dropped, channel full", "kind", evt.Kind, "client_id", evt.ClientID)
	}
}
