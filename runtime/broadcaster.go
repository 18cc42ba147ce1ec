package runtime

import (
	"line-chat/contract"
	"line-chat/domain"
	"line-chat/moderation"
	"line-chat/observability"
	"line-chat/transport"
	"log/slog"

	"github.com/samber/lo"
)

// Ensure *Broadcaster implements the contract.IBroadcaster interface at compile time.
var _ contract.IBroadcaster = (*Broadcaster)(nil)

// Broadcaster writes one sender's message to every other registered client.
//
// Recipients are served one after the other in snapshot order, so the lines of
// a given sender reach each recipient in the order they were read. A failed
// write is contained: it is logged and reported, the recipient is disconnected,
// then the next recipient is served. With a write timeout set on the
// connections, a peer that stops reading holds a sender for at most that long.
type Broadcaster struct {
	log       *slog.Logger
	registry  contract.IRegistry
	monitor   *observability.Monitor
	status    chan<- domain.StatusEvent
	moderator *moderation.Moderator
}

func NewBroadcaster(log *slog.Logger, registry contract.IRegistry,
	monitor *observability.Monitor, status chan<- domain.StatusEvent) *Broadcaster {
	return &Broadcaster{
		log:      log,
		registry: registry,
		monitor:  monitor,
		status:   status,
	}
}

// WithModerator enables censoring of message content before delivery.
func (b *Broadcaster) WithModerator(moderator *moderation.Moderator) *Broadcaster {
	b.moderator = moderator
	return b
}

func (b *Broadcaster) Broadcast(msg domain.Message) int {
	b.monitor.IncrMessagesReceived()
	msg = b.moderate(msg)
	line := msg.Line()

	recipients := lo.Filter(b.registry.Snapshot(), func(e contract.RegistryEntry, _ int) bool {
		return e.ID != msg.SenderID
	})

	delivered := 0
	for _, recipient := range recipients {
		if err := recipient.Conn.WriteLine(line); err != nil {
			b.monitor.IncrDeliveryFailures()
			b.log.Warn("Delivery failed",
				"message_id", msg.ID,
				"sender_id", msg.SenderID,
				"recipient_id", recipient.ID,
				"error", err)
			publish(b.log, b.status, domain.NewStatusEvent(domain.DeliveryFailed).
				WithClient(recipient.ID, transport.HostOf(recipient.Conn.RemoteAddr())).
				WithErr(err))
			// A failed or timed out write may have left half a line on the wire.
			// Closing ends the recipient's session, which unregisters it.
			_ = recipient.Conn.Close()
			continue
		}
		b.monitor.IncrDeliveries()
		delivered++
	}

	b.log.Debug("Message broadcast",
		"message_id", msg.ID,
		"sender_id", msg.SenderID,
		"recipients", len(recipients),
		"delivered", delivered)
	return delivered
}

func (b *Broadcaster) moderate(msg domain.Message) domain.Message {
	if b.moderator == nil {
		return msg
	}
	sanitized, words := b.moderator.Censor(msg.Content)
	if len(words) == 0 {
		return msg
	}
	b.monitor.IncrCensoredMessages()
	b.log.Debug("Message censored",
		"message_id", msg.ID,
		"sender_id", msg.SenderID,
		"words", len(words),
		"lang", moderation.DetectLanguage(msg.Content))
	msg.Content = sanitized
	return msg
}
