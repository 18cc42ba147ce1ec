package observability

import (
	"sync/atomic"
	"time"
)

// Stats is a point-in-time view of the server counters.
type Stats struct {
	Connected           int           `json:"connected"`
	ClientsAccepted     uint64        `json:"clients_accepted"`
	ClientsDisconnected uint64        `json:"clients_disconnected"`
	AcceptErrors        uint64        `json:"accept_errors"`
	MessagesReceived    uint64        `json:"messages_received"`
	Deliveries          uint64        `json:"deliveries"`
	DeliveryFailures    uint64        `json:"delivery_failures"`
	CensoredMessages    uint64        `json:"censored_messages"`
	Uptime              time.Duration `json:"uptime"`
}

// Monitor aggregates server counters updated from many goroutines.
type Monitor struct {
	ClientsAccepted     uint64
	ClientsDisconnected uint64
	AcceptErrors        uint64
	MessagesReceived    uint64
	Deliveries          uint64
	DeliveryFailures    uint64
	CensoredMessages    uint64
	StartedAt           time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{StartedAt: time.Now()}
}

func (m *Monitor) IncrClientsAccepted() {
	atomic.AddUint64(&m.ClientsAccepted, 1)
}

func (m *Monitor) IncrClientsDisconnected() {
	atomic.AddUint64(&m.ClientsDisconnected, 1)
}

func (m *Monitor) IncrAcceptErrors() {
	atomic.AddUint64(&m.AcceptErrors, 1)
}

func (m *Monitor) IncrMessagesReceived() {
	atomic.AddUint64(&m.MessagesReceived, 1)
}

func (m *Monitor) IncrDeliveries() {
	atomic.AddUint64(&m.Deliveries, 1)
}

func (m *Monitor) IncrDeliveryFailures() {
	atomic.AddUint64(&m.DeliveryFailures, 1)
}

func (m *Monitor) IncrCensoredMessages() {
	atomic.AddUint64(&m.CensoredMessages, 1)
}

// Snapshot reads every counter atomically. connected is supplied by the caller
// since the registry is the source of truth for live sessions.
func (m *Monitor) Snapshot(connected int) Stats {
	return Stats{
		Connected:           connected,
		ClientsAccepted:     atomic.LoadUint64(&m.ClientsAccepted),
		ClientsDisconnected: atomic.LoadUint64(&m.ClientsDisconnected),
		AcceptErrors:        atomic.LoadUint64(&m.AcceptErrors),
		MessagesReceived:    atomic.LoadUint64(&m.MessagesReceived),
		Deliveries:          atomic.LoadUint64(&m.Deliveries),
		DeliveryFailures:    atomic.LoadUint64(&m.DeliveryFailures),
		CensoredMessages:    atomic.LoadUint64(&m.CensoredMessages),
		Uptime:              time.Since(m.StartedAt),
	}
}
