package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonitor_Concurrent_Increments(t *testing.T) {
	req := require.New(t)
	monitor := NewMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			monitor.IncrClientsAccepted()
			monitor.IncrMessagesReceived()
			monitor.IncrDeliveries()
			monitor.IncrDeliveries()
		}()
	}
	wg.Wait()
	monitor.IncrDeliveryFailures()
	monitor.IncrAcceptErrors()
	monitor.IncrClientsDisconnected()
	monitor.IncrCensoredMessages()

	stats := monitor.Snapshot(7)
	req.Equal(7, stats.Connected)
	req.Equal(uint64(50), stats.ClientsAccepted)
	req.Equal(uint64(50), stats.MessagesReceived)
	req.Equal(uint64(100), stats.Deliveries)
	req.Equal(uint64(1), stats.DeliveryFailures)
	req.Equal(uint64(1), stats.AcceptErrors)
	req.Equal(uint64(1), stats.ClientsDisconnected)
	req.Equal(uint64(1), stats.CensoredMessages)
	req.GreaterOrEqual(stats.Uptime.Nanoseconds(), int64(0))
}
