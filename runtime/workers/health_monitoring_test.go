package workers

import (
	"context"
	"line-chat/mocks"
	"line-chat/observability"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHealthMonitor_Report(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	monitor := observability.NewMonitor()

	// Given two connected clients and one delivered message
	registry.EXPECT().Len().Return(2).Times(1)
	monitor.IncrClientsAccepted()
	monitor.IncrClientsAccepted()
	monitor.IncrMessagesReceived()
	monitor.IncrDeliveries()

	// When a report is taken
	report := NewHealthMonitor(log, registry, monitor, time.Minute).Report()

	// Then it carries the counters and this process
	req.Equal(2, report.Stats.Connected)
	req.Equal(uint64(2), report.Stats.ClientsAccepted)
	req.Equal(uint64(1), report.Stats.MessagesReceived)
	req.Equal(int32(os.Getpid()), report.PID)
}

func TestHealthMonitor_Run_Ticks_Until_Canceled(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)

	ticked := make(chan struct{}, 1)
	registry.EXPECT().Len().DoAndReturn(func() int {
		select {
		case ticked <- struct{}{}:
		default:
		}
		return 0
	}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewHealthMonitor(log, registry, observability.NewMonitor(), 10*time.Millisecond).Run(ctx)
	}()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		req.Fail("health monitor never ticked")
	}
	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("health monitor did not stop")
	}
}

func TestHealthMonitor_Report_Channel_Backlog(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	registry.EXPECT().Len().Return(0).AnyTimes()

	// Given a status channel 4/5 full and a value that is not a channel
	status := make(chan int, 5)
	for i := 0; i < 4; i++ {
		status <- i
	}
	monitor := NewHealthMonitor(log, registry, observability.NewMonitor(), time.Minute).
		WithChannels(NamedChannel{Name: "status", Channel: status}, NamedChannel{Name: "bogus", Channel: 42})

	// When a report is taken
	report := monitor.Report()

	// Then only the channel is sampled and it is congested
	req.Len(report.Queues, 1)
	req.Equal(ChannelUsage{Name: "status", Length: 4, Capacity: 5}, report.Queues[0])
	req.True(report.Queues[0].Congested())
}
