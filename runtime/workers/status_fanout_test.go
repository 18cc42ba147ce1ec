package workers

import (
	"context"
	"fmt"
	"line-chat/domain"
	"line-chat/mocks"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatusFanout_Delivers_To_Every_Sink_In_Order(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	first := mocks.NewMockStatusSink(ctrl)
	second := mocks.NewMockStatusSink(ctrl)

	events := make(chan domain.StatusEvent, 3)
	events <- domain.NewStatusEvent(domain.ServerStarted).WithPort(8080)
	events <- domain.NewStatusEvent(domain.ClientConnected).WithClient(1, "10.0.0.1")
	events <- domain.NewStatusEvent(domain.ServerStopped)
	close(events)

	var seen []domain.StatusKind
	record := func(ctx context.Context, e domain.StatusEvent) error {
		seen = append(seen, e.Kind)
		return nil
	}
	// Given two sinks, the first one failing every time
	first.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full")).Times(3)
	second.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(record).Times(3)

	// When the channel is drained
	err := NewStatusFanout(log, events, first, second).Run(context.Background())

	// Then the second sink still saw every event in order
	req.NoError(err)
	req.Equal([]domain.StatusKind{domain.ServerStarted, domain.ClientConnected, domain.ServerStopped}, seen)
}

func TestStatusFanout_Stops_On_Context_Cancel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	events := make(chan domain.StatusEvent)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewStatusFanout(log, events).Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("fanout did not stop")
	}
}

func TestStatusFanout_Sink_Timeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	slow := mocks.NewMockStatusSink(ctrl)

	// Given a sink blocking until its context expires
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e domain.StatusEvent) error {
			<-ctx.Done()
			return ctx.Err()
		}).Times(1)

	fanout := NewStatusFanout(log, nil, slow).WithSinkTimeout(20 * time.Millisecond)

	// When an event is fanned out
	start := time.Now()
	fanout.Fanout(context.Background(), domain.NewStatusEvent(domain.ServerStopped))

	// Then the fanout is released by the timeout
	req.Less(time.Since(start), time.Second)
}
