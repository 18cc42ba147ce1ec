package client_test

import (
	"context"
	"line-chat/client"
	"line-chat/errors"
	"line-chat/observability"
	"line-chat/projection"
	"line-chat/runtime"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

func startServer(t *testing.T) (*runtime.Listener, *runtime.Registry, int) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := runtime.NewRegistry()
	monitor := observability.NewMonitor()
	listener := runtime.NewListener(log, registry, runtime.NewBroadcaster(log, registry, monitor, nil), monitor, nil, 0)
	require.NoError(t, listener.Listen("127.0.0.1", 0))

	done := make(chan struct{})
	go func() {
		_ = listener.Serve()
		close(done)
	}()
	t.Cleanup(func() {
		_ = listener.Close()
		<-done
	})
	return listener, registry, listener.Addr().(*net.TCPAddr).Port
}

func newClient(t *testing.T) (*client.ChatClient, *projection.Transcript) {
	t.Helper()
	transcript := projection.NewTranscript()
	c := client.NewChatClient(logs.GetLoggerFromLevel(slog.LevelDebug), transcript)
	t.Cleanup(func() { _ = c.Close() })
	return c, transcript
}

func TestChatClient_Scenario_Unreachable_Server(t *testing.T) {
	req := require.New(t)

	// Given a port nobody listens on
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)
	port := ln.Addr().(*net.TCPAddr).Port
	req.NoError(ln.Close())

	c, transcript := newClient(t)

	// When connecting
	err = c.Connect(context.Background(), "127.0.0.1", port)

	// Then a connect error is reported and nothing was received
	req.ErrorIs(err, errors.ErrConnect)
	req.Zero(transcript.Len())
	req.False(c.Connected())
}

func TestChatClient_Receives_Broadcasts(t *testing.T) {
	req := require.New(t)
	_, registry, port := startServer(t)
	ctx := context.Background()

	alice, aliceTranscript := newClient(t)
	bob, bobTranscript := newClient(t)
	req.NoError(alice.Connect(ctx, "127.0.0.1", port))
	req.Eventually(func() bool { return registry.Len() == 1 }, waitFor, tick)
	req.NoError(bob.Connect(ctx, "127.0.0.1", port))
	req.Eventually(func() bool { return registry.Len() == 2 }, waitFor, tick)

	// When alice talks twice
	req.NoError(alice.Send("hi"))
	req.NoError(alice.Send("how are you?"))

	// Then bob's transcript holds both lines in order
	req.Eventually(func() bool { return bobTranscript.Len() == 2 }, waitFor, tick)
	req.Equal([]string{"Client 1: hi", "Client 1: how are you?"}, bobTranscript.Lines())

	// And alice never hears herself
	req.NoError(bob.Send("fine"))
	req.Eventually(func() bool { return aliceTranscript.Len() == 1 }, waitFor, tick)
	req.Equal([]string{"Client 2: fine"}, aliceTranscript.Lines())
}

func TestChatClient_Send_Flattens_Line_Breaks(t *testing.T) {
	req := require.New(t)
	_, registry, port := startServer(t)
	ctx := context.Background()

	alice, _ := newClient(t)
	bob, bobTranscript := newClient(t)
	req.NoError(alice.Connect(ctx, "127.0.0.1", port))
	req.NoError(bob.Connect(ctx, "127.0.0.1", port))
	req.Eventually(func() bool { return registry.Len() == 2 }, waitFor, tick)

	req.NoError(alice.Send("two\nlines"))

	req.Eventually(func() bool { return bobTranscript.Len() == 1 }, waitFor, tick)
	req.Contains(bobTranscript.Lines()[0], ": two lines")
}

func TestChatClient_Send_Errors(t *testing.T) {
	req := require.New(t)
	_, _, port := startServer(t)
	c, _ := newClient(t)

	// Before connecting
	req.ErrorIs(c.Send("hello"), errors.ErrNotConnected)

	req.NoError(c.Connect(context.Background(), "127.0.0.1", port))
	req.True(c.Connected())

	// Blank text never reaches the wire
	req.ErrorIs(c.Send("   "), errors.ErrEmptyMessage)
	req.ErrorIs(c.Send(""), errors.ErrEmptyMessage)

	// A second connect is refused
	req.ErrorIs(c.Connect(context.Background(), "127.0.0.1", port), errors.ErrAlreadyConnected)

	// After close
	req.NoError(c.Close())
	req.NoError(c.Close())
	req.ErrorIs(c.Send("hello"), errors.ErrClientClosed)
	req.ErrorIs(c.Connect(context.Background(), "127.0.0.1", port), errors.ErrClientClosed)
}

func TestChatClient_Closed_When_Server_Stops(t *testing.T) {
	req := require.New(t)
	listener, registry, port := startServer(t)
	c, _ := newClient(t)
	req.NoError(c.Connect(context.Background(), "127.0.0.1", port))
	req.Eventually(func() bool { return registry.Len() == 1 }, waitFor, tick)

	// When the server shuts down
	req.NoError(listener.Close())

	// Then the receive loop ends and the client is closed for good
	select {
	case <-c.Done():
	case <-time.After(waitFor):
		req.Fail("client did not notice the server shutdown")
	}
	req.False(c.Connected())
	req.ErrorIs(c.Send("anyone?"), errors.ErrClientClosed)
}

func TestChatClient_Connect_Honours_Context(t *testing.T) {
	req := require.New(t)
	c, _ := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Connect(ctx, "127.0.0.1", client.DefaultPort)

	req.ErrorIs(err, errors.ErrConnect)
}
