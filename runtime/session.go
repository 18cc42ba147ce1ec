package runtime

import (
	"errors"
	"io"
	"line-chat/contract"
	"line-chat/domain"
	"line-chat/observability"
	"line-chat/transport"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
)

// Session is the server side lifetime of one accepted connection.
//
// Connecting -> Connected happens in Register, Connected -> Disconnected in
// Terminate, which runs once whatever triggers it: end of stream, read error
// or listener shutdown.
type Session struct {
	ID         domain.ClientID
	RemoteAddr string

	log         *slog.Logger
	conn        contract.Connection
	registry    contract.IRegistry
	broadcaster contract.IBroadcaster
	monitor     *observability.Monitor
	status      chan<- domain.StatusEvent

	state         atomic.Int32
	terminateOnce sync.Once
}

func NewSession(log *slog.Logger, id domain.ClientID, conn contract.Connection,
	registry contract.IRegistry, broadcaster contract.IBroadcaster,
	monitor *observability.Monitor, status chan<- domain.StatusEvent) *Session {
	s := &Session{
		ID:          id,
		RemoteAddr:  conn.RemoteAddr(),
		log:         log.With("client_id", id),
		conn:        conn,
		registry:    registry,
		broadcaster: broadcaster,
		monitor:     monitor,
		status:      status,
	}
	s.state.Store(int32(domain.Connecting))
	return s
}

func (s *Session) State() domain.SessionState {
	return domain.SessionState(s.state.Load())
}

// Register makes the session visible to broadcasters.
func (s *Session) Register() {
	if !s.state.CompareAndSwap(int32(domain.Connecting), int32(domain.Connected)) {
		return
	}
	s.registry.Add(s.ID, s.conn)
	s.log.Info("Client connected", "remote_addr", s.RemoteAddr)
	publish(s.log, s.status, domain.NewStatusEvent(domain.ClientConnected).
		WithClient(s.ID, transport.HostOf(s.RemoteAddr)))
}

// Run is the read loop. It returns once the stream ended or failed,
// after the session has been terminated.
func (s *Session) Run() {
	defer s.Terminate()

	for {
		line, err := s.conn.ReadLine()
		if err != nil {
			if isClosedStream(err) {
				s.log.Debug("Stream ended", "reason", err)
			} else {
				s.log.Warn("Read failed", "error", err)
			}
			return
		}
		s.broadcaster.Broadcast(domain.NewMessage(s.ID, line))
	}
}

// Terminate removes a registered session from the registry, closes the
// connection and reports the disconnection. Calling it more than once
// has no effect.
func (s *Session) Terminate() {
	s.terminateOnce.Do(func() {
		previous := domain.SessionState(s.state.Swap(int32(domain.Disconnected)))
		registered := previous == domain.Connected
		// Leave the registry first so no broadcast picks up a closed connection.
		if registered {
			s.registry.Remove(s.ID)
		}
		if err := s.conn.Close(); err != nil {
			s.log.Debug("Close failed", "error", err)
		}
		if !registered {
			return
		}
		s.monitor.IncrClientsDisconnected()
		s.log.Info("Client disconnected", "remote_addr", s.RemoteAddr)
		publish(s.log, s.status, domain.NewStatusEvent(domain.ClientDisconnected).
			WithClient(s.ID, transport.HostOf(s.RemoteAddr)))
	})
}

// isClosedStream tells a regular hang up apart from a real failure.
func isClosedStream(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
