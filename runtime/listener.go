package runtime

import (
	"context"
	"fmt"
	"line-chat/contract"
	"line-chat/domain"
	"line-chat/errors"
	"line-chat/observability"
	"line-chat/transport"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const acceptRetryDelay = 50 * time.Millisecond

// Ensure *Listener implements the contract.Worker interface at compile time.
var _ contract.Worker = (*Listener)(nil)

// Listener accepts TCP clients, gives each one the next client id and runs
// its session in a dedicated goroutine.
type Listener struct {
	log          *slog.Logger
	registry     contract.IRegistry
	broadcaster  contract.IBroadcaster
	monitor      *observability.Monitor
	status       chan<- domain.StatusEvent
	writeTimeout time.Duration

	// lastID is the only serialization point between concurrent accepts.
	lastID atomic.Int64

	mu        sync.Mutex
	listener  net.Listener
	closed    bool
	closeDone chan struct{}
	sessions  sync.WaitGroup
}

func NewListener(log *slog.Logger, registry contract.IRegistry, broadcaster contract.IBroadcaster,
	monitor *observability.Monitor, status chan<- domain.StatusEvent, writeTimeout time.Duration) *Listener {
	return &Listener{
		log:          log,
		registry:     registry,
		broadcaster:  broadcaster,
		monitor:      monitor,
		status:       status,
		writeTimeout: writeTimeout,
		closeDone:    make(chan struct{}),
	}
}

// Listen binds the listening socket. Port 0 picks a free port, see Addr.
func (l *Listener) Listen(host string, port int) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("%w on %s: %v", errors.ErrBind, address, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.listener != nil || l.closed {
		_ = ln.Close()
		return fmt.Errorf("%w on %s: listener already used", errors.ErrBind, address)
	}
	l.listener = ln

	bound := ln.Addr().(*net.TCPAddr).Port
	l.log.Info("Listening", "address", ln.Addr().String())
	publish(l.log, l.status, domain.NewStatusEvent(domain.ServerStarted).WithPort(bound))
	return nil
}

// Addr returns the bound address, nil before Listen.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Run serves until ctx is canceled, then closes the listener and every session.
func (l *Listener) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = l.Close()
	})
	defer stop()
	return l.Serve()
}

// Serve is the accept loop. It returns nil once Close has been called and
// every session goroutine has finished.
func (l *Listener) Serve() error {
	l.mu.Lock()
	ln := l.listener
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return errors.ErrListenerClosed
	}
	if ln == nil {
		return errors.ErrNotListening
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if l.isClosed() {
				<-l.closeDone
				l.sessions.Wait()
				l.log.Info("Listener stopped")
				return nil
			}
			l.monitor.IncrAcceptErrors()
			l.log.Error("Accept failed", "error", err)
			publish(l.log, l.status, domain.NewStatusEvent(domain.AcceptFailed).WithErr(err))
			time.Sleep(acceptRetryDelay)
			continue
		}
		l.handle(conn)
	}
}

func (l *Listener) handle(conn net.Conn) {
	id := l.nextClientID()
	session := NewSession(l.log, id, transport.NewConn(conn, l.writeTimeout),
		l.registry, l.broadcaster, l.monitor, l.status)

	// Registration happens under mu so that Close either sees the session in
	// the registry or the session sees the listener closed.
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		session.Terminate()
		return
	}
	session.Register()
	l.sessions.Add(1)
	l.mu.Unlock()

	l.monitor.IncrClientsAccepted()

	go func() {
		defer l.sessions.Done()
		defer func() {
			if r := recover(); r != nil {
				l.log.Error("Session panic", "client_id", id, "panic", r)
				session.Terminate()
			}
		}()
		session.Run()
	}()
}

func (l *Listener) nextClientID() domain.ClientID {
	return domain.ClientID(l.lastID.Add(1))
}

func (l *Listener) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close stops accepting and closes every connected client, which drives their
// sessions to Disconnected. It is safe to call more than once.
func (l *Listener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	var err error
	if l.listener != nil {
		err = l.listener.Close()
	}
	entries := l.registry.Snapshot()
	l.mu.Unlock()

	for _, e := range entries {
		_ = e.Conn.Close()
	}
	publish(l.log, l.status, domain.NewStatusEvent(domain.ServerStopped))
	close(l.closeDone)
	return err
}
