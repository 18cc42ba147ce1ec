// Package client is the client side of the line chat: one persistent
// connection, a background receive loop feeding a Transcript, and Send.
package client

import (
	"context"
	"fmt"
	"line-chat/contract"
	"line-chat/domain"
	"line-chat/errors"
	"line-chat/transport"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
)

const (
	// DefaultHost is the host loopback as seen from an Android emulator.
	DefaultHost = "10.0.2.2"
	DefaultPort = 8080
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ChatClient holds a single connection to the chat server. It is not
// reconnected: once the stream ends the client stays closed.
type ChatClient struct {
	log        *slog.Logger
	transcript contract.TranscriptSink

	mu     sync.Mutex
	conn   contract.Connection
	closed bool
	done   chan struct{}
}

func NewChatClient(log *slog.Logger, transcript contract.TranscriptSink) *ChatClient {
	return &ChatClient{
		log:        log,
		transcript: transcript,
		done:       make(chan struct{}),
	}
}

// Connect dials the server and starts receiving in the background.
func (c *ChatClient) Connect(ctx context.Context, host string, port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.ErrClientClosed
	}
	if c.conn != nil {
		return errors.ErrAlreadyConnected
	}

	address := net.JoinHostPort(host, strconv.Itoa(port))
	var dialer net.Dialer
	raw, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("%w %s: %v", errors.ErrConnect, address, err)
	}
	c.conn = transport.NewConn(raw, 0)
	c.log.Info("Connected", "address", address)

	go c.receive(c.conn)
	return nil
}

func (c *ChatClient) receive(conn contract.Connection) {
	defer c.shutdown()
	for {
		line, err := conn.ReadLine()
		if err != nil {
			c.log.Debug("Receive loop ended", "reason", err)
			return
		}
		c.transcript.Append(line)
	}
}

// Send writes text as one line. Line breaks inside text are flattened so a
// single call never turns into several messages.
func (c *ChatClient) Send(text string) error {
	if domain.IsBlank(text) {
		return errors.ErrEmptyMessage
	}

	c.mu.Lock()
	conn, closed := c.conn, c.closed
	c.mu.Unlock()
	if closed {
		return errors.ErrClientClosed
	}
	if conn == nil {
		return errors.ErrNotConnected
	}

	if err := conn.WriteLine(lineBreaks.Replace(text)); err != nil {
		c.shutdown()
		return fmt.Errorf("%w: %v", errors.ErrClientClosed, err)
	}
	return nil
}

// Close releases the connection. It is safe to call more than once and
// before Connect.
func (c *ChatClient) Close() error {
	c.shutdown()
	return nil
}

// Done is closed once the client is closed, whatever the cause.
func (c *ChatClient) Done() <-chan struct{} {
	return c.done
}

func (c *ChatClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil && !c.closed
}

func (c *ChatClient) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.conn != nil {
		_ = c.conn.Close()
	}
	close(c.done)
}
