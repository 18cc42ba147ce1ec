// Package transport adapts raw TCP sockets to the line oriented Connection contract.
package transport

import (
	"bufio"
	"errors"
	"io"
	"line-chat/contract"
	"net"
	"strings"
	"sync"
	"time"
)

// Ensure *Conn implements the contract.Connection interface at compile time.
var _ contract.Connection = (*Conn)(nil)

// Conn wraps one net.Conn.
//
// Reads are expected from a single goroutine. Writes take writeMu so that two
// concurrent broadcasts never interleave partial lines on the wire.
// Close is idempotent.
type Conn struct {
	conn         net.Conn
	reader       *bufio.Reader
	remoteAddr   string
	writeTimeout time.Duration

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps conn. A zero writeTimeout means writes never time out.
func NewConn(conn net.Conn, writeTimeout time.Duration) *Conn {
	remote := ""
	if addr := conn.RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	return &Conn{
		conn:         conn,
		reader:       bufio.NewReader(conn),
		remoteAddr:   remote,
		writeTimeout: writeTimeout,
	}
}

// ReadLine blocks until a full line, EOF or an error.
// The line terminator (\n or \r\n) is stripped. A final line without a
// terminator is still returned, EOF is reported on the next call.
func (c *Conn) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

// WriteLine appends a newline and writes the line in a single call.
func (c *Conn) WriteLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.conn, line+"\n")
	return err
}

func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *Conn) RemoteAddr() string {
	return c.remoteAddr
}

// HostOf returns the host part of addr, or addr itself when it has no port.
func HostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func trimEOL(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}
