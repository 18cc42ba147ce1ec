package transport

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConn_ReadLine_Strips_Terminators(t *testing.T) {
	req := require.New(t)
	server, client := net.Pipe()
	conn := NewConn(server, 0)
	defer conn.Close()

	go func() {
		_, _ = io.WriteString(client, "hello\r\nworld\nlast")
		_ = client.Close()
	}()

	line, err := conn.ReadLine()
	req.NoError(err)
	req.Equal("hello", line)

	line, err = conn.ReadLine()
	req.NoError(err)
	req.Equal("world", line)

	// Then a final line without terminator is still delivered
	line, err = conn.ReadLine()
	req.NoError(err)
	req.Equal("last", line)

	// And EOF comes after
	_, err = conn.ReadLine()
	req.ErrorIs(err, io.EOF)
}

func TestConn_WriteLine_Concurrent_Writers_Never_Interleave(t *testing.T) {
	req := require.New(t)
	server, client := net.Pipe()
	conn := NewConn(server, 0)
	defer conn.Close()

	const writers = 8
	const perWriter = 25
	payload := strings.Repeat("x", 512)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = conn.WriteLine(payload)
			}
		}()
	}

	reader := bufio.NewReader(client)
	for i := 0; i < writers*perWriter; i++ {
		line, err := reader.ReadString('\n')
		req.NoError(err)
		req.Equal(payload+"\n", line)
	}
	wg.Wait()
}

func TestConn_Close_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	server, client := net.Pipe()
	defer client.Close()
	conn := NewConn(server, 0)

	req.NoError(conn.Close())
	req.NoError(conn.Close())

	// Then writing on a closed connection fails
	req.Error(conn.WriteLine("too late"))
}

func TestHostOf(t *testing.T) {
	req := require.New(t)
	req.Equal("192.168.1.12", HostOf("192.168.1.12:51000"))
	req.Equal("::1", HostOf("[::1]:8080"))
	req.Equal("pipe", HostOf("pipe"))
}
