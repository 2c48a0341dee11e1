package transport

import (
	"errors"
	"net"
	"os"
	"time"

	"github.com/indigo-web/simpleweb/http/status"
)

// Client is the server side of a single exchange: the request header block is read
// from it, then the response is written and the client is closed.
type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	Remote() net.Addr
	Close() error
}

type client struct {
	conn     net.Conn
	buff     []byte
	timeout  time.Duration
	deadline time.Time
}

// NewClient wraps the connection. The timeout bounds the whole header block rather than
// every single read, so a client sending a byte at a time can't hold the connection
// longer than that either. Zero timeout waits indefinitely.
func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		conn:    conn,
		buff:    buff,
		timeout: timeout,
	}
}

// Read returns the next piece of data. The returned slice is only valid until the next
// call. The deadline is armed on the first call.
func (c *client) Read() ([]byte, error) {
	if c.timeout > 0 && c.deadline.IsZero() {
		c.deadline = time.Now().Add(c.timeout)
		if err := c.conn.SetReadDeadline(c.deadline); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.buff)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		err = status.ErrRequestTimeout
	}

	return c.buff[:n], err
}

func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	return c.conn.Close()
}
