package dummy

import (
	"bytes"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is an in-memory connection. Reads drain the data it was created with, writes are
// accumulated.
type Conn struct {
	Data   []byte
	input  *bytes.Reader
	closed bool
}

func NewConn(input []byte) *Conn {
	return &Conn{
		input: bytes.NewReader(input),
	}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.input == nil {
		c.input = bytes.NewReader(nil)
	}

	return c.input.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.Data = append(c.Data, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (c *Conn) IsClosed() bool {
	return c.closed
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
