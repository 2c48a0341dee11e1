package dummy

import (
	"errors"
	"io"
	"net"

	"github.com/indigo-web/simpleweb/transport"
)

var _ transport.Client = new(Client)

// ErrWriteFailed is returned by a client, configured to fail writes.
var ErrWriteFailed = errors.New("dummy: write failed")

// Client returns pieces of data it was initialised with, one per read, and io.EOF once
// they're over. It also tracks all the written data, making it thereby a universal mock
// suitable for most of the tests.
type Client struct {
	closed     bool
	pointer    int
	failAfter  int
	written    []byte
	data       [][]byte
	closeCalls int
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:      data,
		failAfter: -1,
	}
}

func (c *Client) Read() ([]byte, error) {
	if c.closed {
		return nil, io.EOF
	}

	if c.pointer >= len(c.data) {
		return nil, io.EOF
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Write(p []byte) (int, error) {
	if c.failAfter >= 0 && len(c.written)+len(p) > c.failAfter {
		return 0, ErrWriteFailed
	}

	c.written = append(c.written, p...)
	return len(p), nil
}

func (*Client) Remote() net.Addr {
	return &net.TCPAddr{}
}

func (c *Client) Close() error {
	c.closed = true
	c.closeCalls++
	return nil
}

// FailWritesAfter makes every write fail once the client has accumulated n bytes.
func (c *Client) FailWritesAfter(n int) *Client {
	c.failAfter = n
	return c
}

// Written returns everything written so far.
func (c *Client) Written() string {
	return string(c.written)
}

// Closed reports how many times Close was called.
func (c *Client) Closed() int {
	return c.closeCalls
}
