package transport

import (
	"net"

	"github.com/indigo-web/simpleweb/config"
)

// Transport accepts connections on a bound address and hands every one of them to the
// callback in its own goroutine.
type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Addr() net.Addr
	Stop()
	Close()
	Wait()
}
