package transport

import (
	"net"
	"sync"

	"github.com/indigo-web/simpleweb/config"
)

// Supervisor serves several bound transports at once. The first one to fail takes all
// the rest down with it.
type Supervisor struct {
	bound    []boundTransport
	stopOnce sync.Once
	stopping chan struct{}
	done     chan struct{}
}

func NewSupervisor() *Supervisor {
	return &Supervisor{
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

type boundTransport struct {
	transport Transport
	cb        func(conn net.Conn)
}

// Add binds the transport to the address. On failure, all the previously added transports
// are closed.
func (s *Supervisor) Add(addr string, transport Transport, cb func(net.Conn)) error {
	if err := transport.Bind(addr); err != nil {
		s.closeAll()
		return err
	}

	s.bound = append(s.bound, boundTransport{
		transport: transport,
		cb:        cb,
	})

	return nil
}

// Addrs returns addresses of all the bound transports.
func (s *Supervisor) Addrs() []net.Addr {
	addrs := make([]net.Addr, 0, len(s.bound))
	for _, b := range s.bound {
		addrs = append(addrs, b.transport.Addr())
	}

	return addrs
}

// Run blocks until either any of the transports fails or Stop is called. In both cases,
// it waits until every accepted connection is served and closes the listeners before
// returning. The error is the one of the failed transport, if any.
func (s *Supervisor) Run(cfg config.NET) error {
	defer close(s.done)

	if len(s.bound) == 0 {
		return nil
	}

	// buffered, so transports exiting after the first failure are never blocked
	errch := make(chan error, len(s.bound))
	for _, b := range s.bound {
		go func(b boundTransport) {
			errch <- b.transport.Listen(cfg, b.cb)
		}(b)
	}

	running := len(s.bound)
	var err error

	select {
	case err = <-errch:
		running--
	case <-s.stopping:
	}

	for _, b := range s.bound {
		b.transport.Stop()
	}

	for ; running > 0; running-- {
		<-errch
	}

	for _, b := range s.bound {
		b.transport.Wait()
	}

	s.closeAll()

	return err
}

// Stop makes Run return and waits until it does. It's safe to call multiple times and
// concurrently with a transport failure. Calling it without Run ever being called blocks
// forever.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopping)
	})

	<-s.done
}

func (s *Supervisor) closeAll() {
	for _, b := range s.bound {
		b.transport.Close()
	}
}
