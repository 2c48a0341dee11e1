package simpleweb

import (
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"

	"github.com/indigo-web/simpleweb/config"
	"github.com/indigo-web/simpleweb/internal/server"
	"github.com/indigo-web/simpleweb/transport"
)

// App is a file server listening on one or more addresses.
type App struct {
	addrs      []string
	cfg        *config.Config
	root       fs.FS
	logger     *slog.Logger
	hooks      hooks
	supervisor *transport.Supervisor
}

// New returns a new App instance listening on the address.
func New(addr string) *App {
	return &App{
		addrs:      []string{addr},
		cfg:        config.Default(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		supervisor: transport.NewSupervisor(),
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Root sets the filesystem resources are resolved against. Defaults to the working
// directory of the process.
func (a *App) Root(fsys fs.FS) *App {
	a.root = fsys
	return a
}

// Logger sets the logger. By default, nothing is logged.
func (a *App) Logger(logger *slog.Logger) *App {
	a.logger = logger
	return a
}

// Listen adds one more address to listen on.
func (a *App) Listen(addr string) *App {
	a.addrs = append(a.addrs, addr)
	return a
}

// NotifyOnStart calls the callback at the moment, when all the listeners are bound.
// Addrs() is safe to be called from this moment on.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the listeners are down and
// all the clients are served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve binds all the addresses and serves connections until either Stop is called or
// any of the listeners fails.
func (a *App) Serve() error {
	root := a.root
	if root == nil {
		root = os.DirFS(".")
	}

	srv := server.New(a.cfg, root, a.logger)

	for _, addr := range a.addrs {
		if err := a.supervisor.Add(addr, transport.NewTCP(), srv.Serve); err != nil {
			return err
		}
	}

	for _, addr := range a.supervisor.Addrs() {
		a.logger.Info("listening", slog.String("addr", addr.String()))
	}

	callIfNotNil(a.hooks.OnStart)
	err := a.supervisor.Run(a.cfg.NET)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Addrs returns the addresses the application is actually bound to. Useful when
// listening on port 0.
func (a *App) Addrs() []net.Addr {
	return a.supervisor.Addrs()
}

// Stop stops accepting new connections and waits until the accepted ones are served.
// It may be called concurrently with a listener failure and any number of times, but
// only once Serve got past binding, e.g. from the NotifyOnStart callback onwards.
func (a *App) Stop() {
	a.supervisor.Stop()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
