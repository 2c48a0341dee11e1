package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/indigo-web/simpleweb"
)

func main() {
	var opts Opts
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}

		os.Exit(2)
	}

	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: opts.LogLevel.Level,
		}),
	)
	slog.SetDefault(logger)

	if err := run(&opts, logger); err != nil {
		logger.Error("server failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(opts *Opts, logger *slog.Logger) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	root, err := opts.RootDir()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := simpleweb.New(opts.Listen[0]).
		Tune(cfg).
		Root(os.DirFS(root)).
		Logger(logger)

	for _, addr := range opts.Listen[1:] {
		app.Listen(addr)
	}

	stopped := make(chan struct{})
	app.NotifyOnStart(func() {
		go func() {
			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				app.Stop()
			case <-stopped:
			}
		}()
	})
	app.NotifyOnStop(func() {
		close(stopped)
	})

	return app.Serve()
}
