package server

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/simpleweb/config"
	"github.com/indigo-web/simpleweb/http/mime"
	"github.com/indigo-web/simpleweb/http/status"
	"github.com/indigo-web/simpleweb/internal/parser"
	"github.com/indigo-web/simpleweb/internal/render"
	"github.com/indigo-web/simpleweb/internal/resource"
	"github.com/indigo-web/simpleweb/internal/serializer"
	"github.com/indigo-web/simpleweb/transport"
	"github.com/indigo-web/utils/buffer"
)

// connIDLength is the length of random connection identifiers attached to log records.
const connIDLength = 8

// Server handles connections, exactly one request per connection. It holds nothing but
// read-only configuration, so a single instance may serve any number of connections
// concurrently: everything mutable is allocated per connection.
type Server struct {
	cfg    *config.Config
	root   fs.FS
	logger *slog.Logger
	now    func() time.Time
}

// New returns a server resolving resources against root. Nil logger discards all the
// records.
func New(cfg *config.Config, root fs.FS, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Server{
		cfg:    cfg,
		root:   root,
		logger: logger,
		now:    time.Now,
	}
}

// Clock replaces the source of the current time.
func (s *Server) Clock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Serve is the callback for transports.
func (s *Server) Serve(conn net.Conn) {
	s.Run(transport.NewClient(
		conn, s.cfg.NET.ReadTimeout, make([]byte, s.cfg.NET.ReadBufferSize),
	))
}

// Run handles a single request on the client and closes it afterward, no matter whether
// the request was handled successfully.
func (s *Server) Run(client transport.Client) {
	logger := s.logger.With(
		slog.String("conn", uniuri.NewLen(connIDLength)),
		slog.String("remote", client.Remote().String()),
	)
	logger.Debug("handling connection")

	if err := s.HandleRequest(client, logger); err != nil {
		logger.Warn("connection abandoned", slog.Any("err", err))
	}

	_ = client.Close()
	logger.Debug("done handling connection")
}

// HandleRequest reads the request header block and writes the response. Returned errors
// are connection-level ones: nothing or only a part of the response was delivered. If the
// request was rejected for being too slow or too long, the client is told so on the best
// effort basis.
func (s *Server) HandleRequest(client transport.Client, logger *slog.Logger) error {
	request, err := s.readRequest(client)
	if err != nil {
		var httpErr status.HTTPError
		if errors.As(err, &httpErr) {
			s.respondError(client, httpErr.Code)
		}

		return fmt.Errorf("read request: %w", err)
	}

	res := resource.New(request.Path)
	exists := res.Exists(s.root)
	ct := mime.Resolve(res.Path, exists)
	mode := render.Select(res, exists, ct)

	code := status.OK
	if mode == render.Missing {
		code = status.NotFound
	}

	logger.Info("request",
		slog.String("path", res.Path),
		slog.Int("status", int(code)),
		slog.String("content-type", ct.MIME),
		slog.String("mode", mode.String()),
	)

	now := s.now()
	if err = s.newSerializer().Write(code, ct, now, client); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	err = render.New(s.cfg).Render(mode, res, s.root, now, client)
	switch {
	case err == nil:
	case render.IsResourceError(err):
		// the header is already sent, so the best we can do is to leave the body as it is
		logger.Warn("resource failed", slog.String("path", res.Path), slog.Any("err", err))
	default:
		return fmt.Errorf("write body: %w", err)
	}

	return nil
}

// respondError writes the error response, ignoring failures: the connection is about to
// be abandoned anyway.
func (s *Server) respondError(client transport.Client, code status.Code) {
	if err := s.newSerializer().Write(code, mime.TypeHTML, s.now(), client); err != nil {
		return
	}

	_ = render.ErrorPage(code, client)
}

func (s *Server) newSerializer() *serializer.Serializer {
	return serializer.New(make([]byte, 0, s.cfg.HTTP.ResponseBufferSize), s.cfg)
}

func (s *Server) readRequest(client transport.Client) (parser.Request, error) {
	lineSize := s.cfg.URI.RequestLineSize
	p := parser.New(buffer.New(lineSize.Default, lineSize.Maximal))

	for {
		data, err := client.Read()
		if len(data) > 0 {
			state, perr := p.Parse(data)
			switch state {
			case parser.Pending:
			case parser.HeadersCompleted:
				// the request body, if any, is never read
				return p.Request(), nil
			case parser.Error:
				return parser.Request{}, perr
			}
		}

		if err != nil {
			return parser.Request{}, err
		}
	}
}
