package serializer

import (
	"io"
	"strconv"
	"time"

	"github.com/indigo-web/simpleweb/config"
	"github.com/indigo-web/simpleweb/http/mime"
	"github.com/indigo-web/simpleweb/http/status"
)

const (
	protocol    = "HTTP/1.1 "
	date        = "Date: "
	server      = "Server: "
	connection  = "Connection: close\r\n"
	contentType = "Content-Type: "
)

// Serializer renders the status line and the header block. Everything is accumulated in
// a buffer first and written with a single call, so no header byte is ever interleaved
// with the body.
//
// There's no Content-Length: the response is always the last one on the connection,
// so closing it marks the end of the body.
type Serializer struct {
	buff       []byte
	serverName string
	dateLayout string
	location   *time.Location
}

func New(buff []byte, cfg *config.Config) *Serializer {
	return &Serializer{
		buff:       buff[:0],
		serverName: cfg.HTTP.ServerName,
		dateLayout: cfg.HTTP.DateLayout,
		location:   cfg.Time.Location(),
	}
}

// Write renders the header block for the response with the given code and content type
// and writes it into w.
func (s *Serializer) Write(code status.Code, ct mime.ContentType, now time.Time, w io.Writer) error {
	defer s.clear()

	s.renderResponseLine(code)
	s.buff = append(s.buff, date...)
	s.buff = now.In(s.location).AppendFormat(s.buff, s.dateLayout)
	s.crlf()
	s.renderKnownHeader(server, s.serverName)
	s.buff = append(s.buff, connection...)
	s.renderKnownHeader(contentType, ct.MIME)
	s.crlf()

	_, err := w.Write(s.buff)
	return err
}

func (s *Serializer) renderResponseLine(code status.Code) {
	s.buff = append(s.buff, protocol...)
	s.buff = strconv.AppendInt(s.buff, int64(code), 10)
	s.sp()
	s.buff = append(s.buff, status.Text(code)...)
	s.crlf()
}

func (s *Serializer) renderKnownHeader(key, value string) {
	s.buff = append(append(s.buff, key...), value...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, '\r', '\n')
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
}
