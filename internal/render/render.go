package render

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/indigo-web/simpleweb/config"
	"github.com/indigo-web/simpleweb/http/mime"
	"github.com/indigo-web/simpleweb/http/status"
	"github.com/indigo-web/simpleweb/internal/resource"
	"github.com/indigo-web/utils/uf"
)

const (
	homePage = "<html><head></head><body>\n" +
		"<h3>My web server works!</h3>\n" +
		"</body></html>\n"
	notFoundPage = "<html><head></head><body>\n" +
		"<h3>404 Not Found</h3>\n" +
		"</body></html>\n"
	errorPageFormat = "<html><head></head><body>\n" +
		"<h3>%d %s</h3>\n" +
		"</body></html>\n"
)

var (
	// ErrResourceVanished is returned when a resource that was reported existing fails
	// to open. The header is already sent by then, so the body is just left empty.
	ErrResourceVanished = errors.New("resource vanished after the existence check")
	// ErrResourceUnreadable is returned when reading an opened resource fails midway.
	ErrResourceUnreadable = errors.New("resource is unreadable")
)

// Mode is the way a response body is produced.
type Mode uint8

const (
	// Home is the synthesized home page.
	Home Mode = iota
	// Missing is the synthesized 404 page.
	Missing
	// Text is an HTML resource with placeholders substituted.
	Text
	// Binary is a resource copied verbatim.
	Binary
)

func (m Mode) String() string {
	switch m {
	case Home:
		return "home"
	case Missing:
		return "missing"
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Select picks the render mode. It must be called with the same existence flag the
// content type was resolved with.
func Select(res resource.Resource, exists bool, ct mime.ContentType) Mode {
	switch {
	case res.IsHome():
		return Home
	case !exists:
		return Missing
	case ct.Kind == mime.Image:
		return Binary
	default:
		return Text
	}
}

// IsResourceError reports whether the error was caused by the resource itself rather
// than by the connection. Such errors don't affect the response: whatever was written
// stays as it is and the connection is closed normally.
func IsResourceError(err error) bool {
	return errors.Is(err, ErrResourceVanished) || errors.Is(err, ErrResourceUnreadable)
}

// Renderer writes response bodies. It isn't safe for concurrent use, every connection
// owns its own one.
type Renderer struct {
	template config.Template
	location *time.Location
	// fileBuff isn't allocated until needed in order to save memory in cases,
	// where no images are being sent
	fileBuff     []byte
	fileBuffSize int
	textBuffSize int
}

func New(cfg *config.Config) *Renderer {
	return &Renderer{
		template:     cfg.Template,
		location:     cfg.Time.Location(),
		fileBuffSize: cfg.HTTP.FileBufferSize,
		textBuffSize: cfg.HTTP.TextBufferSize,
	}
}

// ErrorPage writes the page for requests that couldn't be read.
func ErrorPage(code status.Code, w io.Writer) error {
	_, err := fmt.Fprintf(w, errorPageFormat, code, status.Text(code))
	return err
}

// Render writes the body of the resource in the given mode.
func (r *Renderer) Render(mode Mode, res resource.Resource, fsys fs.FS, now time.Time, w io.Writer) error {
	switch mode {
	case Home:
		_, err := io.WriteString(w, homePage)
		return err
	case Missing:
		_, err := io.WriteString(w, notFoundPage)
		return err
	}

	file, err := res.Open(fsys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResourceVanished, err)
	}

	defer file.Close()

	if mode == Binary {
		return r.renderBinary(file, w)
	}

	return r.renderText(file, now, w)
}

// renderText substitutes placeholders line by line. Line terminators are dropped unless
// Template.KeepLineBreaks is set. Lines longer than the text buffer are processed in
// pieces, holding back a tail that may turn out to be the beginning of a token.
func (r *Renderer) renderText(file io.Reader, now time.Time, w io.Writer) error {
	reader := bufio.NewReaderSize(file, r.textBuffSize)
	date := now.In(r.location).Format(r.template.DateLayout)
	var carry []byte

	for {
		piece, err := reader.ReadSlice('\n')
		text := piece
		if len(carry) > 0 {
			text = append(carry, piece...)
			carry = nil
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			cut := r.pieceBoundary(text)
			if werr := r.writeText(w, uf.B2S(text[:cut]), date); werr != nil {
				return werr
			}

			carry = append(carry, text[cut:]...)
			continue
		}

		content, terminator := cutTerminator(uf.B2S(text))
		if r.template.KeepLineBreaks {
			content += terminator
		}

		if werr := r.writeText(w, content, date); werr != nil {
			return werr
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("%w: %w", ErrResourceUnreadable, err)
		}
	}
}

func (r *Renderer) writeText(w io.Writer, text, date string) error {
	if len(text) == 0 {
		return nil
	}

	text = replace(text, r.template.ServerToken, r.template.ServerValue)
	text = replace(text, r.template.DateToken, date)
	_, err := w.Write(uf.S2B(text))
	return err
}

// pieceBoundary returns how much of an unfinished line can be written right away. The
// rest is either a prefix of a token or a carriage return, which might be a part of the
// line terminator.
func (r *Renderer) pieceBoundary(text []byte) int {
	cut := len(text)
	for _, token := range [...]string{r.template.ServerToken, r.template.DateToken} {
		for n := min(len(token)-1, len(text)); n > 0; n-- {
			if bytes.HasSuffix(text, uf.S2B(token[:n])) {
				cut = min(cut, len(text)-n)
				break
			}
		}
	}

	if cut == len(text) && cut > 0 && text[cut-1] == '\r' {
		cut--
	}

	return cut
}

func (r *Renderer) renderBinary(file io.Reader, w io.Writer) error {
	if len(r.fileBuff) == 0 {
		r.fileBuff = make([]byte, r.fileBuffSize)
	}

	for {
		n, err := file.Read(r.fileBuff)
		if n > 0 {
			if _, werr := w.Write(r.fileBuff[:n]); werr != nil {
				return werr
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("%w: %w", ErrResourceUnreadable, err)
		}
	}
}

func cutTerminator(line string) (content, terminator string) {
	if !strings.HasSuffix(line, "\n") {
		return line, ""
	}

	cut := len(line) - 1
	if cut > 0 && line[cut-1] == '\r' {
		cut--
	}

	return line[:cut], line[cut:]
}

func replace(s, token, value string) string {
	if len(token) == 0 {
		return s
	}

	return strings.ReplaceAll(s, token, value)
}
