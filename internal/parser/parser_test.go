package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/simpleweb/config"
	"github.com/indigo-web/simpleweb/http/status"
	"github.com/indigo-web/utils/buffer"
	"github.com/stretchr/testify/require"
)

var (
	simpleGET       = []byte("GET / HTTP/1.1\r\n\r\n")
	simpleGETOnlyLF = []byte("GET /index.html HTTP/1.1\nHost: localhost\n\n")
	biggerGET       = []byte("GET /images/cat.png HTTP/1.1\r\nHost: localhost\r\nAccept: */*\r\n\r\n")
	twoGETs         = []byte("GET /first.html HTTP/1.1\r\nGET /second.html HTTP/1.1\r\n\r\n")
	noGET           = []byte("POST /form HTTP/1.1\r\nHost: localhost\r\n\r\n")
	shortGET        = []byte("GET /a\r\nHost: localhost\r\n\r\n")
	getWithBody     = []byte("GET /a.html HTTP/1.1\r\n\r\nsome leftovers")
)

func getParser() *Parser {
	s := config.Default().URI.RequestLineSize

	return New(buffer.New(s.Default, s.Maximal))
}

func splitIntoParts(req []byte, n int) (parts [][]byte) {
	for i := 0; i < len(req); i += n {
		end := i + n
		if end > len(req) {
			end = len(req)
		}

		parts = append(parts, req[i:end])
	}

	return parts
}

func feedPartially(t *testing.T, p *Parser, raw []byte, n int) RequestState {
	for _, part := range splitIntoParts(raw, n) {
		state, err := p.Parse(part)
		require.NoError(t, err)

		if state == HeadersCompleted {
			return state
		}

		require.Equal(t, Pending, state)
	}

	return Pending
}

func TestParser(t *testing.T) {
	t.Run("simple GET", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse(simpleGET)
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, Request{Path: "/", Found: true}, p.Request())
	})

	t.Run("only LF", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse(simpleGETOnlyLF)
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, "/index.html", p.Request().Path)
	})

	t.Run("headers are discarded", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse(biggerGET)
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, "/images/cat.png", p.Request().Path)
	})

	t.Run("first GET wins", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse(twoGETs)
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, "/first.html", p.Request().Path)
	})

	t.Run("no GET line", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse(noGET)
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, Request{}, p.Request())
	})

	t.Run("too short GET line", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse(shortGET)
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, Request{Found: true}, p.Request())
	})

	t.Run("body is ignored", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse(getWithBody)
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, "/a.html", p.Request().Path)
	})

	t.Run("incomplete", func(t *testing.T) {
		p := getParser()
		state, err := p.Parse([]byte("GET /index.html HTTP/1.1\r\nHost: localhost\r\n"))
		require.NoError(t, err)
		require.Equal(t, Pending, state)
	})

	t.Run("by pieces", func(t *testing.T) {
		for n := 1; n < len(biggerGET); n++ {
			p := getParser()
			state := feedPartially(t, p, biggerGET, n)
			require.Equal(t, HeadersCompleted, state, n)
			require.Equal(t, "/images/cat.png", p.Request().Path, n)
		}
	})

	t.Run("body is ignored by pieces", func(t *testing.T) {
		for n := 1; n < len(getWithBody); n++ {
			p := getParser()
			state := feedPartially(t, p, getWithBody, n)
			require.Equal(t, HeadersCompleted, state, n)
			require.Equal(t, "/a.html", p.Request().Path, n)
		}
	})

	t.Run("many random headers", func(t *testing.T) {
		var headers []string
		for range 50 {
			headers = append(headers, fmt.Sprintf("%s: some value", uniuri.New()))
		}

		raw := "GET /page.html HTTP/1.1\r\n" + strings.Join(headers, "\r\n") + "\r\n\r\n"
		p := getParser()
		state, err := p.Parse([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, "/page.html", p.Request().Path)
	})

	t.Run("too long line", func(t *testing.T) {
		p := New(buffer.New(16, 32))
		state, err := p.Parse([]byte("GET /" + strings.Repeat("a", 64)))
		require.ErrorIs(t, err, status.ErrTooLongRequestLine)
		require.Equal(t, Error, state)
	})

	t.Run("too long line by pieces", func(t *testing.T) {
		p := New(buffer.New(16, 32))
		_, err := p.Parse([]byte("GET /" + strings.Repeat("a", 20)))
		require.NoError(t, err)
		state, err := p.Parse([]byte(strings.Repeat("a", 20) + "\r\n"))
		require.ErrorIs(t, err, status.ErrTooLongRequestLine)
		require.Equal(t, Error, state)
	})

	t.Run("line limit is per line", func(t *testing.T) {
		p := New(buffer.New(16, 32))
		raw := "GET /a.html HTTP/1.1\r\n" + strings.Repeat("X-Header: value\r\n", 10) + "\r\n"
		state, err := p.Parse([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, HeadersCompleted, state)
		require.Equal(t, "/a.html", p.Request().Path)
	})
}

func BenchmarkParser(b *testing.B) {
	p := getParser()
	b.SetBytes(int64(len(biggerGET)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = p.Parse(biggerGET)
		p.request = Request{}
	}
}
