package serializer

import (
	"bufio"
	"bytes"
	"io"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/indigo-web/simpleweb/config"
	"github.com/indigo-web/simpleweb/http/mime"
	"github.com/indigo-web/simpleweb/http/status"
	"github.com/indigo-web/simpleweb/transport/dummy"
	"github.com/stretchr/testify/require"
)

func getSerializer(cfg *config.Config) *Serializer {
	return New(make([]byte, 0, 1024), cfg)
}

func parseResponse(t *testing.T, data string) *stdhttp.Response {
	resp, err := stdhttp.ReadResponse(bufio.NewReader(bytes.NewBufferString(data)), nil)
	require.NoError(t, err)

	return resp
}

func TestSerializer_Write(t *testing.T) {
	moment := time.Date(2024, time.March, 1, 12, 30, 15, 0, time.UTC)

	t.Run("ok", func(t *testing.T) {
		client := dummy.NewMockClient()
		serializer := getSerializer(config.Default())
		require.NoError(t, serializer.Write(status.OK, mime.TypePNG, moment, client))

		resp := parseResponse(t, client.Written())
		require.Equal(t, 200, resp.StatusCode)
		require.Equal(t, "HTTP/1.1", resp.Proto)
		// Connection: close is consumed by the parser and exposed as resp.Close
		require.Len(t, resp.Header, 3)
		require.Equal(t, "Fri, 01 Mar 2024 05:30:15 MST", resp.Header.Get("Date"))
		require.Equal(t, "simpleweb", resp.Header.Get("Server"))
		require.Equal(t, mime.PNG, resp.Header.Get("Content-Type"))
		require.Empty(t, resp.Header.Get("Content-Length"))
		require.True(t, resp.Close)
	})

	t.Run("not found", func(t *testing.T) {
		client := dummy.NewMockClient()
		serializer := getSerializer(config.Default())
		require.NoError(t, serializer.Write(status.NotFound, mime.TypeHTML, moment, client))

		resp := parseResponse(t, client.Written())
		require.Equal(t, 404, resp.StatusCode)
		require.Equal(t, "404 Not Found", resp.Status)
		require.Equal(t, mime.HTML, resp.Header.Get("Content-Type"))
	})

	t.Run("header block layout", func(t *testing.T) {
		cfg := config.Default()
		cfg.HTTP.ServerName = "lighthouse"
		cfg.Time.Zone = config.TimeZone{Name: "UTC"}
		client := dummy.NewMockClient()
		serializer := getSerializer(cfg)
		require.NoError(t, serializer.Write(status.OK, mime.TypeHTML, moment, client))

		want := "HTTP/1.1 200 OK\r\n" +
			"Date: Fri, 01 Mar 2024 12:30:15 UTC\r\n" +
			"Server: lighthouse\r\n" +
			"Connection: close\r\n" +
			"Content-Type: text/html\r\n" +
			"\r\n"
		require.Equal(t, want, client.Written())
	})

	t.Run("reusable", func(t *testing.T) {
		serializer := getSerializer(config.Default())
		first, second := dummy.NewMockClient(), dummy.NewMockClient()
		require.NoError(t, serializer.Write(status.OK, mime.TypeGIF, moment, first))
		require.NoError(t, serializer.Write(status.OK, mime.TypeGIF, moment, second))
		require.Equal(t, first.Written(), second.Written())
	})

	t.Run("write failure", func(t *testing.T) {
		client := dummy.NewMockClient().FailWritesAfter(0)
		serializer := getSerializer(config.Default())
		err := serializer.Write(status.OK, mime.TypeHTML, moment, client)
		require.ErrorIs(t, err, dummy.ErrWriteFailed)
	})
}

func BenchmarkSerializer(b *testing.B) {
	serializer := getSerializer(config.Default())
	now := time.Now()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = serializer.Write(status.OK, mime.TypeHTML, now, io.Discard)
	}
}
