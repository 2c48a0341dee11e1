package config

import (
	"time"
)

type (
	URIRequestLineSize struct {
		Default, Maximal int
	}

	TimeZone struct {
		// Name is what gets rendered in place of the zone abbreviation, e.g. MST.
		Name string
		// Offset is the zone's fixed offset east of UTC.
		Offset time.Duration `test:"nullable"`
	}
)

type (
	URI struct {
		// RequestLineSize limits every single line of the request header block, not only the
		// request line itself. Lines are accumulated in a buffer of the default size, which
		// grows up to the maximal one. Exceeding it fails the request.
		RequestLineSize URIRequestLineSize
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// ReadTimeout limits how long receiving the whole request header block may take,
		// counting from the first read. Zero disables the deadline, so a silent client
		// holds its goroutine until it disconnects.
		ReadTimeout time.Duration `test:"nullable"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	HTTP struct {
		// ServerName is the value of the Server response header.
		ServerName string
		// ResponseBufferSize is the initial capacity of the buffer the status line and headers
		// are rendered into.
		ResponseBufferSize int
		// FileBufferSize is the size of the buffer used to copy binary resources.
		FileBufferSize int
		// TextBufferSize bounds the memory a templated line may occupy. Longer lines are
		// substituted piece by piece. Must be longer than any of the template tokens.
		TextBufferSize int
		// DateLayout is the time.Format layout of the Date response header.
		DateLayout string
	}

	Template struct {
		// ServerToken is replaced by ServerValue in served HTML resources.
		ServerToken string
		ServerValue string
		// DateToken is replaced by the current date, formatted with DateLayout.
		DateToken  string
		DateLayout string
		// KeepLineBreaks makes the renderer write line terminators back after every templated
		// line. By default they are dropped, exactly as the first versions of the server did.
		KeepLineBreaks bool `test:"nullable"`
	}

	Time struct {
		// Zone is the fixed zone both the Date header and the date placeholder are rendered in.
		Zone TimeZone
	}
)

// Config holds settings used across various parts of simpleweb, mainly limits, buffer sizes
// and response texts.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI      URI
	NET      NET
	HTTP     HTTP
	Template Template
	Time     Time
}

// Default returns default config.
func Default() *Config {
	return &Config{
		URI: URI{
			RequestLineSize: URIRequestLineSize{
				Default: 2 * 1024,
				// 16kb per line is pretty much tolerant, considering most web-entities limit
				// the whole request line to 4-8kb.
				Maximal: 16 * 1024,
			},
		},
		NET: NET{
			ReadBufferSize:            2 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		HTTP: HTTP{
			ServerName:         "simpleweb",
			ResponseBufferSize: 1024,
			FileBufferSize:     64 * 1024,
			TextBufferSize:     4 * 1024,
			DateLayout:         "Mon, 02 Jan 2006 15:04:05 MST",
		},
		Template: Template{
			ServerToken: "<cs371server>",
			ServerValue: "simpleweb",
			DateToken:   "<cs371date>",
			DateLayout:  "Jan 2, 2006",
		},
		Time: Time{
			Zone: TimeZone{
				Name:   "MST",
				Offset: -7 * time.Hour,
			},
		},
	}
}

// Location returns the fixed zone described by the config.
func (t Time) Location() *time.Location {
	return time.FixedZone(t.Zone.Name, int(t.Zone.Offset/time.Second))
}
