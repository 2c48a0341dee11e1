package parser

import (
	"bytes"
	"strings"

	"github.com/indigo-web/simpleweb/http/status"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/uf"
)

const (
	// requestMethod is the only method the parser recognizes. Lines starting with it are
	// treated as request lines.
	requestMethod = "GET"
	// protoSuffixLength is the length of the " HTTP/x.y" trailer of the request line.
	protoSuffixLength = len(" HTTP/1.1")
	pathOffset        = len(requestMethod + " ")
)

// Request is everything the parser extracts from a header block.
type Request struct {
	// Path is the requested resource path, empty if no request line was seen or if it
	// was too short to hold both the method and the protocol.
	Path string
	// Found reports whether a request line was seen at all.
	Found bool
}

// Parser is a stream-based header block parser. Data may be fed in arbitrary pieces;
// a line split among several pieces is accumulated in the line buffer. Parsing is over
// as soon as the blank line terminating the block is met. Whatever follows it is the
// request body, which is never read.
//
// Only the first line starting with GET is meaningful; every other line is read and
// discarded.
type Parser struct {
	line    *buffer.Buffer
	request Request
}

func New(line *buffer.Buffer) *Parser {
	return &Parser{
		line: line,
	}
}

func (p *Parser) Parse(data []byte) (state RequestState, err error) {
	for len(data) > 0 {
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if !p.line.Append(data) {
				return Error, status.ErrTooLongRequestLine
			}

			return Pending, nil
		}

		if !p.line.Append(data[:lf]) {
			return Error, status.ErrTooLongRequestLine
		}

		data = data[lf+1:]
		line := p.line.Finish()
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}

		if len(line) == 0 {
			p.line.Clear()
			return HeadersCompleted, nil
		}

		p.processLine(line)
		// lines are discarded right away, so the limit is applied to every line
		// separately rather than to the whole block
		p.line.Clear()
	}

	return Pending, nil
}

func (p *Parser) processLine(line []byte) {
	if p.request.Found || !strings.HasPrefix(uf.B2S(line), requestMethod) {
		return
	}

	p.request.Found = true

	if len(line) < pathOffset+protoSuffixLength {
		return
	}

	// the line buffer is reused, so the path must be copied out of it
	p.request.Path = string(line[pathOffset : len(line)-protoSuffixLength])
}

// Request returns the parsed request. Must be called after HeadersCompleted was returned.
func (p *Parser) Request() Request {
	return p.request
}
