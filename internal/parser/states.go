package parser

// RequestState tells a caller whether the header block is still incomplete (Pending),
// complete (HeadersCompleted) or rejected (Error). Request bodies are never consumed.
type RequestState uint8

const (
	Pending RequestState = iota + 1
	HeadersCompleted
	Error
)
