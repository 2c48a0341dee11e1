package status

// HTTPError is a failure to read a request that still can be answered with the code.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrTooLongRequestLine = NewError(RequestHeaderFieldsTooLarge, "request header line is too long")
	ErrRequestTimeout     = NewError(RequestTimeout, "request timeout")
)
