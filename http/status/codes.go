package status

type (
	Code   uint16
	Status string
)

// HTTP status codes the server is able to respond with. Every response is either a
// served resource or a missing one, the rest are for requests that couldn't be read.
const (
	OK Code = 200 // RFC 9110, 15.3.1

	NotFound                    Code = 404 // RFC 9110, 15.5.5
	RequestTimeout              Code = 408 // RFC 9110, 15.5.9
	RequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5
)

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case NotFound:
		return "Not Found"
	case RequestTimeout:
		return "Request Timeout"
	case RequestHeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	default:
		return ""
	}
}
