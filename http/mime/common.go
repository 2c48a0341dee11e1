package mime

type MIME = string

const (
	HTML MIME = "text/html"
	GIF  MIME = "image/gif"
	JPEG MIME = "image/jpeg"
	PNG  MIME = "image/png"
)

// Kind tells how a resource body must be streamed: text resources are templated line
// by line, images are copied byte for byte.
type Kind uint8

const (
	Text Kind = iota
	Image
)

// ContentType is a MIME tagged with the way it must be rendered.
type ContentType struct {
	MIME MIME
	Kind Kind
}

var (
	TypeHTML = ContentType{MIME: HTML, Kind: Text}
	TypeGIF  = ContentType{MIME: GIF, Kind: Image}
	TypeJPEG = ContentType{MIME: JPEG, Kind: Image}
	TypePNG  = ContentType{MIME: PNG, Kind: Image}
)

func (c ContentType) String() string {
	return c.MIME
}
