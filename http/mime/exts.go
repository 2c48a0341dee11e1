package mime

import "strings"

// Extension maps a resource extension (without the leading dot) to its content type.
// Everything missing from the table is served as HTML.
var Extension = map[string]ContentType{
	"gif":  TypeGIF,
	"jpg":  TypeJPEG,
	"jpeg": TypeJPEG,
	"png":  TypePNG,
}

// Resolve picks the content type of the resource at path. The home page and missing
// resources are always HTML, regardless of what the extension says.
func Resolve(path string, exists bool) ContentType {
	if path == "/" || !exists {
		return TypeHTML
	}

	dot := strings.LastIndexByte(path, '.')
	if dot == -1 {
		return TypeHTML
	}

	if ct, found := Extension[path[dot+1:]]; found {
		return ct
	}

	return TypeHTML
}
