package resource

import (
	"io/fs"
	"strings"
)

// HomePath is the sentinel path standing for the synthesized home page. It never maps
// to a file.
const HomePath = "/"

// Resource is a file identified by a request path. Existence is checked against the
// filesystem on every call and never cached.
type Resource struct {
	// Path is the request path exactly as it was received.
	Path string
	// Name is the path relative to the filesystem root, i.e. without the leading slash.
	// A single trailing slash is dropped as well, so directories are found either way.
	Name string
}

func New(path string) Resource {
	return Resource{
		Path: path,
		Name: strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/"),
	}
}

// IsHome reports whether the resource stands for the home page.
func (r Resource) IsHome() bool {
	return r.Path == HomePath
}

// Exists reports whether the resource is present in the filesystem. The home page is
// never considered existing, and neither are names the filesystem refuses to resolve,
// e.g. empty ones or the ones escaping the root.
func (r Resource) Exists(fsys fs.FS) bool {
	if r.IsHome() || !fs.ValidPath(r.Name) {
		return false
	}

	_, err := fs.Stat(fsys, r.Name)
	return err == nil
}

// Open opens the resource for reading.
func (r Resource) Open(fsys fs.FS) (fs.File, error) {
	return fsys.Open(r.Name)
}
