package mime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		for path, want := range map[string]ContentType{
			"/cat.gif":          TypeGIF,
			"/photo.jpg":        TypeJPEG,
			"/photo.jpeg":       TypeJPEG,
			"/logo.png":         TypePNG,
			"/index.html":       TypeHTML,
			"/notes.txt":        TypeHTML,
			"/Makefile":         TypeHTML,
			"/archive.tar.gif":  TypeGIF,
			"/images.png/cat":   TypeHTML,
			"/trailing.dot.":    TypeHTML,
			"/uppercase.PNG":    TypeHTML,
			"/dir.with.dots/ab": TypeHTML,
		} {
			require.Equal(t, want, Resolve(path, true), path)
		}
	})

	t.Run("missing forces html", func(t *testing.T) {
		for _, path := range []string{"/cat.gif", "/photo.jpg", "/logo.png", "", "/nothing"} {
			require.Equal(t, TypeHTML, Resolve(path, false), path)
		}
	})

	t.Run("home", func(t *testing.T) {
		require.Equal(t, TypeHTML, Resolve("/", false))
		require.Equal(t, TypeHTML, Resolve("/", true))
	})
}

func TestKind(t *testing.T) {
	require.Equal(t, Text, TypeHTML.Kind)
	for _, ct := range Extension {
		require.Equal(t, Image, ct.Kind, ct.MIME)
	}
}
