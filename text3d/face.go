package text3d

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Face is a parsed font usable for shaping and outline extraction. The
// font data is parsed twice on purpose: go-text/typesetting drives HarfBuzz
// shaping, while x/image/font/sfnt provides the glyph outline segments.
//
// A Face is immutable after NewFace and safe for concurrent use; the
// mutable shaping and outline buffers live per call, not on the Face.
type Face struct {
	shaped  *font.Font
	outline *sfnt.Font
}

// NewFace parses TTF/OTF font data.
func NewFace(data []byte) (*Face, error) {
	gtFace, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text3d: parse font for shaping: %w", err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text3d: parse font outlines: %w", err)
	}
	return &Face{shaped: gtFace.Font, outline: sf}, nil
}

// defaultFace lazily parses the bundled Go Regular face.
var defaultFace = sync.OnceValues(func() (*Face, error) {
	return NewFace(goregular.TTF)
})

// DefaultFace returns a shared Face for the bundled Go Regular font, so the
// package works with no font plumbing and no file I/O.
func DefaultFace() (*Face, error) {
	return defaultFace()
}
