package text3d

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/paulmach/orb"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/mesh"
)

// Defaults applied by Solid for zero Options fields.
const (
	// DefaultSize is the font size in pixels per em.
	DefaultSize = 72.0

	// DefaultHeight is the extrusion depth.
	DefaultHeight = 10.0

	// DefaultFlatness is the curve flattening tolerance in pixels.
	DefaultFlatness = 0.25
)

// Solid failure modes.
var (
	// ErrEmptyText indicates text with no non-whitespace characters.
	ErrEmptyText = errors.New("text3d: empty text")

	// ErrNoOutline indicates text whose glyphs produced no outlines.
	ErrNoOutline = errors.New("text3d: text produced no outlines")
)

// Options controls text solid synthesis. Zero fields take the package
// defaults.
type Options struct {
	// Size is the font size in pixels per em.
	Size float64

	// Height is the extrusion depth along Z.
	Height float64

	// Flatness is the maximum distance a flattened line segment may
	// deviate from the true glyph curve, in pixels.
	Flatness float64
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Flatness <= 0 {
		o.Flatness = DefaultFlatness
	}
	return o
}

// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper has internal
// mutable state and is not safe for concurrent use, but reusing instances
// across sequential calls is efficient.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Solid meshes the given text into an extruded solid. The text baseline
// lies on y=0 at the left edge, the bottom face on z=0 and the top face on
// z=Height. Whitespace-only text is an error, and a tessellation failure
// of any glyph fails the whole call with no partial mesh.
func Solid(face *Face, text string, opts Options) (*mesh.Mesh, error) {
	if face == nil {
		return nil, errors.New("text3d: nil face")
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	opts = opts.withDefaults()

	glyphs := shape(face, text, opts.Size)

	var path mesh.Path
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(opts.Size * 64)
	for _, g := range glyphs {
		segments, err := face.outline.LoadGlyph(&buf, g.gid, ppem, nil)
		if err != nil {
			return nil, errors.Join(ErrNoOutline, err)
		}
		if len(segments) == 0 {
			continue // whitespace glyph
		}
		path = append(path, glyphRings(segments, g.x, g.y, opts.Flatness)...)
	}
	if len(path) == 0 {
		return nil, ErrNoOutline
	}

	sm, err := mesh.ExtrudePath(path, opts.Height)
	if err != nil {
		return nil, err
	}
	sm.SetName("text3d_submesh:" + text)

	m := mesh.NewMesh("text3d:" + text)
	m.AddSubMesh(sm)
	mesh.Logger().Debug("meshed text",
		"text", text, "glyphs", len(glyphs), "rings", len(path),
		"vertices", sm.VertexCount())
	return m, nil
}

// positionedGlyph is a shaped glyph with its pen position in pixels.
type positionedGlyph struct {
	gid  sfnt.GlyphIndex
	x, y float64
}

// shape runs HarfBuzz shaping on a single left-to-right run and returns
// pen-positioned glyphs.
func shape(face *Face, text string, size float64) []positionedGlyph {
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(face.shaped),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hbShaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hbShaper.Shape(input)
	shaperPool.Put(hbShaper)

	glyphs := make([]positionedGlyph, 0, len(output.Glyphs))
	var x float64
	for _, g := range output.Glyphs {
		glyphs = append(glyphs, positionedGlyph{
			gid: sfnt.GlyphIndex(uint16(g.GlyphID)),
			x:   x + fixedToFloat(g.XOffset),
			y:   fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.Advance)
	}
	return glyphs
}

// detectScript inspects the runes and returns the script of the first
// non-space character.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// glyphRings flattens sfnt glyph segments into closed rings, translated by
// the pen position. sfnt outlines are y-down; rings are flipped to the
// y-up convention the tessellator uses.
func glyphRings(segments []sfnt.Segment, penX, penY, flatness float64) []orb.Ring {
	var rings []orb.Ring
	var cur orb.Ring

	pt := func(p fixed.Point26_6) orb.Point {
		return orb.Point{
			penX + fixedToFloat(p.X),
			penY - fixedToFloat(p.Y), // flip to y-up
		}
	}
	closeRing := func() {
		if len(cur) >= 3 {
			rings = append(rings, cur)
		}
		cur = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeRing()
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			if len(cur) == 0 {
				continue
			}
			cur = flattenQuad(cur, cur[len(cur)-1], pt(seg.Args[0]), pt(seg.Args[1]), flatness, 0)
		case sfnt.SegmentOpCubeTo:
			if len(cur) == 0 {
				continue
			}
			cur = flattenCubic(cur, cur[len(cur)-1],
				pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]), flatness, 0)
		}
	}
	closeRing()
	return rings
}
