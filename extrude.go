package mesh

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r3"
)

// Extrusion failure modes.
var (
	// ErrInvalidHeight indicates an extrusion height that is not > 0.
	ErrInvalidHeight = errors.New("mesh: extrusion height must be positive")

	// ErrNoTriangles indicates an empty footprint triangle set.
	ErrNoTriangles = errors.New("mesh: empty triangle set")
)

// Extrude lifts a 2D triangulated footprint to a solid of the given
// height. The bottom cap sits at z=0 with normals (0,0,-1), the top cap at
// z=height with normals (0,0,+1), and every boundary edge of the footprint
// (an edge used by exactly one triangle) becomes a vertical wall quad with
// a horizontal outward normal. Vertices are never shared across faces with
// different normals, so cap and wall copies of the same footprint point
// are distinct vertex/normal entries.
//
// Footprint triangles must be counter-clockwise, as produced by
// [Tessellate].
func Extrude(tris []Tri, height float64) (*SubMesh, error) {
	if height <= 0 {
		return nil, ErrInvalidHeight
	}
	if len(tris) == 0 {
		return nil, ErrNoTriangles
	}

	sm := NewSubMesh("extrusion")

	// Caps share vertices within themselves but not with each other or
	// with the walls, because their normals differ.
	bottom := newCapBuilder(sm, 0, r3.Vec{Z: -1})
	top := newCapBuilder(sm, height, r3.Vec{Z: 1})
	for _, t := range tris {
		// Reversed winding on the bottom cap so the face points down.
		bottom.addTriangle(t[0], t[2], t[1])
		top.addTriangle(t[0], t[1], t[2])
	}

	walls := 0
	for _, e := range boundaryEdges(tris) {
		addWall(sm, e, height)
		walls++
	}

	Logger().Debug("extruded footprint",
		"triangles", len(tris), "walls", walls, "height", height,
		"vertices", sm.VertexCount())
	return sm, nil
}

// ExtrudePath tessellates a path and extrudes the result. If tessellation
// fails, extrusion fails and no submesh is produced.
func ExtrudePath(path Path, height float64) (*SubMesh, error) {
	if height <= 0 {
		return nil, ErrInvalidHeight
	}
	tris, err := Tessellate(path)
	if err != nil {
		return nil, err
	}
	return Extrude(tris, height)
}

// capBuilder emits one cap of an extrusion, deduplicating vertices within
// the cap. All cap vertices share the same z and normal.
type capBuilder struct {
	sm     *SubMesh
	z      float64
	normal r3.Vec
	index  map[orb.Point]uint32
}

func newCapBuilder(sm *SubMesh, z float64, normal r3.Vec) *capBuilder {
	return &capBuilder{sm: sm, z: z, normal: normal, index: make(map[orb.Point]uint32)}
}

func (c *capBuilder) vertex(p orb.Point) uint32 {
	if i, ok := c.index[p]; ok {
		return i
	}
	i := uint32(c.sm.VertexCount())
	c.sm.AddVertex(r3.Vec{X: p[0], Y: p[1], Z: c.z})
	c.sm.AddNormal(c.normal)
	c.index[p] = i
	return i
}

func (c *capBuilder) addTriangle(a, b, d orb.Point) {
	c.sm.AddIndex(c.vertex(a))
	c.sm.AddIndex(c.vertex(b))
	c.sm.AddIndex(c.vertex(d))
}

// directedEdge is a footprint edge in triangle traversal order. For
// counter-clockwise triangles the solid area lies on its left.
type directedEdge struct {
	a, b orb.Point
}

// boundaryEdges returns the footprint edges used by exactly one triangle,
// in that triangle's traversal direction. Interior edges are traversed in
// both directions by their two triangles and cancel out.
func boundaryEdges(tris []Tri) []directedEdge {
	type edgeKey struct{ a, b orb.Point }
	canonical := func(a, b orb.Point) edgeKey {
		if a[0] < b[0] || (a[0] == b[0] && a[1] < b[1]) {
			return edgeKey{a, b}
		}
		return edgeKey{b, a}
	}

	count := make(map[edgeKey]int, len(tris)*3)
	first := make(map[edgeKey]directedEdge, len(tris)*3)
	order := make([]edgeKey, 0, len(tris)*3)
	for _, t := range tris {
		for i := 0; i < 3; i++ {
			a, b := t[i], t[(i+1)%3]
			k := canonical(a, b)
			if count[k] == 0 {
				first[k] = directedEdge{a, b}
				order = append(order, k)
			}
			count[k]++
		}
	}

	edges := make([]directedEdge, 0, len(order))
	for _, k := range order {
		if count[k] == 1 {
			edges = append(edges, first[k])
		}
	}
	return edges
}

// addWall emits a vertical quad for a boundary edge. With the solid on the
// left of the directed edge, the outward normal is the edge direction
// rotated a quarter turn clockwise.
func addWall(sm *SubMesh, e directedEdge, height float64) {
	dx := e.b[0] - e.a[0]
	dy := e.b[1] - e.a[1]
	l := math.Hypot(dx, dy)
	if l <= Eps {
		return
	}
	n := r3.Vec{X: dy / l, Y: -dx / l}

	base := uint32(sm.VertexCount())
	for _, v := range []r3.Vec{
		{X: e.a[0], Y: e.a[1], Z: 0},
		{X: e.b[0], Y: e.b[1], Z: 0},
		{X: e.b[0], Y: e.b[1], Z: height},
		{X: e.a[0], Y: e.a[1], Z: height},
	} {
		sm.AddVertex(v)
		sm.AddNormal(n)
	}

	// Two counter-clockwise triangles seen from outside.
	sm.AddIndex(base)
	sm.AddIndex(base + 1)
	sm.AddIndex(base + 2)
	sm.AddIndex(base)
	sm.AddIndex(base + 2)
	sm.AddIndex(base + 3)
}
