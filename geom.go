package mesh

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r3"
)

// Eps is the tolerance used for coordinate comparisons throughout the
// package. Two coordinates closer than Eps are considered equal; ring
// normalization, degeneracy checks and the postcondition tests all use it.
const Eps = 1e-6

// EqualWithin reports whether a and b differ by no more than Eps.
func EqualWithin(a, b float64) bool {
	return math.Abs(a-b) <= Eps
}

// pointsEqual reports whether two 2D points coincide within Eps.
func pointsEqual(a, b orb.Point) bool {
	return EqualWithin(a[0], b[0]) && EqualWithin(a[1], b[1])
}

// Tri is a single 2D triangle produced by Tessellate, wound
// counter-clockwise. Triangles are plain value types; they carry no
// connectivity beyond their corner coordinates.
type Tri [3]orb.Point

// Area returns the unsigned area of the triangle.
func (t Tri) Area() float64 {
	return math.Abs(t.SignedArea())
}

// SignedArea returns the signed area of the triangle: positive for
// counter-clockwise winding, negative for clockwise.
func (t Tri) SignedArea() float64 {
	return 0.5 * ((t[1][0]-t[0][0])*(t[2][1]-t[0][1]) - (t[2][0]-t[0][0])*(t[1][1]-t[0][1]))
}

// Centroid returns the centroid of the triangle.
func (t Tri) Centroid() orb.Point {
	return orb.Point{
		(t[0][0] + t[1][0] + t[2][0]) / 3,
		(t[0][1] + t[1][1] + t[2][1]) / 3,
	}
}

// UV is a single 2D texture coordinate. A texture-coordinate set is an
// ordered sequence of UVs with one entry per vertex.
type UV struct {
	U, V float64
}

// boundsOf returns the axis-aligned bounding box of the given vertices.
// The zero Box is returned for an empty slice.
func boundsOf(verts []r3.Vec) r3.Box {
	if len(verts) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		b = extendBounds(b, v)
	}
	return b
}

// extendBounds grows b to include v.
func extendBounds(b r3.Box, v r3.Vec) r3.Box {
	b.Min.X = math.Min(b.Min.X, v.X)
	b.Min.Y = math.Min(b.Min.Y, v.Y)
	b.Min.Z = math.Min(b.Min.Z, v.Z)
	b.Max.X = math.Max(b.Max.X, v.X)
	b.Max.Y = math.Max(b.Max.Y, v.Y)
	b.Max.Z = math.Max(b.Max.Z, v.Z)
	return b
}

// unionBounds returns the smallest box containing both a and b.
func unionBounds(a, b r3.Box) r3.Box {
	a = extendBounds(a, b.Min)
	return extendBounds(a, b.Max)
}

// boundsDiagonal returns the length of the box diagonal.
func boundsDiagonal(b r3.Box) float64 {
	return r3.Norm(r3.Sub(b.Max, b.Min))
}

// faceNormal returns the unit normal of the triangle (a, b, c), following
// the right-hand rule: counter-clockwise winding seen from the normal side.
// The zero vector is returned for degenerate triangles.
func faceNormal(a, b, c r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Norm2(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}
