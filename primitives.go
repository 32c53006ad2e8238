package mesh

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidDimension indicates a primitive with a non-positive size,
// radius, length, or subdivision count.
var ErrInvalidDimension = errors.New("mesh: invalid primitive dimension")

// NewBox generates an axis-aligned box of the given size centered at the
// origin. Each of the six faces carries its own four vertices with the
// face normal, 12 triangles in total, and one texture-coordinate set.
func NewBox(name string, size r3.Vec) (*Mesh, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, ErrInvalidDimension
	}

	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	sm := NewSubMesh(name + "_submesh")
	v3 := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

	// Four corners per face, counter-clockwise seen from outside.
	faces := []struct {
		n r3.Vec
		c [4]r3.Vec
	}{
		{r3.Vec{X: 1}, [4]r3.Vec{v3(hx, -hy, -hz), v3(hx, hy, -hz), v3(hx, hy, hz), v3(hx, -hy, hz)}},
		{r3.Vec{X: -1}, [4]r3.Vec{v3(-hx, hy, -hz), v3(-hx, -hy, -hz), v3(-hx, -hy, hz), v3(-hx, hy, hz)}},
		{r3.Vec{Y: 1}, [4]r3.Vec{v3(hx, hy, -hz), v3(-hx, hy, -hz), v3(-hx, hy, hz), v3(hx, hy, hz)}},
		{r3.Vec{Y: -1}, [4]r3.Vec{v3(-hx, -hy, -hz), v3(hx, -hy, -hz), v3(hx, -hy, hz), v3(-hx, -hy, hz)}},
		{r3.Vec{Z: 1}, [4]r3.Vec{v3(-hx, -hy, hz), v3(hx, -hy, hz), v3(hx, hy, hz), v3(-hx, hy, hz)}},
		{r3.Vec{Z: -1}, [4]r3.Vec{v3(-hx, hy, -hz), v3(hx, hy, -hz), v3(hx, -hy, -hz), v3(-hx, -hy, -hz)}},
	}
	uvs := [4]UV{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, f := range faces {
		base := uint32(sm.VertexCount())
		for k, corner := range f.c {
			sm.AddVertex(corner)
			sm.AddNormal(f.n)
			sm.AddTexCoordBySet(uvs[k], 0)
		}
		sm.AddIndex(base)
		sm.AddIndex(base + 1)
		sm.AddIndex(base + 2)
		sm.AddIndex(base)
		sm.AddIndex(base + 2)
		sm.AddIndex(base + 3)
	}

	m := NewMesh(name)
	m.AddSubMesh(sm)
	return m, nil
}

// NewSphere generates a UV sphere of the given radius centered at the
// origin, with rings latitude bands and segments longitude slices. Normals
// are unit radial vectors and one texture-coordinate set carries the
// latitude/longitude parameterization.
func NewSphere(name string, radius float64, rings, segments int) (*Mesh, error) {
	if radius <= 0 || rings < 1 || segments < 1 {
		return nil, ErrInvalidDimension
	}

	sm := NewSubMesh(name + "_submesh")

	for i := 0; i <= rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		st, ct := math.Sincos(theta)
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			sp, cp := math.Sincos(phi)
			n := r3.Vec{X: st * cp, Y: st * sp, Z: ct}
			sm.AddVertex(r3.Scale(radius, n))
			sm.AddNormal(n)
			sm.AddTexCoordBySet(UV{
				U: float64(j) / float64(segments),
				V: float64(i) / float64(rings),
			}, 0)
		}
	}

	row := segments + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := uint32(i*row + j)
			b := a + uint32(row)
			sm.AddIndex(a)
			sm.AddIndex(b)
			sm.AddIndex(a + 1)
			sm.AddIndex(a + 1)
			sm.AddIndex(b)
			sm.AddIndex(b + 1)
		}
	}

	m := NewMesh(name)
	m.AddSubMesh(sm)
	return m, nil
}

// NewCylinder generates a capped cylinder along the Z axis, centered at
// the origin, of the given radius and length, with rings side subdivisions
// along Z and segments around the circumference.
func NewCylinder(name string, radius, length float64, rings, segments int) (*Mesh, error) {
	if radius <= 0 || length <= 0 || rings < 1 || segments < 3 {
		return nil, ErrInvalidDimension
	}

	sm := NewSubMesh(name + "_submesh")
	hz := length / 2

	// Side wall: rings+1 rows of segments+1 vertices, radial normals.
	for i := 0; i <= rings; i++ {
		z := -hz + length*float64(i)/float64(rings)
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			sp, cp := math.Sincos(phi)
			sm.AddVertex(r3.Vec{X: radius * cp, Y: radius * sp, Z: z})
			sm.AddNormal(r3.Vec{X: cp, Y: sp})
			sm.AddTexCoordBySet(UV{
				U: float64(j) / float64(segments),
				V: float64(i) / float64(rings),
			}, 0)
		}
	}
	row := segments + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := uint32(i*row + j)
			b := a + uint32(row)
			sm.AddIndex(a)
			sm.AddIndex(a + 1)
			sm.AddIndex(b)
			sm.AddIndex(a + 1)
			sm.AddIndex(b + 1)
			sm.AddIndex(b)
		}
	}

	// Caps: a center vertex and a fan around it, axial normals.
	for _, end := range []struct {
		z, nz float64
	}{{hz, 1}, {-hz, -1}} {
		center := uint32(sm.VertexCount())
		sm.AddVertex(r3.Vec{Z: end.z})
		sm.AddNormal(r3.Vec{Z: end.nz})
		sm.AddTexCoordBySet(UV{U: 0.5, V: 0.5}, 0)
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			sp, cp := math.Sincos(phi)
			sm.AddVertex(r3.Vec{X: radius * cp, Y: radius * sp, Z: end.z})
			sm.AddNormal(r3.Vec{Z: end.nz})
			sm.AddTexCoordBySet(UV{U: (cp + 1) / 2, V: (sp + 1) / 2}, 0)
		}
		for j := 0; j < segments; j++ {
			a := center + 1 + uint32(j)
			sm.AddIndex(center)
			if end.nz > 0 {
				sm.AddIndex(a)
				sm.AddIndex(a + 1)
			} else {
				sm.AddIndex(a + 1)
				sm.AddIndex(a)
			}
		}
	}

	m := NewMesh(name)
	m.AddSubMesh(sm)
	return m, nil
}
