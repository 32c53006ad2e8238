package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// SubMesh is one batch of triangle geometry: parallel vertex and normal
// arrays, a triangle index stream, and zero or more texture-coordinate
// sets. Invariants: len(vertices) == len(normals), every texture-coordinate
// set has one entry per vertex, every index is < len(vertices) and the
// index count is a multiple of 3.
//
// A SubMesh produced by this package is fully populated before it is
// returned and shares no storage with the operation's inputs.
type SubMesh struct {
	name         string
	vertices     []r3.Vec
	normals      []r3.Vec
	indices      []uint32
	texCoordSets [][]UV
}

// NewSubMesh creates an empty submesh with the given name.
func NewSubMesh(name string) *SubMesh {
	return &SubMesh{name: name}
}

// Name returns the submesh name.
func (s *SubMesh) Name() string { return s.name }

// SetName sets the submesh name.
func (s *SubMesh) SetName(name string) { s.name = name }

// AddVertex appends a vertex.
func (s *SubMesh) AddVertex(v r3.Vec) { s.vertices = append(s.vertices, v) }

// AddNormal appends a per-vertex normal.
func (s *SubMesh) AddNormal(n r3.Vec) { s.normals = append(s.normals, n) }

// AddIndex appends one triangle corner index.
func (s *SubMesh) AddIndex(i uint32) { s.indices = append(s.indices, i) }

// AddTexCoordBySet appends a texture coordinate to the given set, growing
// the set list as needed.
func (s *SubMesh) AddTexCoordBySet(uv UV, set int) {
	for len(s.texCoordSets) <= set {
		s.texCoordSets = append(s.texCoordSets, nil)
	}
	s.texCoordSets[set] = append(s.texCoordSets[set], uv)
}

// VertexCount returns the number of vertices.
func (s *SubMesh) VertexCount() int { return len(s.vertices) }

// NormalCount returns the number of per-vertex normals.
func (s *SubMesh) NormalCount() int { return len(s.normals) }

// IndexCount returns the number of triangle corner indices.
func (s *SubMesh) IndexCount() int { return len(s.indices) }

// TexCoordSetCount returns the number of texture-coordinate sets.
func (s *SubMesh) TexCoordSetCount() int { return len(s.texCoordSets) }

// TexCoordCountBySet returns the number of coordinates in the given set,
// or 0 if the set does not exist.
func (s *SubMesh) TexCoordCountBySet(set int) int {
	if set < 0 || set >= len(s.texCoordSets) {
		return 0
	}
	return len(s.texCoordSets[set])
}

// Vertex returns the i-th vertex.
func (s *SubMesh) Vertex(i int) r3.Vec { return s.vertices[i] }

// Normal returns the i-th per-vertex normal.
func (s *SubMesh) Normal(i int) r3.Vec { return s.normals[i] }

// Index returns the i-th triangle corner index.
func (s *SubMesh) Index(i int) uint32 { return s.indices[i] }

// TexCoordBySet returns the texture coordinate of vertex i in the given
// set.
func (s *SubMesh) TexCoordBySet(i, set int) UV { return s.texCoordSets[set][i] }

// Bounds returns the axis-aligned bounding box of the vertices. The zero
// box is returned for an empty submesh.
func (s *SubMesh) Bounds() r3.Box { return boundsOf(s.vertices) }

// Copy returns a deep copy of the submesh.
func (s *SubMesh) Copy() *SubMesh {
	c := &SubMesh{
		name:     s.name,
		vertices: append([]r3.Vec(nil), s.vertices...),
		normals:  append([]r3.Vec(nil), s.normals...),
		indices:  append([]uint32(nil), s.indices...),
	}
	if s.texCoordSets != nil {
		c.texCoordSets = make([][]UV, len(s.texCoordSets))
		for i, set := range s.texCoordSets {
			c.texCoordSets[i] = append([]UV(nil), set...)
		}
	}
	return c
}

// Validate checks the structural invariants. A violation indicates a bug
// in whatever built the submesh, so operations treat it as a contract
// violation rather than a recoverable error.
func (s *SubMesh) Validate() error {
	if len(s.vertices) != len(s.normals) {
		return fmt.Errorf("mesh: submesh %q has %d vertices but %d normals",
			s.name, len(s.vertices), len(s.normals))
	}
	if len(s.indices)%3 != 0 {
		return fmt.Errorf("mesh: submesh %q index count %d is not a multiple of 3",
			s.name, len(s.indices))
	}
	for i, idx := range s.indices {
		if int(idx) >= len(s.vertices) {
			return fmt.Errorf("mesh: submesh %q index %d out of range: %d >= %d",
				s.name, i, idx, len(s.vertices))
		}
	}
	for set, coords := range s.texCoordSets {
		if len(coords) != len(s.vertices) {
			return fmt.Errorf("mesh: submesh %q texcoord set %d has %d entries for %d vertices",
				s.name, set, len(coords), len(s.vertices))
		}
	}
	return nil
}
