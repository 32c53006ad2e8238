package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Mesh is a named, ordered collection of submeshes. The mesh exclusively
// owns its submeshes: callers address them through non-owning SubMeshRef
// handles rather than holding their own references.
type Mesh struct {
	name      string
	submeshes []*SubMesh
}

// NewMesh creates an empty mesh with the given name.
func NewMesh(name string) *Mesh {
	return &Mesh{name: name}
}

// Name returns the mesh name.
func (m *Mesh) Name() string { return m.name }

// SetName sets the mesh name.
func (m *Mesh) SetName(name string) { m.name = name }

// AddSubMesh transfers ownership of a submesh to the mesh and returns its
// index.
func (m *Mesh) AddSubMesh(s *SubMesh) int {
	m.submeshes = append(m.submeshes, s)
	return len(m.submeshes) - 1
}

// SubMeshCount returns the number of submeshes.
func (m *Mesh) SubMeshCount() int { return len(m.submeshes) }

// SubMeshByIndex returns a non-owning handle on the i-th submesh. The
// second return is false when the index is out of range.
func (m *Mesh) SubMeshByIndex(i int) (SubMeshRef, bool) {
	if i < 0 || i >= len(m.submeshes) {
		return SubMeshRef{}, false
	}
	return SubMeshRef{mesh: m, index: i}, true
}

// Bounds returns the union of the submesh bounding boxes. The zero box is
// returned for a mesh with no vertices.
func (m *Mesh) Bounds() r3.Box {
	var b r3.Box
	first := true
	for _, s := range m.submeshes {
		if s.VertexCount() == 0 {
			continue
		}
		if first {
			b = s.Bounds()
			first = false
			continue
		}
		b = unionBounds(b, s.Bounds())
	}
	return b
}

// SubMeshRef is a non-owning handle on a submesh inside its owning mesh.
// The mesh alone controls the submesh's lifetime; the handle carries only
// the owning mesh and the submesh index.
type SubMeshRef struct {
	mesh  *Mesh
	index int
}

// Get returns the referenced submesh, or nil if the handle is zero or the
// index no longer resolves.
func (r SubMeshRef) Get() *SubMesh {
	if r.mesh == nil || r.index < 0 || r.index >= len(r.mesh.submeshes) {
		return nil
	}
	return r.mesh.submeshes[r.index]
}

// Mesh returns the owning mesh.
func (r SubMeshRef) Mesh() *Mesh { return r.mesh }

// Index returns the submesh index within the owning mesh.
func (r SubMeshRef) Index() int { return r.index }
