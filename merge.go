package mesh

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNilMesh indicates a nil mesh argument.
var ErrNilMesh = errors.New("mesh: nil mesh")

// MergeSubMeshes fuses all submeshes of a mesh into a single submesh,
// returned inside a new single-submesh mesh. Vertices and normals are
// concatenated in submesh order; indices are copied with each submesh's
// triples offset by the cumulative vertex count of the preceding
// submeshes. The merged texture-coordinate-set count is the maximum set
// count across the inputs; where an input submesh lacks a set, its
// vertices get the default coordinate (0, 0) in that set.
//
// Both the merged mesh and its submesh receive generated non-empty names.
// Merging a mesh with no submeshes yields a mesh holding one empty
// submesh; merging one submesh is a plain copy.
func MergeSubMeshes(m *Mesh) (*Mesh, error) {
	if m == nil {
		return nil, ErrNilMesh
	}

	merged := NewSubMesh(fmt.Sprintf("merged_submesh_%s", uuid.NewString()))

	maxSets := 0
	for _, sm := range m.submeshes {
		if err := sm.Validate(); err != nil {
			return nil, err
		}
		if sm.TexCoordSetCount() > maxSets {
			maxSets = sm.TexCoordSetCount()
		}
	}

	offset := uint32(0)
	for _, sm := range m.submeshes {
		for i := 0; i < sm.VertexCount(); i++ {
			merged.AddVertex(sm.Vertex(i))
			merged.AddNormal(sm.Normal(i))
			for set := 0; set < maxSets; set++ {
				uv := UV{} // default for sets the submesh does not carry
				if set < sm.TexCoordSetCount() {
					uv = sm.TexCoordBySet(i, set)
				}
				merged.AddTexCoordBySet(uv, set)
			}
		}
		for i := 0; i < sm.IndexCount(); i++ {
			merged.AddIndex(sm.Index(i) + offset)
		}
		offset += uint32(sm.VertexCount())
	}

	out := NewMesh(fmt.Sprintf("merged_mesh_%s", uuid.NewString()))
	out.AddSubMesh(merged)
	Logger().Debug("merged submeshes",
		"inputs", m.SubMeshCount(), "vertices", merged.VertexCount(),
		"texCoordSets", maxSets)
	return out, nil
}
