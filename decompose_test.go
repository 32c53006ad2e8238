package mesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func boxSubMesh(t *testing.T) *SubMesh {
	t.Helper()
	m, err := NewBox("box", r3.Vec{X: 1, Y: 1, Z: 1})
	if err != nil {
		t.Fatalf("NewBox() error = %v", err)
	}
	ref, ok := m.SubMeshByIndex(0)
	if !ok {
		t.Fatal("box mesh has no submesh")
	}
	return ref.Get()
}

// lShapeSubMesh extrudes a concave L footprint, the minimal shape that a
// convex decomposition must actually split.
func lShapeSubMesh(t *testing.T) *SubMesh {
	t.Helper()
	path := Path{{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}}
	sm, err := ExtrudePath(path, 1)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}
	return sm
}

func TestDecomposeConvexBox(t *testing.T) {
	// A box is already convex: the decomposition is exactly its hull,
	// with the 24 per-face vertices collapsed to the 8 corners.
	hulls := Decompose(boxSubMesh(t), 4, 1000)
	if len(hulls) != 1 {
		t.Fatalf("hull count = %d, want 1", len(hulls))
	}
	h := hulls[0]
	if h.VertexCount() != 8 {
		t.Errorf("vertex count = %d, want 8", h.VertexCount())
	}
	if h.NormalCount() != 8 {
		t.Errorf("normal count = %d, want 8", h.NormalCount())
	}
	if h.IndexCount() != 36 {
		t.Errorf("index count = %d, want 36", h.IndexCount())
	}
	if h.Name() == "" {
		t.Error("hull has empty name")
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDecomposeConcaveWithinBudget(t *testing.T) {
	const maxHulls = 4
	sm := lShapeSubMesh(t)
	hulls := Decompose(sm, maxHulls, 1000)

	if len(hulls) < 2 {
		t.Errorf("hull count = %d, want > 1 for a concave input", len(hulls))
	}
	if len(hulls) > maxHulls {
		t.Errorf("hull count = %d exceeds budget %d", len(hulls), maxHulls)
	}
	for i, h := range hulls {
		if h.VertexCount() < 4 {
			t.Errorf("hull %d vertex count = %d, want >= 4", i, h.VertexCount())
		}
		if h.VertexCount() != h.NormalCount() {
			t.Errorf("hull %d vertex count %d != normal count %d",
				i, h.VertexCount(), h.NormalCount())
		}
		if h.IndexCount() < 12 {
			t.Errorf("hull %d index count = %d, want >= 12", i, h.IndexCount())
		}
		if err := h.Validate(); err != nil {
			t.Errorf("hull %d Validate() error = %v", i, err)
		}
	}
}

func TestDecomposeBudgetOne(t *testing.T) {
	// With a single-hull budget even a concave shape collapses to its
	// convex hull.
	hulls := Decompose(lShapeSubMesh(t), 1, 1000)
	if len(hulls) != 1 {
		t.Fatalf("hull count = %d, want 1", len(hulls))
	}
}

func TestDecomposeBudgetSweep(t *testing.T) {
	sm := lShapeSubMesh(t)
	for _, k := range []int{1, 2, 3, 4, 8} {
		hulls := Decompose(sm, k, 500)
		if len(hulls) < 1 || len(hulls) > k {
			t.Errorf("maxHulls %d: hull count = %d, want 1..%d", k, len(hulls), k)
		}
	}
}

func TestDecomposeDegenerate(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if got := Decompose(nil, 4, 1000); len(got) != 0 {
			t.Errorf("Decompose(nil) = %d hulls, want 0", len(got))
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := Decompose(NewSubMesh("empty"), 4, 1000); len(got) != 0 {
			t.Errorf("Decompose(empty) = %d hulls, want 0", len(got))
		}
	})

	t.Run("zero volume", func(t *testing.T) {
		flat := NewSubMesh("flat")
		for i, v := range []r3.Vec{{}, {X: 1}, {Y: 1}} {
			flat.AddVertex(v)
			flat.AddNormal(r3.Vec{Z: 1})
			flat.AddIndex(uint32(i))
		}
		if got := Decompose(flat, 4, 1000); len(got) != 0 {
			t.Errorf("Decompose(flat triangle) = %d hulls, want 0", len(got))
		}
	})
}

func TestDecomposeClampsArguments(t *testing.T) {
	// Non-positive budget and resolution are clamped, not crashed on.
	hulls := Decompose(boxSubMesh(t), 0, 0)
	if len(hulls) != 1 {
		t.Fatalf("hull count = %d, want 1", len(hulls))
	}
}
