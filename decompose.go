package mesh

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/mesh/internal/quickhull"
)

// Decompose splits a submesh into at most maxHulls convex pieces.
//
// The decomposition is concavity driven: a piece whose surface stays
// within an acceptance tolerance of its own convex hull is emitted as that
// hull; otherwise the piece is cut along the candidate plane that most
// reduces concavity and both halves are decomposed recursively, sharing
// the remaining hull budget. The two halves are independent and are
// processed concurrently. resolution controls the number of candidate
// planes per cut and the acceptance tolerance (the input's bounding-box
// diagonal divided by resolution).
//
// A convex input yields exactly one hull. Every returned hull has at least
// 4 vertices, as many normals as vertices, and at least 12 indices;
// degenerate pieces are discarded or absorbed into their parent hull. An
// empty or zero-volume input yields an empty list.
func Decompose(sm *SubMesh, maxHulls, resolution int) []*SubMesh {
	if sm == nil || sm.VertexCount() == 0 || sm.IndexCount() < 3 {
		return nil
	}
	if maxHulls < 1 {
		maxHulls = 1
	}
	if resolution < 1 {
		resolution = 1
	}

	tris := trianglesOf(sm)
	d := &decomposer{
		tolerance: boundsDiagonal(sm.Bounds()) / float64(resolution),
		planes:    min(resolution, 24),
	}

	hulls := d.split(tris, maxHulls)
	for i, h := range hulls {
		h.SetName(fmt.Sprintf("%s_hull_%d", sm.Name(), i))
	}
	Logger().Debug("decomposed submesh",
		"name", sm.Name(), "maxHulls", maxHulls, "hulls", len(hulls))
	return hulls
}

// triangle3 is one surface triangle of a piece being decomposed.
type triangle3 [3]r3.Vec

func (t triangle3) centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(r3.Add(t[0], t[1]), t[2]))
}

// trianglesOf expands a submesh's index stream into explicit triangles.
func trianglesOf(sm *SubMesh) []triangle3 {
	tris := make([]triangle3, 0, sm.IndexCount()/3)
	for i := 0; i+2 < sm.IndexCount(); i += 3 {
		tris = append(tris, triangle3{
			sm.Vertex(int(sm.Index(i))),
			sm.Vertex(int(sm.Index(i + 1))),
			sm.Vertex(int(sm.Index(i + 2))),
		})
	}
	return tris
}

type decomposer struct {
	tolerance float64
	planes    int
}

// split recursively decomposes a piece within the given hull budget.
func (d *decomposer) split(tris []triangle3, budget int) []*SubMesh {
	hull, concavity, ok := pieceHull(tris)
	if !ok {
		Logger().Warn("discarded degenerate piece", "triangles", len(tris))
		return nil
	}
	accept := func() []*SubMesh {
		if sm := hullSubMesh(hull); sm != nil {
			return []*SubMesh{sm}
		}
		Logger().Warn("discarded invalid hull", "triangles", len(tris))
		return nil
	}

	if budget <= 1 || concavity <= d.tolerance {
		return accept()
	}

	left, right, found := d.bestSplit(tris)
	if !found {
		return accept()
	}

	// Share the budget proportionally to the amount of geometry on each
	// side, keeping at least one hull per side.
	lb := budget * len(left) / (len(left) + len(right))
	if lb < 1 {
		lb = 1
	}
	if lb > budget-1 {
		lb = budget - 1
	}

	var ls, rs []*SubMesh
	var g errgroup.Group
	g.Go(func() error {
		ls = d.split(left, lb)
		return nil
	})
	g.Go(func() error {
		rs = d.split(right, budget-lb)
		return nil
	})
	_ = g.Wait()

	out := append(ls, rs...)
	if len(out) == 0 {
		// Both halves collapsed; fall back to this piece's own hull so
		// local degeneracy never erases the geometry.
		return accept()
	}
	return out
}

// bestSplit evaluates axis-aligned candidate planes and partitions the
// piece along the one minimizing the children's summed concavity.
func (d *decomposer) bestSplit(tris []triangle3) (left, right []triangle3, found bool) {
	b := r3.Box{Min: tris[0][0], Max: tris[0][0]}
	for _, t := range tris {
		for _, v := range t {
			b = extendBounds(b, v)
		}
	}
	ext := r3.Sub(b.Max, b.Min)

	perAxis := d.planes / 3
	if perAxis < 1 {
		perAxis = 1
	}

	bestScore := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		lo, span := axisRange(b.Min, ext, axis)
		if span <= Eps {
			continue
		}
		for k := 1; k <= perAxis; k++ {
			off := lo + span*float64(k)/float64(perAxis+1)
			l, r := partition(tris, axis, off)
			if len(l) == 0 || len(r) == 0 {
				continue
			}
			score := sideConcavity(l) + sideConcavity(r)
			if score < bestScore {
				bestScore = score
				left, right = l, r
				found = true
			}
		}
	}
	return left, right, found
}

// axisRange returns the start and extent of the box along one axis.
func axisRange(min, ext r3.Vec, axis int) (float64, float64) {
	switch axis {
	case 0:
		return min.X, ext.X
	case 1:
		return min.Y, ext.Y
	default:
		return min.Z, ext.Z
	}
}

// partition splits triangles by which side of the plane their centroid
// falls on.
func partition(tris []triangle3, axis int, off float64) (left, right []triangle3) {
	for _, t := range tris {
		c := t.centroid()
		var v float64
		switch axis {
		case 0:
			v = c.X
		case 1:
			v = c.Y
		default:
			v = c.Z
		}
		if v < off {
			left = append(left, t)
		} else {
			right = append(right, t)
		}
	}
	return left, right
}

// sideConcavity scores one candidate half; degenerate halves are strongly
// penalized so cuts that flatten geometry are only taken as a last resort.
func sideConcavity(tris []triangle3) float64 {
	_, c, ok := pieceHull(tris)
	if !ok {
		return math.Inf(1)
	}
	return c
}

// pieceHull computes the convex hull of a piece and the piece's concavity:
// the largest distance from a surface sample (triangle corners and
// centroids) to the hull boundary. ok is false for degenerate or
// zero-volume pieces.
func pieceHull(tris []triangle3) (quickhull.Hull, float64, bool) {
	if len(tris) == 0 {
		return quickhull.Hull{}, 0, false
	}
	pts := make([]r3.Vec, 0, len(tris)*3)
	for _, t := range tris {
		pts = append(pts, t[0], t[1], t[2])
	}

	hull, err := quickhull.Compute(pts)
	if err != nil || hull.Volume() <= Eps {
		return quickhull.Hull{}, 0, false
	}

	// Face planes of the hull, outward unit normals.
	type plane struct {
		n r3.Vec
		d float64
	}
	planes := make([]plane, 0, len(hull.Faces))
	for _, f := range hull.Faces {
		n := faceNormal(hull.Vertices[f[0]], hull.Vertices[f[1]], hull.Vertices[f[2]])
		if r3.Norm2(n) == 0 {
			continue
		}
		planes = append(planes, plane{n: n, d: r3.Dot(n, hull.Vertices[f[0]])})
	}

	depth := func(p r3.Vec) float64 {
		d := math.Inf(1)
		for _, pl := range planes {
			if v := pl.d - r3.Dot(pl.n, p); v < d {
				d = v
			}
		}
		return math.Max(0, d)
	}

	var concavity float64
	for _, t := range tris {
		concavity = math.Max(concavity, depth(t.centroid()))
		for _, v := range t {
			concavity = math.Max(concavity, depth(v))
		}
	}
	return hull, concavity, true
}

// hullSubMesh converts a hull to a submesh with per-vertex normals
// averaged from the adjacent faces. Hulls with fewer than 4 vertices or 4
// faces are invalid and yield nil.
func hullSubMesh(h quickhull.Hull) *SubMesh {
	if len(h.Vertices) < 4 || len(h.Faces) < 4 {
		return nil
	}

	sm := NewSubMesh("convex_hull")
	normals := make([]r3.Vec, len(h.Vertices))
	for _, f := range h.Faces {
		n := faceNormal(h.Vertices[f[0]], h.Vertices[f[1]], h.Vertices[f[2]])
		for _, vi := range f {
			normals[vi] = r3.Add(normals[vi], n)
		}
		sm.AddIndex(uint32(f[0]))
		sm.AddIndex(uint32(f[1]))
		sm.AddIndex(uint32(f[2]))
	}
	for i, v := range h.Vertices {
		sm.AddVertex(v)
		n := normals[i]
		if r3.Norm2(n) == 0 {
			n = r3.Vec{Z: 1}
		}
		sm.AddNormal(r3.Unit(n))
	}
	return sm
}
