// Package quickhull computes 3D convex hulls of point sets.
//
// The implementation is the classic quickhull loop: build an initial
// tetrahedron from extreme points, then repeatedly lift the farthest
// outside point onto the hull, removing the faces it sees and stitching
// new faces along the horizon.
package quickhull

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerate indicates a point set with no volume: fewer than 4
// distinct points, or all points collinear or coplanar.
var ErrDegenerate = errors.New("quickhull: degenerate point set")

// Hull is a convex hull as a triangulated closed surface. Faces index into
// Vertices and wind counter-clockwise seen from outside.
type Hull struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// Volume returns the enclosed volume of the hull.
func (h Hull) Volume() float64 {
	var v float64
	for _, f := range h.Faces {
		a, b, c := h.Vertices[f[0]], h.Vertices[f[1]], h.Vertices[f[2]]
		v += r3.Dot(a, r3.Cross(b, c))
	}
	return math.Abs(v) / 6
}

// face is a hull facet during construction.
type face struct {
	v       [3]int
	normal  r3.Vec // unit, outward
	offset  float64
	outside []int // points strictly outside this facet
	dead    bool
}

func (f *face) dist(p r3.Vec) float64 {
	return r3.Dot(f.normal, p) - f.offset
}

// Compute returns the convex hull of the given points. Duplicate points
// are ignored. ErrDegenerate is returned when the points enclose no
// volume.
func Compute(points []r3.Vec) (Hull, error) {
	pts := dedupe(points)
	if len(pts) < 4 {
		return Hull{}, ErrDegenerate
	}

	eps := tolerance(pts)

	p0, p1, p2, p3, err := initialSimplex(pts, eps)
	if err != nil {
		return Hull{}, err
	}

	// Interior reference point used to orient every facet outward.
	interior := r3.Scale(0.25, r3.Add(r3.Add(pts[p0], pts[p1]), r3.Add(pts[p2], pts[p3])))

	faces := []*face{
		newFace(pts, p0, p1, p2, interior),
		newFace(pts, p0, p1, p3, interior),
		newFace(pts, p0, p2, p3, interior),
		newFace(pts, p1, p2, p3, interior),
	}

	onSimplex := map[int]bool{p0: true, p1: true, p2: true, p3: true}
	for i := range pts {
		if !onSimplex[i] {
			assign(faces, i, pts[i], eps)
		}
	}

	// Each iteration adds one hull vertex, so the loop is bounded by the
	// point count; the extra slack guards against float cycling.
	for iter := 0; iter < 4*len(pts)+16; iter++ {
		f := pickFace(faces)
		if f == nil {
			break
		}
		apex := farthest(f, pts)

		visible := make([]*face, 0, 4)
		edges := make(map[[2]int]bool)
		for _, g := range faces {
			if !g.dead && g.dist(pts[apex]) > eps {
				visible = append(visible, g)
				edges[[2]int{g.v[0], g.v[1]}] = true
				edges[[2]int{g.v[1], g.v[2]}] = true
				edges[[2]int{g.v[2], g.v[0]}] = true
			}
		}

		var orphans []int
		for _, g := range visible {
			g.dead = true
			for _, i := range g.outside {
				if i != apex {
					orphans = append(orphans, i)
				}
			}
			g.outside = nil
		}

		var created []*face
		for e := range edges {
			if edges[[2]int{e[1], e[0]}] {
				continue // interior to the visible region
			}
			nf := newFace(pts, e[0], e[1], apex, interior)
			faces = append(faces, nf)
			created = append(created, nf)
		}

		for _, i := range orphans {
			assign(created, i, pts[i], eps)
		}
	}

	return compact(pts, faces), nil
}

// initialSimplex picks four points spanning a tetrahedron: the farthest
// pair of axis-extreme points, the point farthest from their line, and the
// point farthest from the resulting plane.
func initialSimplex(pts []r3.Vec, eps float64) (int, int, int, int, error) {
	// Extreme points along each axis.
	ext := make([]int, 6)
	for i, p := range pts {
		if p.X < pts[ext[0]].X {
			ext[0] = i
		}
		if p.X > pts[ext[1]].X {
			ext[1] = i
		}
		if p.Y < pts[ext[2]].Y {
			ext[2] = i
		}
		if p.Y > pts[ext[3]].Y {
			ext[3] = i
		}
		if p.Z < pts[ext[4]].Z {
			ext[4] = i
		}
		if p.Z > pts[ext[5]].Z {
			ext[5] = i
		}
	}

	// Farthest pair among the extremes.
	p0, p1 := ext[0], ext[1]
	var best float64
	for i := 0; i < len(ext); i++ {
		for j := i + 1; j < len(ext); j++ {
			if d := r3.Norm2(r3.Sub(pts[ext[i]], pts[ext[j]])); d > best {
				best = d
				p0, p1 = ext[i], ext[j]
			}
		}
	}
	if math.Sqrt(best) <= eps {
		return 0, 0, 0, 0, ErrDegenerate
	}

	// Point farthest from the line p0-p1.
	dir := r3.Unit(r3.Sub(pts[p1], pts[p0]))
	p2 := -1
	best = eps
	for i, p := range pts {
		if i == p0 || i == p1 {
			continue
		}
		d := r3.Norm(r3.Cross(dir, r3.Sub(p, pts[p0])))
		if d > best {
			best = d
			p2 = i
		}
	}
	if p2 < 0 {
		return 0, 0, 0, 0, ErrDegenerate
	}

	// Point farthest from the plane p0-p1-p2.
	n := r3.Unit(r3.Cross(r3.Sub(pts[p1], pts[p0]), r3.Sub(pts[p2], pts[p0])))
	p3 := -1
	best = eps
	for i, p := range pts {
		if i == p0 || i == p1 || i == p2 {
			continue
		}
		d := math.Abs(r3.Dot(n, r3.Sub(p, pts[p0])))
		if d > best {
			best = d
			p3 = i
		}
	}
	if p3 < 0 {
		return 0, 0, 0, 0, ErrDegenerate
	}

	return p0, p1, p2, p3, nil
}

// dedupe removes exact duplicate points, preserving order.
func dedupe(points []r3.Vec) []r3.Vec {
	seen := make(map[r3.Vec]bool, len(points))
	out := make([]r3.Vec, 0, len(points))
	for _, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// tolerance derives the outside-distance threshold from the point extents.
func tolerance(pts []r3.Vec) float64 {
	var m float64
	for _, p := range pts {
		m = math.Max(m, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
	}
	return 3 * 1e-12 * math.Max(m, 1)
}

// newFace builds a facet through three points, oriented away from the
// interior reference point.
func newFace(pts []r3.Vec, a, b, c int, interior r3.Vec) *face {
	n := r3.Cross(r3.Sub(pts[b], pts[a]), r3.Sub(pts[c], pts[a]))
	if r3.Norm2(n) == 0 {
		n = r3.Vec{Z: 1} // degenerate sliver facet; orientation is moot
	} else {
		n = r3.Unit(n)
	}
	f := &face{v: [3]int{a, b, c}, normal: n}
	f.offset = r3.Dot(n, pts[a])
	if f.dist(interior) > 0 {
		f.v[1], f.v[2] = f.v[2], f.v[1]
		f.normal = r3.Scale(-1, f.normal)
		f.offset = -f.offset
	}
	return f
}

// assign puts point i into the outside set of the facet it is farthest
// from; points inside every facet are dropped.
func assign(faces []*face, i int, p r3.Vec, eps float64) {
	var best *face
	bestDist := eps
	for _, f := range faces {
		if f.dead {
			continue
		}
		if d := f.dist(p); d > bestDist {
			best = f
			bestDist = d
		}
	}
	if best != nil {
		best.outside = append(best.outside, i)
	}
}

// pickFace returns any live facet with a nonempty outside set.
func pickFace(faces []*face) *face {
	for _, f := range faces {
		if !f.dead && len(f.outside) > 0 {
			return f
		}
	}
	return nil
}

// farthest returns the outside point farthest from the facet plane.
func farthest(f *face, pts []r3.Vec) int {
	best := f.outside[0]
	bestDist := f.dist(pts[best])
	for _, i := range f.outside[1:] {
		if d := f.dist(pts[i]); d > bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// compact renumbers the surviving facets' vertices into a dense hull.
func compact(pts []r3.Vec, faces []*face) Hull {
	remap := make(map[int]int)
	var h Hull
	for _, f := range faces {
		if f.dead {
			continue
		}
		var tri [3]int
		for k, vi := range f.v {
			ni, ok := remap[vi]
			if !ok {
				ni = len(h.Vertices)
				remap[vi] = ni
				h.Vertices = append(h.Vertices, pts[vi])
			}
			tri[k] = ni
		}
		h.Faces = append(h.Faces, tri)
	}
	return h
}
