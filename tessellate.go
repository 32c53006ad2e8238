package mesh

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/gogpu/mesh/internal/earcut"
)

// Tessellation failure modes. Tessellate produces no partial output: any
// degenerate or inconsistent subpath fails the whole path.
var (
	// ErrEmptyPath indicates a path with no subpaths.
	ErrEmptyPath = errors.New("mesh: path has no subpaths")

	// ErrDegenerateSubpath indicates a subpath with fewer than 3 distinct
	// points or with zero enclosed area.
	ErrDegenerateSubpath = errors.New("mesh: degenerate subpath")

	// ErrSelfIntersectingSubpath indicates a subpath whose edges cross.
	ErrSelfIntersectingSubpath = errors.New("mesh: self-intersecting subpath")

	// ErrInconsistentPath indicates subpaths whose boundaries cross each
	// other, so solid and hole regions cannot be resolved.
	ErrInconsistentPath = errors.New("mesh: subpaths intersect")
)

// Tessellate converts a path into a set of 2D triangles covering the net
// enclosed area. A subpath fully enclosed by another is a hole subtracted
// from the enclosing area; a subpath enclosed by a hole is solid again;
// disjoint subpaths contribute separate solid regions. Solid-vs-hole is
// inferred purely from containment, so subpaths may be given in either
// winding order.
//
// Output triangles are counter-clockwise and their union exactly equals
// the solid area minus the hole areas.
func Tessellate(path Path) ([]Tri, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	rings := make([]orb.Ring, 0, len(path))
	for _, sub := range path {
		r, ok := normalizeRing(sub)
		if !ok {
			return nil, ErrDegenerateSubpath
		}
		// Crossing before area: a symmetric bowtie has zero net area but
		// is self-intersecting, not degenerate.
		if ringSelfIntersects(r) {
			return nil, ErrSelfIntersectingSubpath
		}
		if math.Abs(ringArea(r)) <= Eps {
			return nil, ErrDegenerateSubpath
		}
		rings = append(rings, r)
	}
	for i := range rings {
		for j := i + 1; j < len(rings); j++ {
			if ringsIntersect(rings[i], rings[j]) {
				return nil, ErrInconsistentPath
			}
		}
	}

	// Containment depth decides the role of each ring: even depth is a
	// solid boundary, odd depth is a hole in its immediate parent.
	depth := make([]int, len(rings))
	parent := make([]int, len(rings))
	for i := range rings {
		parent[i] = -1
		for j := range rings {
			if i == j {
				continue
			}
			if !ringContainsRing(rings[j], rings[i]) {
				continue
			}
			depth[i]++
			if parent[i] < 0 || ringContainsRing(rings[parent[i]], rings[j]) {
				parent[i] = j
			}
		}
	}

	var tris []Tri
	for i := range rings {
		if depth[i]%2 != 0 {
			continue // hole, handled with its parent
		}
		var holes []orb.Ring
		for j := range rings {
			if depth[j]%2 == 1 && parent[j] == i {
				holes = append(holes, rings[j])
			}
		}
		tris = append(tris, triangulateRegion(rings[i], holes)...)
	}

	Logger().Debug("tessellated path", "subpaths", len(rings), "triangles", len(tris))
	return tris, nil
}

// ringContainsRing reports whether inner lies fully inside outer. Rings are
// known not to cross, so a single interior sample point decides it.
func ringContainsRing(outer, inner orb.Ring) bool {
	return planar.RingContains(closedRing(outer), inner[0])
}

// closedRing returns the ring with its first point repeated as the last,
// the form orb's planar predicates expect.
func closedRing(r orb.Ring) orb.Ring {
	out := make(orb.Ring, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}

// triangulateRegion triangulates one solid ring with its holes via ear
// clipping, emitting counter-clockwise triangles.
func triangulateRegion(outer orb.Ring, holes []orb.Ring) []Tri {
	points := make([]orb.Point, 0, len(outer))
	coords := make([]float64, 0, 2*len(outer))
	appendRing := func(r orb.Ring) {
		for _, p := range r {
			points = append(points, p)
			coords = append(coords, p[0], p[1])
		}
	}

	appendRing(outer)
	holeIndices := make([]int, 0, len(holes))
	for _, h := range holes {
		holeIndices = append(holeIndices, len(points))
		appendRing(h)
	}

	indices := earcut.Triangulate(coords, holeIndices)

	tris := make([]Tri, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		t := Tri{points[indices[i]], points[indices[i+1]], points[indices[i+2]]}
		if t.SignedArea() < 0 {
			t[1], t[2] = t[2], t[1]
		}
		// Only exactly collapsed triangles are dropped. Thin slivers keep
		// their boundary edges counted for extrusion.
		if t.Area() == 0 {
			continue
		}
		tris = append(tris, t)
	}
	return tris
}
