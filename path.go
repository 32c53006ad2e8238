package mesh

import (
	"github.com/paulmach/orb"
)

// Path is an ordered set of closed 2D rings. Containment among rings, not
// winding order, determines which rings bound solid regions and which cut
// holes: a ring fully enclosed by another is a hole in it, a ring enclosed
// by a hole is solid again, and disjoint rings are independent solids.
//
// A ring may or may not repeat its first point as its last; both forms are
// normalized to the same result.
type Path []orb.Ring

// normalizeRing returns the ring with consecutive duplicate points and the
// explicit closing point removed. The second return is false when fewer
// than 3 distinct points remain. Area checks are the caller's: a ring with
// zero net area may still be self-intersecting rather than degenerate.
func normalizeRing(r orb.Ring) (orb.Ring, bool) {
	out := make(orb.Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && pointsEqual(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	// Drop the explicit closing point if present.
	if len(out) > 1 && pointsEqual(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) < 3 {
		return nil, false
	}
	return out, true
}

// ringArea returns the signed area of an open ring: positive for
// counter-clockwise winding.
func ringArea(r orb.Ring) float64 {
	var a float64
	for i := range r {
		j := (i + 1) % len(r)
		a += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return a / 2
}

// reverseRing reverses the ring in place, flipping its winding.
func reverseRing(r orb.Ring) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// ringSelfIntersects reports whether any two non-adjacent edges of the open
// ring properly cross. Shared endpoints between adjacent edges are not
// crossings.
func ringSelfIntersects(r orb.Ring) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		a1, a2 := r[i], r[(i+1)%n]
		for j := i + 2; j < n; j++ {
			// Skip the edge adjacent to i on the wrap-around side.
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := r[j], r[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// ringsIntersect reports whether any edge of ring a properly crosses any
// edge of ring b. Rings that merely touch at a point are not considered
// intersecting.
func ringsIntersect(a, b orb.Ring) bool {
	for i := range a {
		a1, a2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			if segmentsCross(a1, a2, b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports whether segments p1-p2 and q1-q2 properly
// intersect: they cross at a single interior point of both. Collinear
// overlaps and shared endpoints do not count.
func segmentsCross(p1, p2, q1, q2 orb.Point) bool {
	d1 := cross2(q1, q2, p1)
	d2 := cross2(q1, q2, p2)
	d3 := cross2(p1, p2, q1)
	d4 := cross2(p1, p2, q2)
	return ((d1 > Eps && d2 < -Eps) || (d1 < -Eps && d2 > Eps)) &&
		((d3 > Eps && d4 < -Eps) || (d3 < -Eps && d4 > Eps))
}

// cross2 returns the z component of (b-a) × (p-a).
func cross2(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}
