package text3d

import (
	"math"

	"github.com/paulmach/orb"
)

// maxFlattenDepth bounds the recursive subdivision; 2^16 segments per
// curve is far beyond any reasonable flatness tolerance.
const maxFlattenDepth = 16

// flattenQuad appends line segments approximating the quadratic Bézier
// (p0, c, p1) to out, excluding p0. Subdivision stops when the control
// point is within flatness of the chord (de Casteljau midpoint split).
func flattenQuad(out orb.Ring, p0, c, p1 orb.Point, flatness float64, depth int) orb.Ring {
	if depth >= maxFlattenDepth || distToChord(c, p0, p1) <= flatness {
		return append(out, p1)
	}

	// Split at t = 1/2.
	c0 := midpoint(p0, c)
	c1 := midpoint(c, p1)
	m := midpoint(c0, c1)

	out = flattenQuad(out, p0, c0, m, flatness, depth+1)
	return flattenQuad(out, m, c1, p1, flatness, depth+1)
}

// flattenCubic appends line segments approximating the cubic Bézier
// (p0, c0, c1, p1) to out, excluding p0.
func flattenCubic(out orb.Ring, p0, c0, c1, p1 orb.Point, flatness float64, depth int) orb.Ring {
	if depth >= maxFlattenDepth ||
		(distToChord(c0, p0, p1) <= flatness && distToChord(c1, p0, p1) <= flatness) {
		return append(out, p1)
	}

	// Split at t = 1/2.
	ab := midpoint(p0, c0)
	bc := midpoint(c0, c1)
	cd := midpoint(c1, p1)
	abc := midpoint(ab, bc)
	bcd := midpoint(bc, cd)
	m := midpoint(abc, bcd)

	out = flattenCubic(out, p0, ab, abc, m, flatness, depth+1)
	return flattenCubic(out, m, bcd, cd, p1, flatness, depth+1)
}

func midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

// distToChord returns the distance from p to the segment a-b.
func distToChord(p, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p[0]-(a[0]+t*dx), p[1]-(a[1]+t*dy))
}
