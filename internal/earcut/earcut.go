// Package earcut triangulates polygons with holes by ear clipping.
//
// The algorithm is the earcut family: holes are eliminated by bridging each
// hole to the enclosing ring with a zero-width diagonal, then the resulting
// single ring is ear-clipped. Two fallback passes (local self-intersection
// curing and diagonal splitting) handle rings that the plain ear scan cannot
// finish.
package earcut

import (
	"math"
	"sort"
)

// Triangulate triangulates a single polygon, given as flat vertex
// coordinates [x0, y0, x1, y1, ...]. holeIndices lists the vertex index at
// which each hole ring starts; vertices before the first hole index form
// the outer ring. Rings may be given in either winding order.
//
// The result is a flat list of triangle corner indices into the vertex
// list, three per triangle. Triangle winding follows the outer ring after
// normalization; callers that need a specific orientation should check the
// signed area of each output triangle.
func Triangulate(data []float64, holeIndices []int) []int {
	outerLen := len(data)
	if len(holeIndices) > 0 {
		outerLen = holeIndices[0] * 2
	}

	outerNode := linkedList(data, 0, outerLen, true)
	triangles := make([]int, 0, len(data)/2*3)
	if outerNode == nil || outerNode.next == outerNode.prev {
		return triangles
	}

	if len(holeIndices) > 0 {
		outerNode = eliminateHoles(data, holeIndices, outerNode)
	}

	earcutLinked(outerNode, &triangles, 0)
	return triangles
}

// node is a vertex in a circular doubly linked polygon ring.
type node struct {
	i          int // index into the original vertex list
	x, y       float64
	prev, next *node
	steiner    bool
}

// linkedList creates a circular doubly linked list from polygon vertices in
// the given winding order.
func linkedList(data []float64, start, end int, clockwise bool) *node {
	var last *node
	if clockwise == (signedArea(data, start, end) > 0) {
		for i := start; i < end; i += 2 {
			last = insertNode(i/2, data[i], data[i+1], last)
		}
	} else {
		for i := end - 2; i >= start; i -= 2 {
			last = insertNode(i/2, data[i], data[i+1], last)
		}
	}

	if last != nil && equals(last, last.next) {
		removeNode(last)
		last = last.next
	}
	return last
}

// filterPoints removes colinear points and coincident neighbors.
func filterPoints(start, end *node) *node {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}

	p := start
	for {
		again := false
		if !p.steiner && (equals(p, p.next) || area(p.prev, p, p.next) == 0) {
			removeNode(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

// earcutLinked is the main ear slicing loop. pass selects progressively
// more aggressive fallbacks when no ear can be found.
func earcutLinked(ear *node, triangles *[]int, pass int) {
	if ear == nil {
		return
	}

	stop := ear
	for ear.prev != ear.next {
		prev := ear.prev
		next := ear.next

		if isEar(ear) {
			*triangles = append(*triangles, prev.i, ear.i, next.i)
			removeNode(ear)

			// Skipping the next vertex leads to fewer sliver triangles.
			ear = next.next
			stop = next.next
			continue
		}

		ear = next

		// The whole remaining polygon was scanned without finding an ear.
		if ear == stop {
			switch pass {
			case 0:
				earcutLinked(filterPoints(ear, nil), triangles, 1)
			case 1:
				ear = cureLocalIntersections(filterPoints(ear, nil), triangles)
				earcutLinked(ear, triangles, 2)
			case 2:
				splitEarcut(ear, triangles)
			}
			return
		}
	}
}

// isEar reports whether the ear at the given vertex contains no other
// polygon vertex.
func isEar(ear *node) bool {
	a, b, c := ear.prev, ear, ear.next
	if area(a, b, c) >= 0 {
		return false // reflex, cannot be an ear
	}

	p := ear.next.next
	for p != ear.prev {
		if pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) &&
			area(p.prev, p, p.next) >= 0 {
			return false
		}
		p = p.next
	}
	return true
}

// cureLocalIntersections fixes small self-intersections by clipping the
// offending pair of edges into a triangle.
func cureLocalIntersections(start *node, triangles *[]int) *node {
	p := start
	for {
		a := p.prev
		b := p.next.next

		if !equals(a, b) && intersects(a, p, p.next, b) &&
			locallyInside(a, b) && locallyInside(b, a) {
			*triangles = append(*triangles, a.i, p.i, b.i)
			removeNode(p)
			removeNode(p.next)
			p = b
			start = b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filterPoints(p, nil)
}

// splitEarcut splits the remaining polygon by a valid diagonal and
// triangulates the two halves independently.
func splitEarcut(start *node, triangles *[]int) {
	a := start
	for {
		b := a.next.next
		for b != a.prev {
			if a.i != b.i && isValidDiagonal(a, b) {
				c := splitPolygon(a, b)

				a = filterPoints(a, a.next)
				c = filterPoints(c, c.next)

				earcutLinked(a, triangles, 0)
				earcutLinked(c, triangles, 0)
				return
			}
			b = b.next
		}
		a = a.next
		if a == start {
			break
		}
	}
}

// eliminateHoles links every hole into the outer ring, producing a single
// ring without holes.
func eliminateHoles(data []float64, holeIndices []int, outerNode *node) *node {
	queue := make([]*node, 0, len(holeIndices))
	for i, holeIdx := range holeIndices {
		start := holeIdx * 2
		end := len(data)
		if i < len(holeIndices)-1 {
			end = holeIndices[i+1] * 2
		}
		list := linkedList(data, start, end, false)
		if list == list.next {
			list.steiner = true
		}
		queue = append(queue, getLeftmost(list))
	}

	// Process holes left to right.
	sort.Slice(queue, func(i, j int) bool {
		if queue[i].x != queue[j].x {
			return queue[i].x < queue[j].x
		}
		return queue[i].y < queue[j].y
	})

	for _, hole := range queue {
		outerNode = eliminateHole(hole, outerNode)
	}
	return outerNode
}

// eliminateHole finds a bridge between the hole and the outer ring and
// links them together through it.
func eliminateHole(hole, outerNode *node) *node {
	bridge := findHoleBridge(hole, outerNode)
	if bridge == nil {
		return outerNode
	}

	bridgeReverse := splitPolygon(bridge, hole)

	filterPoints(bridgeReverse, bridgeReverse.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge finds an outer-ring vertex that the hole's leftmost point
// can be connected to without crossing any edge (David Eberly's algorithm).
func findHoleBridge(hole, outerNode *node) *node {
	p := outerNode
	hx := hole.x
	hy := hole.y
	qx := math.Inf(-1)
	var m *node

	// Find the edge intersected by a leftward ray from the hole point and
	// take the intersection closest to the hole.
	for {
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				m = p
				if p.x >= p.next.x {
					m = p.next
				}
				if x == hx {
					return m // hole touches the outer segment; use that vertex
				}
			}
		}
		p = p.next
		if p == outerNode {
			break
		}
	}

	if m == nil {
		return nil
	}

	// Look for a better bridge endpoint: a reflex vertex inside the
	// triangle (hole point, ray intersection, segment endpoint) that
	// minimizes the angle to the ray.
	stop := m
	mx := m.x
	my := m.y
	tanMin := math.Inf(1)

	p = m
	for {
		inTri := false
		if hy < my {
			inTri = pointInTriangle(hx, hy, mx, my, qx, hy, p.x, p.y)
		} else {
			inTri = pointInTriangle(qx, hy, mx, my, hx, hy, p.x, p.y)
		}
		if hx >= p.x && p.x >= mx && hx != p.x && inTri {
			tan := math.Abs(hy-p.y) / (hx - p.x)
			if locallyInside(p, hole) &&
				(tan < tanMin || (tan == tanMin && (p.x > m.x || (p.x == m.x && sectorContainsSector(m, p))))) {
				m = p
				tanMin = tan
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

// sectorContainsSector reports whether the sector in vertex m contains the
// sector in vertex p in the same coordinates.
func sectorContainsSector(m, p *node) bool {
	return area(m.prev, m, p.prev) < 0 && area(p.next, m, m.next) < 0
}

// getLeftmost returns the leftmost vertex of the ring.
func getLeftmost(start *node) *node {
	p := start
	leftmost := start
	for {
		if p.x < leftmost.x || (p.x == leftmost.x && p.y < leftmost.y) {
			leftmost = p
		}
		p = p.next
		if p == start {
			break
		}
	}
	return leftmost
}

// pointInTriangle reports whether point (px, py) lies in the triangle
// (a, b, c), boundary inclusive.
func pointInTriangle(ax, ay, bx, by, cx, cy, px, py float64) bool {
	return (cx-px)*(ay-py) >= (ax-px)*(cy-py) &&
		(ax-px)*(by-py) >= (bx-px)*(ay-py) &&
		(bx-px)*(cy-py) >= (cx-px)*(by-py)
}

// isValidDiagonal reports whether the diagonal a-b lies inside the polygon
// and does not intersect any of its edges.
func isValidDiagonal(a, b *node) bool {
	if a.next.i == b.i || a.prev.i == b.i || intersectsPolygon(a, b) {
		return false
	}
	// Inside the polygon, not creating opposite-facing sectors, and with a
	// midpoint inside.
	ok := locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(area(a.prev, a, b.prev) != 0 || area(a, b.prev, b) != 0)
	// Special zero-length case.
	zero := equals(a, b) && area(a.prev, a, a.next) > 0 && area(b.prev, b, b.next) > 0
	return ok || zero
}

// area returns twice the signed area of the triangle (p, q, r); negative
// for the winding produced by linkedList's outer rings.
func area(p, q, r *node) float64 {
	return (q.y-p.y)*(r.x-q.x) - (q.x-p.x)*(r.y-q.y)
}

// equals reports whether two vertices share coordinates.
func equals(p1, p2 *node) bool {
	return p1.x == p2.x && p1.y == p2.y
}

// intersects reports whether segments p1-q1 and p2-q2 intersect,
// collinear-touching cases included.
func intersects(p1, q1, p2, q2 *node) bool {
	o1 := sign(area(p1, q1, p2))
	o2 := sign(area(p1, q1, q2))
	o3 := sign(area(p2, q2, p1))
	o4 := sign(area(p2, q2, q1))

	if o1 != o2 && o3 != o4 {
		return true // general case
	}

	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// onSegment reports whether q lies on segment p-r, assuming collinearity.
func onSegment(p, q, r *node) bool {
	return q.x <= math.Max(p.x, r.x) && q.x >= math.Min(p.x, r.x) &&
		q.y <= math.Max(p.y, r.y) && q.y >= math.Min(p.y, r.y)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// intersectsPolygon reports whether the diagonal a-b crosses any polygon
// edge.
func intersectsPolygon(a, b *node) bool {
	p := a
	for {
		if p.i != a.i && p.next.i != a.i && p.i != b.i && p.next.i != b.i &&
			intersects(p, p.next, a, b) {
			return true
		}
		p = p.next
		if p == a {
			break
		}
	}
	return false
}

// locallyInside reports whether the diagonal a-b is inside the polygon in
// the neighborhood of a.
func locallyInside(a, b *node) bool {
	if area(a.prev, a, a.next) < 0 {
		return area(a, b, a.next) >= 0 && area(a, a.prev, b) >= 0
	}
	return area(a, b, a.prev) < 0 || area(a, a.next, b) < 0
}

// middleInside reports whether the midpoint of the diagonal a-b is inside
// the polygon (even-odd ray cast).
func middleInside(a, b *node) bool {
	px := (a.x + b.x) / 2
	py := (a.y + b.y) / 2
	inside := false

	p := a
	for {
		if ((p.y > py) != (p.next.y > py)) && p.next.y != p.y &&
			px < (p.next.x-p.x)*(py-p.y)/(p.next.y-p.y)+p.x {
			inside = !inside
		}
		p = p.next
		if p == a {
			break
		}
	}
	return inside
}

// splitPolygon links two polygon vertices with a bridge, splitting the
// ring into two (if a and b belong to one ring) or joining two rings into
// one (if they belong to separate rings). Returns the new node paired
// with b.
func splitPolygon(a, b *node) *node {
	a2 := &node{i: a.i, x: a.x, y: a.y}
	b2 := &node{i: b.i, x: b.x, y: b.y}
	an := a.next
	bp := b.prev

	a.next = b
	b.prev = a

	a2.next = an
	an.prev = a2

	b2.next = a2
	a2.prev = b2

	bp.next = b2
	b2.prev = bp

	return b2
}

// insertNode inserts a vertex after last into the circular list.
func insertNode(i int, x, y float64, last *node) *node {
	p := &node{i: i, x: x, y: y}

	if last == nil {
		p.prev = p
		p.next = p
	} else {
		p.next = last.next
		p.prev = last
		last.next.prev = p
		last.next = p
	}
	return p
}

// removeNode unlinks a vertex from its ring.
func removeNode(p *node) {
	p.next.prev = p.prev
	p.prev.next = p.next
}

// signedArea computes the shoelace sum over a flat coordinate range;
// positive for clockwise rings in y-up coordinates.
func signedArea(data []float64, start, end int) float64 {
	var sum float64
	j := end - 2
	for i := start; i < end; i += 2 {
		sum += (data[j] - data[i]) * (data[i+1] + data[j+1])
		j = i
	}
	return sum
}
