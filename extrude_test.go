package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// squareWithHolePath is the canonical extrusion fixture: a unit square
// with a centered square hole.
func squareWithHolePath() Path {
	return Path{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
		{{0.25, 0.25}, {0.25, 0.75}, {0.75, 0.75}, {0.75, 0.25}, {0.25, 0.25}},
	}
}

func TestExtrudePathSquareWithHole(t *testing.T) {
	const height = 10.0
	sm, err := ExtrudePath(squareWithHolePath(), height)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}

	if sm.VertexCount() != sm.NormalCount() {
		t.Errorf("vertex count %d != normal count %d", sm.VertexCount(), sm.NormalCount())
	}
	if err := sm.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	b := sm.Bounds()
	for i, want := range []float64{0, 0, 0} {
		got := []float64{b.Min.X, b.Min.Y, b.Min.Z}[i]
		if !EqualWithin(got, want) {
			t.Errorf("bounds min[%d] = %v, want %v", i, got, want)
		}
	}
	for i, want := range []float64{1, 1, height} {
		got := []float64{b.Max.X, b.Max.Y, b.Max.Z}[i]
		if !EqualWithin(got, want) {
			t.Errorf("bounds max[%d] = %v, want %v", i, got, want)
		}
	}

	for i := 0; i < sm.VertexCount(); i++ {
		v := sm.Vertex(i)

		// No vertex may sit inside the hole region.
		if v.X > 0.25+Eps && v.X < 0.75-Eps && v.Y > 0.25+Eps && v.Y < 0.75-Eps {
			t.Errorf("vertex %d at (%v, %v) inside hole region", i, v.X, v.Y)
		}

		// Every vertex is on the bottom or top plane.
		if !EqualWithin(v.Z, 0) && !EqualWithin(v.Z, height) {
			t.Errorf("vertex %d z = %v, want 0 or %v", i, v.Z, height)
		}
	}
}

func TestExtrudeNormals(t *testing.T) {
	const height = 10.0
	sm, err := ExtrudePath(squareWithHolePath(), height)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}

	var bottom, top, side int
	for i := 0; i < sm.NormalCount(); i++ {
		v := sm.Vertex(i)
		n := sm.Normal(i)

		if EqualWithin(n.Z, 0) {
			// Side wall: nonzero horizontal normal.
			side++
			if EqualWithin(n.X, 0) && EqualWithin(n.Y, 0) {
				t.Errorf("side-wall normal %d is zero", i)
			}
			continue
		}
		if EqualWithin(v.Z, 0) {
			bottom++
			if !EqualWithin(n.Z, -1) || !EqualWithin(n.X, 0) || !EqualWithin(n.Y, 0) {
				t.Errorf("bottom-cap normal %d = %v, want (0, 0, -1)", i, n)
			}
		}
		if EqualWithin(v.Z, height) {
			top++
			if !EqualWithin(n.Z, 1) || !EqualWithin(n.X, 0) || !EqualWithin(n.Y, 0) {
				t.Errorf("top-cap normal %d = %v, want (0, 0, 1)", i, n)
			}
		}
	}
	if bottom == 0 || top == 0 || side == 0 {
		t.Errorf("face classes missing: bottom %d, top %d, side %d", bottom, top, side)
	}
}

func TestExtrudeWallNormalsPointOutward(t *testing.T) {
	// For a plain unit square, every wall normal must point away from the
	// square's center.
	sm, err := ExtrudePath(Path{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}, 1)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}
	for i := 0; i < sm.NormalCount(); i++ {
		n := sm.Normal(i)
		if !EqualWithin(n.Z, 0) {
			continue
		}
		v := sm.Vertex(i)
		out := (v.X-0.5)*n.X + (v.Y-0.5)*n.Y
		if out <= 0 {
			t.Errorf("wall normal %d = %v at %v points inward", i, n, v)
		}
	}
}

// TestExtrudeLetterA reproduces the two-subpath letter 'A' fixture: a
// triangular counter inside the letter outline, first point repeated as
// last on neither ring.
func TestExtrudeLetterA(t *testing.T) {
	counter := orb.Ring{
		{2.27467, 1.0967},
		{1.81094, 2.35418},
		{2.74009, 2.35418},
	}
	outline := orb.Ring{
		{2.08173, 0.7599},
		{2.4693, 0.7599},
		{3.4323, 3.28672},
		{3.07689, 3.28672},
		{2.84672, 2.63851},
		{1.7077, 2.63851},
		{1.47753, 3.28672},
		{1.11704, 3.28672},
	}
	const height = 2.0

	sm, err := ExtrudePath(Path{counter, outline}, height)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}

	b := sm.Bounds()
	wantMin := [3]float64{1.11704, 0.7599, 0}
	wantMax := [3]float64{3.4323, 3.28672, height}
	gotMin := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	gotMax := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for i := range wantMin {
		if !EqualWithin(gotMin[i], wantMin[i]) || !EqualWithin(gotMax[i], wantMax[i]) {
			t.Fatalf("bounds = %v–%v, want %v–%v", gotMin, gotMax, wantMin, wantMax)
		}
	}

	closedCounter := closedRing(counter)
	for i := 0; i < sm.VertexCount(); i++ {
		v := sm.Vertex(i)
		onRing := false
		for _, p := range counter {
			if EqualWithin(p[0], v.X) && EqualWithin(p[1], v.Y) {
				onRing = true
				break
			}
		}
		if !onRing && planar.RingContains(closedCounter, orb.Point{v.X, v.Y}) {
			t.Errorf("vertex %d at (%v, %v) inside the counter hole", i, v.X, v.Y)
		}
		if !EqualWithin(v.Z, 0) && !EqualWithin(v.Z, height) {
			t.Errorf("vertex %d z = %v, want 0 or %v", i, v.Z, height)
		}
	}
	if sm.VertexCount() != sm.NormalCount() {
		t.Errorf("vertex count %d != normal count %d", sm.VertexCount(), sm.NormalCount())
	}
}

func TestExtrudePathInvalid(t *testing.T) {
	valid := Path{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
	tests := []struct {
		name    string
		path    Path
		height  float64
		wantErr error
	}{
		{"collinear subpath", Path{{{0, 0}, {0, 1}, {0, 2}}}, 10, ErrDegenerateSubpath},
		{"zero height", valid, 0, ErrInvalidHeight},
		{"negative height", valid, -1, ErrInvalidHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, err := ExtrudePath(tt.path, tt.height)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtrudePath() error = %v, want %v", err, tt.wantErr)
			}
			if sm != nil {
				t.Error("ExtrudePath() returned a submesh on failure")
			}
		})
	}

	if _, err := Extrude(nil, 10); !errors.Is(err, ErrNoTriangles) {
		t.Errorf("Extrude(nil) error = %v, want %v", err, ErrNoTriangles)
	}
}

func TestExtrudeThinTriangleWalls(t *testing.T) {
	// The footprint's only valid triangulation includes a triangle of area
	// 1e-12. If that triangle were discarded, its two boundary edges would
	// lose their walls and the edge it shares with the surviving triangle
	// would grow a spurious interior wall. All four ring edges must carry
	// a wall quad.
	sm, err := ExtrudePath(Path{{{0, 0}, {2, 0}, {2, 2}, {1, 1e-12}}}, 3)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}
	if err := sm.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	// 4 cap vertices per cap, 4 wall quads of 4 vertices.
	if got, want := sm.VertexCount(), 4+4+4*4; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := sm.IndexCount(), (2*2+4*2)*3; got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
}

func TestExtrudeVolumeViaWalls(t *testing.T) {
	// A closed extrusion has matching wall and cap structure: caps cover
	// the footprint twice (top and bottom), and wall quads stand on every
	// boundary edge. Sanity-check with a plain square: 4 walls of 2
	// triangles, 2 caps of 2 triangles.
	sm, err := ExtrudePath(Path{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}, 3)
	if err != nil {
		t.Fatalf("ExtrudePath() error = %v", err)
	}
	if got, want := sm.IndexCount(), (4*2+2*2)*3; got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
	// 4 shared vertices per cap, 4 per wall quad.
	if got, want := sm.VertexCount(), 4+4+4*4; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}

	var minZ, maxZ = math.Inf(1), math.Inf(-1)
	for i := 0; i < sm.VertexCount(); i++ {
		minZ = math.Min(minZ, sm.Vertex(i).Z)
		maxZ = math.Max(maxZ, sm.Vertex(i).Z)
	}
	if !EqualWithin(minZ, 0) || !EqualWithin(maxZ, 3) {
		t.Errorf("z range = [%v, %v], want [0, 3]", minZ, maxZ)
	}
}
