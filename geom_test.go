package mesh

import (
	"testing"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTriArea(t *testing.T) {
	tests := []struct {
		name string
		tri  Tri
		want float64
	}{
		{"unit right ccw", Tri{{0, 0}, {1, 0}, {0, 1}}, 0.5},
		{"unit right cw", Tri{{0, 0}, {0, 1}, {1, 0}}, 0.5},
		{"degenerate", Tri{{0, 0}, {1, 1}, {2, 2}}, 0},
		{"large", Tri{{0, 0}, {4, 0}, {0, 3}}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tri.Area(); !EqualWithin(got, tt.want) {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriSignedArea(t *testing.T) {
	ccw := Tri{{0, 0}, {1, 0}, {0, 1}}
	if got := ccw.SignedArea(); got <= 0 {
		t.Errorf("SignedArea() of ccw triangle = %v, want > 0", got)
	}
	cw := Tri{{0, 0}, {0, 1}, {1, 0}}
	if got := cw.SignedArea(); got >= 0 {
		t.Errorf("SignedArea() of cw triangle = %v, want < 0", got)
	}
}

func TestTriCentroid(t *testing.T) {
	tri := Tri{{0, 0}, {3, 0}, {0, 3}}
	got := tri.Centroid()
	if !pointsEqual(got, orb.Point{1, 1}) {
		t.Errorf("Centroid() = %v, want (1, 1)", got)
	}
}

func TestBoundsOf(t *testing.T) {
	verts := []r3.Vec{
		{X: 1, Y: 2, Z: 3},
		{X: -1, Y: 5, Z: 0},
		{X: 2, Y: 0, Z: -2},
	}
	b := boundsOf(verts)
	wantMin := r3.Vec{X: -1, Y: 0, Z: -2}
	wantMax := r3.Vec{X: 2, Y: 5, Z: 3}
	if b.Min != wantMin || b.Max != wantMax {
		t.Errorf("boundsOf() = %v–%v, want %v–%v", b.Min, b.Max, wantMin, wantMax)
	}

	if got := boundsOf(nil); got != (r3.Box{}) {
		t.Errorf("boundsOf(nil) = %v, want zero box", got)
	}
}

func TestFaceNormal(t *testing.T) {
	n := faceNormal(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
	if !EqualWithin(n.Z, 1) || !EqualWithin(n.X, 0) || !EqualWithin(n.Y, 0) {
		t.Errorf("faceNormal of ccw xy triangle = %v, want (0, 0, 1)", n)
	}

	degenerate := faceNormal(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 2})
	if degenerate != (r3.Vec{}) {
		t.Errorf("faceNormal of degenerate triangle = %v, want zero", degenerate)
	}
}

func TestNormalizeRing(t *testing.T) {
	tests := []struct {
		name    string
		ring    orb.Ring
		wantLen int
		wantOK  bool
	}{
		{"open square", orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 4, true},
		{"closed square", orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}, 4, true},
		{"consecutive duplicates", orb.Ring{{0, 0}, {0, 0}, {1, 0}, {1, 1}, {1, 1}, {0, 1}}, 4, true},
		{"two points", orb.Ring{{0, 0}, {1, 1}}, 0, false},
		// Collinear points survive normalization; the zero-area rejection
		// happens in Tessellate after the self-intersection check.
		{"collinear", orb.Ring{{0, 0}, {0, 1}, {0, 2}}, 3, true},
		{"zero-area bowtie", orb.Ring{{0, 0}, {1, 1}, {1, 0}, {0, 1}}, 4, true},
		{"all same", orb.Ring{{1, 1}, {1, 1}, {1, 1}, {1, 1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeRing(tt.ring)
			if ok != tt.wantOK {
				t.Fatalf("normalizeRing() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && len(got) != tt.wantLen {
				t.Errorf("normalizeRing() len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestRingSelfIntersects(t *testing.T) {
	square := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if ringSelfIntersects(square) {
		t.Error("square reported as self-intersecting")
	}
	bowtie := orb.Ring{{0, 0}, {1, 1}, {1, 0}, {0, 1}}
	if !ringSelfIntersects(bowtie) {
		t.Error("bowtie not reported as self-intersecting")
	}
}
