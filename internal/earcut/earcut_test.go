package earcut

import (
	"math"
	"testing"
)

// triangleArea sums the unsigned area of the output triangles.
func triangleArea(data []float64, indices []int) float64 {
	var sum float64
	for i := 0; i+2 < len(indices); i += 3 {
		ax, ay := data[indices[i]*2], data[indices[i]*2+1]
		bx, by := data[indices[i+1]*2], data[indices[i+1]*2+1]
		cx, cy := data[indices[i+2]*2], data[indices[i+2]*2+1]
		sum += math.Abs((bx-ax)*(cy-ay)-(cx-ax)*(by-ay)) / 2
	}
	return sum
}

func TestTriangulateTriangle(t *testing.T) {
	data := []float64{0, 0, 1, 0, 0, 1}
	got := Triangulate(data, nil)
	if len(got) != 3 {
		t.Fatalf("index count = %d, want 3", len(got))
	}
	if a := triangleArea(data, got); math.Abs(a-0.5) > 1e-12 {
		t.Errorf("area = %v, want 0.5", a)
	}
}

func TestTriangulateSquare(t *testing.T) {
	data := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	got := Triangulate(data, nil)
	if len(got) != 6 {
		t.Fatalf("index count = %d, want 6", len(got))
	}
	if a := triangleArea(data, got); math.Abs(a-1) > 1e-12 {
		t.Errorf("area = %v, want 1", a)
	}
}

func TestTriangulateSquareWithHole(t *testing.T) {
	data := []float64{
		0, 0, 1, 0, 1, 1, 0, 1, // outer
		0.25, 0.25, 0.75, 0.25, 0.75, 0.75, 0.25, 0.75, // hole
	}
	got := Triangulate(data, []int{4})
	if len(got)%3 != 0 {
		t.Fatalf("index count = %d, want a multiple of 3", len(got))
	}
	if a := triangleArea(data, got); math.Abs(a-0.75) > 1e-9 {
		t.Errorf("area = %v, want 0.75", a)
	}
	// 8 boundary vertices bridged into one ring yield 8 triangles.
	if len(got)/3 != 8 {
		t.Errorf("triangle count = %d, want 8", len(got)/3)
	}
}

func TestTriangulateConcave(t *testing.T) {
	// L shape, area 3.
	data := []float64{0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2}
	got := Triangulate(data, nil)
	if len(got)/3 != 4 {
		t.Errorf("triangle count = %d, want 4", len(got)/3)
	}
	if a := triangleArea(data, got); math.Abs(a-3) > 1e-9 {
		t.Errorf("area = %v, want 3", a)
	}
}

func TestTriangulateWindingInsensitive(t *testing.T) {
	ccw := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	cw := []float64{0, 0, 0, 1, 1, 1, 1, 0}
	a := triangleArea(ccw, Triangulate(ccw, nil))
	b := triangleArea(cw, Triangulate(cw, nil))
	if math.Abs(a-b) > 1e-12 {
		t.Errorf("areas differ by winding: %v vs %v", a, b)
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	tests := []struct {
		name string
		data []float64
	}{
		{"empty", nil},
		{"single point", []float64{1, 1}},
		{"two points", []float64{0, 0, 1, 1}},
		{"collinear", []float64{0, 0, 1, 1, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Triangulate(tt.data, nil)
			if a := triangleArea(tt.data, got); a > 1e-12 {
				t.Errorf("degenerate input produced area %v", a)
			}
		})
	}
}

func TestTriangulateTwoHoles(t *testing.T) {
	data := []float64{
		0, 0, 10, 0, 10, 10, 0, 10, // outer, area 100
		1, 1, 3, 1, 3, 3, 1, 3, // hole, area 4
		6, 6, 8, 6, 8, 8, 6, 8, // hole, area 4
	}
	got := Triangulate(data, []int{4, 8})
	if a := triangleArea(data, got); math.Abs(a-92) > 1e-9 {
		t.Errorf("area = %v, want 92", a)
	}
}
