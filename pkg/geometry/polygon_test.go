package geometry

import (
	"math"
	"testing"
)

var unitSquare = []Vector3{
	NewVector3(0, 0, 0),
	NewVector3(1, 0, 0),
	NewVector3(1, 1, 0),
	NewVector3(0, 1, 0),
}

func TestNewellNormal(t *testing.T) {
	normal := NewellNormal(unitSquare)
	if !normal.ApproxEqual(NewVector3(0, 0, 1), 1e-12) {
		t.Errorf("counter-clockwise square: expected +Z, got %v", normal)
	}

	reversed := []Vector3{unitSquare[3], unitSquare[2], unitSquare[1], unitSquare[0]}
	normal = NewellNormal(reversed)
	if !normal.ApproxEqual(NewVector3(0, 0, -1), 1e-12) {
		t.Errorf("clockwise square: expected -Z, got %v", normal)
	}
}

func TestFanTriangulate(t *testing.T) {
	tris := FanTriangulate(unitSquare)
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(tris))
	}
	for i, tri := range tris {
		if tri.V1 != unitSquare[0] {
			t.Errorf("triangle %d does not start at the fan apex", i)
		}
	}

	if tris := FanTriangulate(unitSquare[:2]); tris != nil {
		t.Errorf("degenerate polygon should not triangulate, got %d triangles", len(tris))
	}
}

func TestPolygonArea(t *testing.T) {
	if area := PolygonArea(unitSquare); math.Abs(area-1.0) > 1e-12 {
		t.Errorf("PolygonArea failed: expected 1, got %v", area)
	}
}

func TestCentroid(t *testing.T) {
	if c := Centroid(unitSquare); c != NewVector3(0.5, 0.5, 0) {
		t.Errorf("Centroid failed: expected (0.5, 0.5, 0), got %v", c)
	}
	if c := Centroid(nil); c != (Vector3{}) {
		t.Errorf("Centroid of nothing: expected zero, got %v", c)
	}
}
