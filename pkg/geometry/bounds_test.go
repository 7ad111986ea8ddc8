package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.Empty() {
		t.Fatalf("new bounding box should be empty")
	}
	if size := bbox.Size(); size != (Vector3{}) {
		t.Errorf("empty Size: expected zero, got %v", size)
	}

	bbox.Extend(NewVector3(1, 1, 1))
	if bbox.Empty() {
		t.Errorf("bounding box with one point should not be empty")
	}
}

func TestBoundsOf(t *testing.T) {
	bbox := BoundsOf([]Vector3{
		NewVector3(0, 0, 0),
		NewVector3(10, 20, 30),
	})

	if size := bbox.Size(); size != NewVector3(10, 20, 30) {
		t.Errorf("Size failed: expected (10, 20, 30), got %v", size)
	}
	if center := bbox.Center(); center != NewVector3(5, 10, 15) {
		t.Errorf("Center failed: expected (5, 10, 15), got %v", center)
	}
	if volume := bbox.Volume(); math.Abs(volume-6000) > 1e-10 {
		t.Errorf("Volume failed: expected 6000, got %v", volume)
	}
}
