package stl

import (
	"math"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
)

// Model represents a triangle soup read from an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// ToMesh welds the triangle corners into shared vertices. Corners closer
// than tolerance on every axis become one vertex; vertex indices follow
// first appearance. Triangles that collapse after welding are dropped.
func (m *Model) ToMesh(tolerance float64) *mesh.Mesh {
	out := mesh.New(m.Name)
	type cell struct{ x, y, z int64 }
	index := make(map[cell]int)

	if tolerance <= 0 {
		tolerance = 1e-9
	}
	key := func(v geometry.Vector3) cell {
		return cell{
			x: int64(math.Round(v.X / tolerance)),
			y: int64(math.Round(v.Y / tolerance)),
			z: int64(math.Round(v.Z / tolerance)),
		}
	}

	weld := func(v geometry.Vector3) int {
		k := key(v)
		if idx, ok := index[k]; ok {
			return idx
		}
		idx := out.AddVertex(v)
		index[k] = idx
		return idx
	}

	for _, tri := range m.Triangles {
		a, b, c := weld(tri.V1), weld(tri.V2), weld(tri.V3)
		if a == b || b == c || a == c {
			continue
		}
		out.AddFace(a, b, c)
	}
	return out
}
