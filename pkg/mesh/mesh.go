// Package mesh holds an indexed polygon mesh: a vertex list and faces that
// reference it by 0-based index.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/polymesh/pkg/geometry"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid mesh")

// Face is an ordered list of vertex indices. The order is the winding.
type Face []int

// Edge is an undirected pair of vertex indices with A < B
type Edge struct {
	A, B int
}

// Mesh represents a polyhedron surface
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]geometry.Vector3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face
func (m *Mesh) AddFace(indices ...int) {
	m.Faces = append(m.Faces, Face(indices))
}

// Validate checks that every face has at least 3 vertices and that every
// index lies in [0, len(Vertices)).
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for fi, face := range m.Faces {
		if len(face) < 3 {
			return fmt.Errorf("%w: face %d has %d vertices, need at least 3", ErrInvalid, fi, len(face))
		}
		for _, idx := range face {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d, have %d vertices", ErrInvalid, fi, idx, n)
			}
		}
	}
	return nil
}

// FacePoints returns the vertex positions of a face in winding order
func (m *Mesh) FacePoints(fi int) []geometry.Vector3 {
	face := m.Faces[fi]
	points := make([]geometry.Vector3, len(face))
	for i, idx := range face {
		points[i] = m.Vertices[idx]
	}
	return points
}

// Edges derives the unique undirected edges from the faces, in the order
// they are first encountered.
func (m *Mesh) Edges() []Edge {
	seen := make(map[Edge]bool)
	edges := make([]Edge, 0)
	for _, face := range m.Faces {
		for i, a := range face {
			b := face[(i+1)%len(face)]
			if a == b {
				continue
			}
			e := Edge{A: min(a, b), B: max(a, b)}
			if seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}

// Triangles fan-triangulates every face
func (m *Mesh) Triangles() []geometry.Triangle {
	tris := make([]geometry.Triangle, 0, len(m.Faces))
	for fi := range m.Faces {
		tris = append(tris, geometry.FanTriangulate(m.FacePoints(fi))...)
	}
	return tris
}

// TriangleIndices fan-triangulates every face into a flat index list
func (m *Mesh) TriangleIndices() []uint32 {
	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, face := range m.Faces {
		for i := 1; i+1 < len(face); i++ {
			indices = append(indices, uint32(face[0]), uint32(face[i]), uint32(face[i+1]))
		}
	}
	return indices
}

// BoundingBox calculates the bounding box of the vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.Vertices)
}

// SurfaceArea calculates the total area of all faces
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for fi := range m.Faces {
		total += geometry.PolygonArea(m.FacePoints(fi))
	}
	return total
}

// Volume returns the enclosed volume of a closed, consistently wound mesh.
// Inward winding gives a negative result.
func (m *Mesh) Volume() float64 {
	total := 0.0
	for _, tri := range m.Triangles() {
		total += tri.SignedVolume()
	}
	return total
}

// EulerCharacteristic returns V - E + F. It is 2 for any closed convex
// polyhedron.
func (m *Mesh) EulerCharacteristic() int {
	return len(m.Vertices) - len(m.Edges()) + len(m.Faces)
}
