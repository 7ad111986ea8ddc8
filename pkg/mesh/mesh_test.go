package mesh

import (
	"testing"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitCube has outward-wound quads
func unitCube() *Mesh {
	m := New("Cube")
	for _, v := range [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	} {
		m.AddVertex(geometry.NewVector3(v[0], v[1], v[2]))
	}
	m.AddFace(0, 3, 2, 1)
	m.AddFace(4, 5, 6, 7)
	m.AddFace(0, 1, 5, 4)
	m.AddFace(2, 3, 7, 6)
	m.AddFace(1, 2, 6, 5)
	m.AddFace(0, 4, 7, 3)
	return m
}

func TestValidate(t *testing.T) {
	require.NoError(t, unitCube().Validate())

	m := unitCube()
	m.AddFace(0, 1)
	assert.ErrorIs(t, m.Validate(), ErrInvalid)

	m = unitCube()
	m.AddFace(0, 1, 8)
	err := m.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "vertex 8")

	m = unitCube()
	m.AddFace(-1, 1, 2)
	assert.ErrorIs(t, m.Validate(), ErrInvalid)
}

func TestEdges(t *testing.T) {
	m := unitCube()
	edges := m.Edges()
	assert.Len(t, edges, 12)
	assert.Equal(t, Edge{A: 0, B: 3}, edges[0])
	for _, e := range edges {
		assert.Less(t, e.A, e.B)
	}
}

func TestEulerCharacteristic(t *testing.T) {
	assert.Equal(t, 2, unitCube().EulerCharacteristic())
}

func TestMeasurements(t *testing.T) {
	m := unitCube()
	assert.InDelta(t, 6.0, m.SurfaceArea(), 1e-12)
	assert.InDelta(t, 1.0, m.Volume(), 1e-12)

	bbox := m.BoundingBox()
	assert.Equal(t, geometry.NewVector3(1, 1, 1), bbox.Size())
}

func TestTriangles(t *testing.T) {
	m := unitCube()
	assert.Len(t, m.Triangles(), 12)

	indices := m.TriangleIndices()
	assert.Len(t, indices, 36)
	assert.Equal(t, []uint32{0, 3, 2, 0, 2, 1}, indices[:6])
}
