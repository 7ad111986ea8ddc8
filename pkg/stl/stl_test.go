package stl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *mesh.Mesh {
	m := mesh.New("Square")
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 1, 0))
	m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddFace(0, 1, 2, 3)
	return m
}

func TestASCIIRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, square()))
	assert.True(t, strings.HasPrefix(buf.String(), "solid Square\n"))

	model, err := ParseReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Square", model.Name)
	require.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, geometry.NewVector3(0, 0, 1), model.Triangles[0].Normal)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), model.Triangles[0].V3)
}

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, square()))
	assert.Equal(t, 84+2*50, buf.Len())

	model, err := ParseReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Square", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
}

func TestBinaryWithSolidHeader(t *testing.T) {
	m := square()
	m.Name = "solid but binary"

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, m))

	model, err := ParseReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, model.TriangleCount())
}

func TestToMeshWelds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, square()))
	model, err := ParseReader(&buf)
	require.NoError(t, err)

	m := model.ToMesh(1e-6)
	require.NoError(t, m.Validate())
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []mesh.Face{{0, 1, 2}, {0, 2, 3}}, m.Faces)
}

func TestToMeshDropsCollapsedTriangles(t *testing.T) {
	model := NewModel("Sliver")
	model.AddTriangle(geometry.NewTriangle(
		geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1e-12, 0, 0),
		geometry.NewVector3(0, 1, 0),
	))

	m := model.ToMesh(1e-6)
	assert.Empty(t, m.Faces)
	assert.Len(t, m.Vertices, 2)
}
